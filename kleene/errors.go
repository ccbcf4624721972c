package kleene

import "fmt"

func kleeneErrorf(op string, err error) error {
	return fmt.Errorf("kleene: %s: %w", op, err)
}
