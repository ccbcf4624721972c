package config

import "fmt"

func configErrorf(op, format string, args ...interface{}) error {
	return fmt.Errorf("config: "+op+": "+format, args...)
}
