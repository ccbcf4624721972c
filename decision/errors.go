package decision

import "fmt"

func decisionErrorf(op, format string, args ...interface{}) error {
	return fmt.Errorf("decision: "+op+": "+format, args...)
}
