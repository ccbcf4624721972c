package reachability

import (
	"errors"
	"fmt"
)

// ErrUnsupportedConstraint indicates a disjunct's quantifier-free clause
// contains a Congruence constraint: the reachability query XML schema
// (modelled on the real checker's schema) has no way to express
// divisibility directly, so such a clause cannot be exported.
var ErrUnsupportedConstraint = errors.New("reachability: cannot export modular constraint to reachability query XML")

func reachabilityErrorf(op, format string, args ...interface{}) error {
	return fmt.Errorf("reachability: "+op+": "+format, args...)
}
