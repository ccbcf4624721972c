package spresburger

import (
	"errors"
	"fmt"
)

// ErrNoSemilinearForm indicates that a Set currently held in Presburger
// form was asked for an operation that requires the semilinear
// representation (Star). Presburger-to-semilinear conversion is not
// implemented anywhere in this module, matching the original engine's
// panic on this path: it is a structural bug in the caller, not a
// recoverable, data-dependent failure.
// Classification: fatal, caller-avoidable contract violation.
// Usage: if errors.Is(err, ErrNoSemilinearForm) { /* caller built the set
// in the wrong order: Star before Complement/Intersection/Difference */ }.
var ErrNoSemilinearForm = errors.New("spresburger: set is held in Presburger form; semilinear conversion is not implemented")

func spresburgerErrorf(op, format string, args ...interface{}) error {
	return fmt.Errorf("spresburger: "+op+": "+format, args...)
}
