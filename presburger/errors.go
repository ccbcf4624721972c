package presburger

import (
	"errors"
	"fmt"
)

// ErrSearchBoundExceeded indicates that the bounded decision procedure
// (IsEmpty, and anything built on it) found no satisfying assignment
// within its configured search bound for a disjunct that mentions at
// least one variable. The bounded search is the only emptiness test for
// such a disjunct, so every unsatisfiable one (x = 1 and x = 2, say)
// reports this error, as does one whose witnesses all lie beyond the
// bound; IsEmpty reports the set as empty in both cases.
// Classification: decision-procedure scope limit, not a malformed-input
// error.
// Usage: if errors.Is(err, ErrSearchBoundExceeded) { /* widen the bound or
// reject the input */ }.
var ErrSearchBoundExceeded = errors.New("presburger: search bound exceeded")

// ErrCannotEliminate indicates that EliminateExistentials or ProjectOut
// could not eliminate a variable: it appears in no equality, and it
// appears either in a congruence or in an inequality whose coefficient
// for it has magnitude other than 1.
var ErrCannotEliminate = errors.New("presburger: cannot eliminate variable")

func presburgerErrorf(op, format string, args ...interface{}) error {
	return fmt.Errorf("presburger: "+op+": "+format, args...)
}
