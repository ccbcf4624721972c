package semilinear

import (
	"errors"
	"fmt"
)

// ErrTooManyComponents indicates that Star was asked to operate on a
// SemilinearSet with more components than this package's subset-enumeration
// implementation can afford (2^n subsets are enumerated).
// Classification: caller/config error, not a data-dependent failure.
// Typical origins: feeding Star a set built from an unbounded union instead
// of a reduced automaton-derived one.
// Usage: if errors.Is(err, ErrTooManyComponents) { /* reduce components first */ }.
var ErrTooManyComponents = errors.New("semilinear: too many components for star")

// maxStarComponents bounds the subset enumeration in Star: a set with
// this many components or more is refused outright (spec.md §8: "with
// ≥ 32 components must refuse"), so the worst case actually enumerated
// is 2^31, not 2^32. This is one component stricter than the original
// engine's own `debug_assert!(n <= 32)`, which still permits exactly 32;
// TestStarRefusesAtExactlyTheLimit exercises 32 refusing rather than 33.
const maxStarComponents = 32

func semilinearErrorf(op, format string, args ...interface{}) error {
	return fmt.Errorf("semilinear: "+op+": "+format, args...)
}
