package invariant

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLeftRequest indicates a proof certificate's formula
// refers to a Request(req) place directly, rather than only to the
// Global/Local places a well-formed certificate over this net's progress
// half should mention. The original engine's lifter treats this as
// unreachable; this port, not being able to assume that, reports it as a
// recoverable error instead (see DESIGN.md's Open Question decisions).
var ErrUnsupportedLeftRequest = errors.New("invariant: proof formula references a Request place directly, unsupported")

// ErrMissingGlobalInvariant indicates a check needed the per-global-state
// invariant for a global state the NSInvariant has no entry for.
var ErrMissingGlobalInvariant = errors.New("invariant: no invariant for global state")

func invariantErrorf(op, format string, args ...interface{}) error {
	return fmt.Errorf("invariant: "+op+": "+format, args...)
}
