package ns

import (
	"errors"
	"fmt"
)

// ErrNoSuchLocalState indicates a trace step referenced a local state
// that does not appear in the NS at all.
var ErrNoSuchLocalState = errors.New("ns: no such local state")

// ErrTraceStepInvalid indicates a counterexample trace's step does not
// replay against the NS (the requested transition, request, or response
// does not exist from the current state).
// Classification: input error (spec §7 "Trace invalid") — surfaced with
// the offending step, never silently dropped.
var ErrTraceStepInvalid = errors.New("ns: trace step does not replay against this NS")

func nsErrorf(op, format string, args ...interface{}) error {
	return fmt.Errorf("ns: "+op+": "+format, args...)
}
