package expr

import (
	"errors"
	"fmt"
)

// ErrExitUnsupported indicates that the executor encountered an Exit
// term. The original engine's evaluator panics on Exit ("unimplemented");
// this port reports it as a regular error instead of crashing. The
// worklist loop that calls Run, ns.FromExpr, does not skip the offending
// state: it stops and returns the error.
// Classification: unsupported-feature, caller-recoverable.
var ErrExitUnsupported = errors.New("expr: Exit is not supported by the executor")

func exprErrorf(op, format string, args ...interface{}) error {
	return fmt.Errorf("expr: "+op+": "+format, args...)
}
