package reachability

import (
	"context"
	"time"
)

// TraceStep is one firing of the witness sequence the checker reports
// when it proves a marking reachable: the multiset of place names
// (named per petri.PNetName, the same table the ".net"/XML export used)
// consumed and produced by that firing. This is the string-keyed analogue
// of reachability_with_proofs.rs's Vec<(Vec<P>, Vec<P>)> trace.
type TraceStep struct {
	Consumed []string
	Produced []string
}

// CheckerResult is one external checker invocation's verdict for a
// single (".net" file, reachability-query XML file) pair, mirroring
// smpt.rs's SmptResult: whether the queried marking is reachable, the
// witness firing sequence if so, how long the checker took, which method
// it used internally, and — when the marking was proven unreachable —
// the raw SMT-LIB proof certificate text it printed, if it printed one.
type CheckerResult struct {
	Reachable       bool
	Trace           []TraceStep
	ExecutionTimeMS *int
	MethodUsed      string
	Certificate     string
}

// CheckerFunc stands in for invoking the real external checker binary:
// spec.md §1 treats that checker as an external collaborator this
// module drives rather than reimplements, so Check takes one as a
// parameter instead of shelling out itself. netFile and xmlFile are
// paths to files this package has already written to outDir.
type CheckerFunc func(ctx context.Context, netFile, xmlFile string, timeout time.Duration) (CheckerResult, error)
