package reachability

import "github.com/katalvlaran/serialcheck/presburger"

// decisionKind tags which variant of Decision is populated, the same
// closed-enum-via-private-tag shape used throughout this module (see
// expr.Expr, kleene.Regex) in place of an interface type switch.
type decisionKind int

const (
	decisionProof decisionKind = iota
	decisionCounterExample
	decisionTimeout
)

// Decision is the outcome of checking whether any of a target set's bad
// disjuncts is reachable in a pruned Petri net, mirroring
// reachability_with_proofs.rs's Decision<P> enum.
type Decision[Place comparable] struct {
	kind decisionKind

	proofFormula presburger.Set[Place]

	counterDisjunct      presburger.QuantifiedSet[Place]
	counterTrace         []PlaceTraceStep[Place]
	counterMethodUsed    string
	counterExecutionTime *int

	timeoutMessage string
}

// PlaceTraceStep is TraceStep with its place names resolved back onto
// Place values.
type PlaceTraceStep[Place comparable] struct {
	Consumed []Place
	Produced []Place
}

// ProofDecision reports that no bad disjunct is reachable: formula is
// the conjunction of every disjunct's own sufficient invariant, lifted
// back onto Place.
func ProofDecision[Place comparable](formula presburger.Set[Place]) Decision[Place] {
	return Decision[Place]{kind: decisionProof, proofFormula: formula}
}

// CounterExampleDecision reports that disjunct was reachable via trace:
// the program can reach a bad configuration matching it.
func CounterExampleDecision[Place comparable](disjunct presburger.QuantifiedSet[Place], trace []PlaceTraceStep[Place], methodUsed string, executionTimeMS *int) Decision[Place] {
	return Decision[Place]{kind: decisionCounterExample, counterDisjunct: disjunct, counterTrace: trace, counterMethodUsed: methodUsed, counterExecutionTime: executionTimeMS}
}

// TimeoutDecision reports the checker could not decide at least one
// disjunct within its allotted time.
func TimeoutDecision[Place comparable](message string) Decision[Place] {
	return Decision[Place]{kind: decisionTimeout, timeoutMessage: message}
}

// IsProof reports whether d is the Proof variant.
func (d Decision[Place]) IsProof() bool { return d.kind == decisionProof }

// AsProof returns d's formula and true when d is the Proof variant.
func (d Decision[Place]) AsProof() (presburger.Set[Place], bool) {
	if d.kind != decisionProof {
		return presburger.Set[Place]{}, false
	}
	return d.proofFormula, true
}

// AsCounterExample returns the reachable disjunct, its witness firing
// sequence, the method the checker used, its execution time, and true
// when d is the CounterExample variant.
func (d Decision[Place]) AsCounterExample() (presburger.QuantifiedSet[Place], []PlaceTraceStep[Place], string, *int, bool) {
	if d.kind != decisionCounterExample {
		return presburger.QuantifiedSet[Place]{}, nil, "", nil, false
	}
	return d.counterDisjunct, d.counterTrace, d.counterMethodUsed, d.counterExecutionTime, true
}

// AsTimeout returns the timeout message and true when d is the Timeout
// variant.
func (d Decision[Place]) AsTimeout() (string, bool) {
	if d.kind != decisionTimeout {
		return "", false
	}
	return d.timeoutMessage, true
}
