package ns

// RequestStartStep records a request entering the system at a local
// state.
type RequestStartStep[Req, L any] struct {
	Req   Req `json:"req"`
	Local L   `json:"local"`
}

// InternalStepStep records one joint (local, global) transition taken.
type InternalStepStep[L, G any] struct {
	FromLocal  L `json:"from_local"`
	FromGlobal G `json:"from_global"`
	ToLocal    L `json:"to_local"`
	ToGlobal   G `json:"to_global"`
}

// RequestCompleteStep records a response being emitted from a local
// state.
type RequestCompleteStep[L, Resp any] struct {
	Local L    `json:"local"`
	Resp  Resp `json:"resp"`
}

// TraceStep is one step of a counterexample trace, a tagged union
// serialized as spec §6 describes: exactly one of the three fields is
// present, so the JSON rendering is {"RequestStart": {...}} etc. without
// needing a custom Marshaler.
type TraceStep[G, L, Req, Resp any] struct {
	RequestStart    *RequestStartStep[Req, L]      `json:"RequestStart,omitempty"`
	InternalStep    *InternalStepStep[L, G]        `json:"InternalStep,omitempty"`
	RequestComplete *RequestCompleteStep[L, Resp]  `json:"RequestComplete,omitempty"`
}

// NSTrace is a counterexample: a single sequential schedule of request
// starts, internal transitions, and request completions.
type NSTrace[G, L, Req, Resp any] struct {
	Steps []TraceStep[G, L, Req, Resp] `json:"steps"`
}

// CheckTrace replays trace against n, reporting ErrTraceStepInvalid (spec
// §7 "Trace invalid") at the first step that does not match the NS's
// actual requests/transitions/responses.
//
// The replay maintains a multiset of in-flight requests, keyed by their
// current local state, plus a single shared current global state (spec
// §4.11): RequestStart adds one entry at its local state; InternalStep
// moves one matching entry from its from-local to its to-local state and
// advances the shared global; RequestComplete removes one matching entry.
// Any number of requests may be in flight at once, including several at
// the same local state, which is what lets this replay validate the
// interleaved counterexamples the reachability driver actually produces
// (e.g. two concurrent requests racing through the same read-modify-write
// local states).
func CheckTrace[G, L, Req, Resp comparable](n *NS[G, L, Req, Resp], trace NSTrace[G, L, Req, Resp]) error {
	currentGlobal := n.InitialGlobal
	inFlight := map[L]int{}

	for i, step := range trace.Steps {
		switch {
		case step.RequestStart != nil:
			s := step.RequestStart
			if !hasRequestEdge(n, s.Req, s.Local) {
				return nsErrorf("CheckTrace", "step %d: no request edge (%v -> %v): %w", i, s.Req, s.Local, ErrTraceStepInvalid)
			}
			inFlight[s.Local]++

		case step.InternalStep != nil:
			s := step.InternalStep
			if inFlight[s.FromLocal] == 0 {
				return nsErrorf("CheckTrace", "step %d: InternalStep from %v with no matching request in flight: %w", i, s.FromLocal, ErrTraceStepInvalid)
			}
			if s.FromGlobal != currentGlobal {
				return nsErrorf("CheckTrace", "step %d: InternalStep does not start from the current global state: %w", i, ErrTraceStepInvalid)
			}
			if !hasTransition(n, s.FromLocal, s.FromGlobal, s.ToLocal, s.ToGlobal) {
				return nsErrorf("CheckTrace", "step %d: no such transition: %w", i, ErrTraceStepInvalid)
			}
			removeInFlight(inFlight, s.FromLocal)
			inFlight[s.ToLocal]++
			currentGlobal = s.ToGlobal

		case step.RequestComplete != nil:
			s := step.RequestComplete
			if inFlight[s.Local] == 0 {
				return nsErrorf("CheckTrace", "step %d: RequestComplete from %v with no matching request in flight: %w", i, s.Local, ErrTraceStepInvalid)
			}
			if !hasResponseEdge(n, s.Local, s.Resp) {
				return nsErrorf("CheckTrace", "step %d: no response edge (%v -> %v): %w", i, s.Local, s.Resp, ErrTraceStepInvalid)
			}
			removeInFlight(inFlight, s.Local)

		default:
			return nsErrorf("CheckTrace", "step %d: empty trace step", i)
		}
	}
	return nil
}

// removeInFlight decrements the in-flight count at local, dropping the
// key entirely once it reaches zero so inFlight's key set always equals
// the locals with at least one request actually in flight.
func removeInFlight[L comparable](inFlight map[L]int, local L) {
	inFlight[local]--
	if inFlight[local] == 0 {
		delete(inFlight, local)
	}
}

func hasRequestEdge[G, L, Req, Resp comparable](n *NS[G, L, Req, Resp], req Req, local L) bool {
	for _, r := range n.Requests {
		if r.Req == req && r.Local == local {
			return true
		}
	}
	return false
}

func hasTransition[G, L, Req, Resp comparable](n *NS[G, L, Req, Resp], fromL L, fromG G, toL L, toG G) bool {
	for _, t := range n.Transitions {
		if t.FromLocal == fromL && t.FromGlobal == fromG && t.ToLocal == toL && t.ToGlobal == toG {
			return true
		}
	}
	return false
}

func hasResponseEdge[G, L, Req, Resp comparable](n *NS[G, L, Req, Resp], local L, resp Resp) bool {
	for _, r := range n.Responses {
		if r.Local == local && r.Resp == resp {
			return true
		}
	}
	return false
}
