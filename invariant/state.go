package invariant

import (
	"encoding/json"
	"fmt"
)

// RequestState is either InFlight(L) — the request is still executing,
// suspended at local state L — or Completed(Resp) — the request has
// returned Resp to its caller.
type RequestState[L, Resp any] struct {
	inFlight bool
	local    L
	resp     Resp
}

// InFlight builds a RequestState for a request suspended at local state l.
func InFlight[L, Resp any](l L) RequestState[L, Resp] {
	return RequestState[L, Resp]{inFlight: true, local: l}
}

// Completed builds a RequestState for a request that returned resp.
func Completed[L, Resp any](resp Resp) RequestState[L, Resp] {
	return RequestState[L, Resp]{resp: resp}
}

// IsInFlight reports whether rs is InFlight.
func (rs RequestState[L, Resp]) IsInFlight() bool { return rs.inFlight }

// AsInFlight returns rs's local state and true if rs IsInFlight;
// otherwise the zero value and false.
func (rs RequestState[L, Resp]) AsInFlight() (L, bool) {
	return rs.local, rs.inFlight
}

// AsCompleted returns rs's response and true if rs is Completed;
// otherwise the zero value and false.
func (rs RequestState[L, Resp]) AsCompleted() (Resp, bool) {
	return rs.resp, !rs.inFlight
}

func (rs RequestState[L, Resp]) String() string {
	if rs.inFlight {
		return fmt.Sprintf("InFlight(%v)", rs.local)
	}
	return fmt.Sprintf("Completed(%v)", rs.resp)
}

// requestStateJSON mirrors RequestState's wire shape: a tagged object
// with exactly one of "InFlight" or "Completed" set, matching the tagged
// unions ns.TraceStep and decision.NSDecision also use.
type requestStateJSON[L, Resp any] struct {
	InFlight *L    `json:"InFlight,omitempty"`
	Completed *Resp `json:"Completed,omitempty"`
}

// MarshalJSON renders rs as {"InFlight":L} or {"Completed":Resp}.
func (rs RequestState[L, Resp]) MarshalJSON() ([]byte, error) {
	if rs.inFlight {
		return json.Marshal(requestStateJSON[L, Resp]{InFlight: &rs.local})
	}
	return json.Marshal(requestStateJSON[L, Resp]{Completed: &rs.resp})
}

// UnmarshalJSON is MarshalJSON's inverse.
func (rs *RequestState[L, Resp]) UnmarshalJSON(data []byte) error {
	var rj requestStateJSON[L, Resp]
	if err := json.Unmarshal(data, &rj); err != nil {
		return err
	}
	if rj.InFlight != nil {
		rs.inFlight = true
		rs.local = *rj.InFlight
		return nil
	}
	if rj.Completed != nil {
		rs.resp = *rj.Completed
	}
	return nil
}

// RequestStatePair pairs a request with its current state, the free
// variable shape a lifted NS-level invariant is expressed over.
type RequestStatePair[Req, L, Resp any] struct {
	Req   Req
	State RequestState[L, Resp]
}

func (p RequestStatePair[Req, L, Resp]) String() string {
	if l, ok := p.State.AsInFlight(); ok {
		return fmt.Sprintf("%v%v", p.Req, l)
	}
	resp, _ := p.State.AsCompleted()
	return fmt.Sprintf("%v/%v", p.Req, resp)
}

// CompletedRequestPair pairs a request with the response it completed
// with, the shape a ProjectToCompleted'd invariant is expressed over.
type CompletedRequestPair[Req, Resp any] struct {
	Req  Req
	Resp Resp
}

func (p CompletedRequestPair[Req, Resp]) String() string {
	return fmt.Sprintf("%v/%v", p.Req, p.Resp)
}

// inFlightVarName and completedVarName are this package's variable-
// naming scheme for presburger.Set[string]: distinct prefixes keep an
// in-flight pair and a completed pair from ever colliding even when
// Req/L/Resp happen to format identically.
func inFlightVarName[Req, L any](req Req, l L) string {
	return fmt.Sprintf("if:%v:%v", req, l)
}

func completedVarName[Req, Resp any](req Req, resp Resp) string {
	return fmt.Sprintf("cm:%v:%v", req, resp)
}

// CompletedVariableName is completedVarName exported for callers (the
// reachability/decision packages) building a target Presburger set whose
// variables must line up with GlobalInvariant's after
// CheckTargetImplication/ProjectToCompleted.
func CompletedVariableName[Req, Resp any](req Req, resp Resp) string {
	return completedVarName(req, resp)
}
