package petri

import (
	"fmt"

	"github.com/katalvlaran/serialcheck/ns"
)

type stateKind int

const (
	stateLocal stateKind = iota
	stateGlobal
	stateRequest
	stateResponse
)

// State is the place type an NS compiles down to: every global state,
// request, and request-correlated local/response becomes its own place.
// Local and Response are both indexed by the request type they belong to
// (spec §3's request-aware encoding, "Local is indexed by the request
// type so that responses can be correlated per client"), so that two
// concurrently in-flight requests of different types never share a place
// even if their underlying local/response values format identically.
type State[L, G, Req, Resp any] struct {
	kind     stateKind
	local    L
	global   G
	request  Req
	response Resp
}

// Local builds a State wrapping the local state l as reached by a
// request of type req.
func Local[L, G, Req, Resp any](req Req, l L) State[L, G, Req, Resp] {
	return State[L, G, Req, Resp]{kind: stateLocal, request: req, local: l}
}

// Global builds a State wrapping a global state.
func Global[L, G, Req, Resp any](g G) State[L, G, Req, Resp] {
	return State[L, G, Req, Resp]{kind: stateGlobal, global: g}
}

// Request builds a State wrapping a request.
func Request[L, G, Req, Resp any](r Req) State[L, G, Req, Resp] {
	return State[L, G, Req, Resp]{kind: stateRequest, request: r}
}

// Response builds a State wrapping the response resp as emitted by a
// request of type req.
func Response[L, G, Req, Resp any](req Req, resp Resp) State[L, G, Req, Resp] {
	return State[L, G, Req, Resp]{kind: stateResponse, request: req, response: resp}
}

// IsLocal reports whether s wraps a request-correlated local state.
func (s State[L, G, Req, Resp]) IsLocal() bool { return s.kind == stateLocal }

// IsGlobal reports whether s wraps a global state.
func (s State[L, G, Req, Resp]) IsGlobal() bool { return s.kind == stateGlobal }

// IsRequest reports whether s wraps a request place.
func (s State[L, G, Req, Resp]) IsRequest() bool { return s.kind == stateRequest }

// IsResponse reports whether s wraps a request-correlated response.
// Response places are the "right" half of the bipartition spec §3
// describes (the progress places, Local/Global/Request, form the "left"
// half; see petri.Bipartition).
func (s State[L, G, Req, Resp]) IsResponse() bool { return s.kind == stateResponse }

// AsLocal returns the request type and local state s wraps, and true, if
// s IsLocal; otherwise the zero values and false.
func (s State[L, G, Req, Resp]) AsLocal() (Req, L, bool) {
	if s.kind != stateLocal {
		var zr Req
		var zl L
		return zr, zl, false
	}
	return s.request, s.local, true
}

// AsGlobal returns the global state s wraps, and true, if s IsGlobal;
// otherwise the zero value and false.
func (s State[L, G, Req, Resp]) AsGlobal() (G, bool) {
	if s.kind != stateGlobal {
		var zg G
		return zg, false
	}
	return s.global, true
}

// AsRequest returns the request type s wraps, and true, if s IsRequest;
// otherwise the zero value and false.
func (s State[L, G, Req, Resp]) AsRequest() (Req, bool) {
	if s.kind != stateRequest {
		var zr Req
		return zr, false
	}
	return s.request, true
}

// AsResponse returns the request type and response s wraps, and true, if
// s IsResponse; otherwise the zero values and false.
func (s State[L, G, Req, Resp]) AsResponse() (Req, Resp, bool) {
	if s.kind != stateResponse {
		var zreq Req
		var zresp Resp
		return zreq, zresp, false
	}
	return s.request, s.response, true
}

// String renders the place the way the original engine's Display impl
// does, extended with the correlating request type for Local/Response:
// "L_req_x", "G_x", "REQ_x", "RESP_req_x".
func (s State[L, G, Req, Resp]) String() string {
	switch s.kind {
	case stateLocal:
		return fmt.Sprintf("L_%v_%v", s.request, s.local)
	case stateGlobal:
		return fmt.Sprintf("G_%v", s.global)
	case stateRequest:
		return fmt.Sprintf("REQ_%v", s.request)
	default:
		return fmt.Sprintf("RESP_%v_%v", s.request, s.response)
	}
}

// FromNS compiles n into a request-aware Petri net (spec §4.6): every
// request (req, local) becomes a one-in-one-out transition from
// Request(req) to Local(req, local); for every request type req and
// every joint (local, global) transition of n, a copy Local(req, local)
// + Global(global) -> Local(req, local') + Global(global') is added, so
// that concurrently in-flight requests of different types advance
// through independent copies of the local-state space; and likewise one
// Local(req, local) -> Response(req, resp) transition per request type
// and per response edge.
//
// Unlike the original engine's ns_to_petri, which leaves every
// Request(req) place permanently empty (nothing ever produces a token
// there, so the request transition can never fire), this port also calls
// AddExistentialPlace for every distinct request type, matching spec
// §4.7: a request may be submitted arbitrarily many times, not at most
// once.
func FromNS[G, L, Req, Resp comparable](n *ns.NS[G, L, Req, Resp]) *Petri[State[L, G, Req, Resp]] {
	p := New([]State[L, G, Req, Resp]{Global[L, G, Req, Resp](n.InitialGlobal)})

	var reqTypes []Req
	seenRequests := map[Req]bool{}
	for _, r := range n.Requests {
		p.AddTransition(
			[]State[L, G, Req, Resp]{Request[L, G, Req, Resp](r.Req)},
			[]State[L, G, Req, Resp]{Local[L, G, Req, Resp](r.Req, r.Local)},
		)
		if !seenRequests[r.Req] {
			seenRequests[r.Req] = true
			reqTypes = append(reqTypes, r.Req)
			p.AddExistentialPlace(Request[L, G, Req, Resp](r.Req))
		}
	}

	for _, req := range reqTypes {
		for _, r := range n.Responses {
			p.AddTransition(
				[]State[L, G, Req, Resp]{Local[L, G, Req, Resp](req, r.Local)},
				[]State[L, G, Req, Resp]{Response[L, G, Req, Resp](req, r.Resp)},
			)
		}
		for _, t := range n.Transitions {
			p.AddTransition(
				[]State[L, G, Req, Resp]{Local[L, G, Req, Resp](req, t.FromLocal), Global[L, G, Req, Resp](t.FromGlobal)},
				[]State[L, G, Req, Resp]{Local[L, G, Req, Resp](req, t.ToLocal), Global[L, G, Req, Resp](t.ToGlobal)},
			)
		}
	}

	return p
}

// Bipartition splits p's places into the "left" progress places
// (Global, Local, Request) and the "right" response sinks (Response),
// matching spec §3's "the request-aware net is viewed as a bipartite
// place set ... so proofs can substitute the two halves independently".
func Bipartition[L, G, Req, Resp comparable](p *Petri[State[L, G, Req, Resp]]) (left, right []State[L, G, Req, Resp]) {
	for _, pl := range p.GetPlaces() {
		if pl.IsResponse() {
			right = append(right, pl)
		} else {
			left = append(left, pl)
		}
	}
	return left, right
}
