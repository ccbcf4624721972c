package ns

import (
	"fmt"
	"sort"
)

// RequestEdge records that a request of type Req lands at local state L.
type RequestEdge[Req, L comparable] struct {
	Req   Req
	Local L
}

// ResponseEdge records that local state L can emit response Resp.
type ResponseEdge[L, Resp comparable] struct {
	Local L
	Resp  Resp
}

// Transition records a joint (local, global) -> (local', global') step.
type Transition[L, G comparable] struct {
	FromLocal  L
	FromGlobal G
	ToLocal    L
	ToGlobal   G
}

// NS is a Network System over (G, L, Req, Resp): the request/response/
// transition graph a program's symbolic execution produces. It carries
// an explicit InitialGlobal, unlike the original engine's struct (whose
// zero-argument constructor implicitly meant "the zero-valued global
// environment") — spec §3 names initial_global as a real field, so this
// port makes the convention explicit rather than baking in a particular
// G's zero value.
type NS[G, L, Req, Resp comparable] struct {
	InitialGlobal G
	Requests      []RequestEdge[Req, L]
	Responses     []ResponseEdge[L, Resp]
	Transitions   []Transition[L, G]
}

// New returns an empty NS with the given initial global state.
func New[G, L, Req, Resp comparable](initialGlobal G) *NS[G, L, Req, Resp] {
	return &NS[G, L, Req, Resp]{InitialGlobal: initialGlobal}
}

// AddRequest records that req lands at local.
func (n *NS[G, L, Req, Resp]) AddRequest(req Req, local L) {
	n.Requests = append(n.Requests, RequestEdge[Req, L]{Req: req, Local: local})
}

// AddResponse records that local can emit resp.
func (n *NS[G, L, Req, Resp]) AddResponse(local L, resp Resp) {
	n.Responses = append(n.Responses, ResponseEdge[L, Resp]{Local: local, Resp: resp})
}

// AddTransition records a joint transition.
func (n *NS[G, L, Req, Resp]) AddTransition(fromLocal L, fromGlobal G, toLocal L, toGlobal G) {
	n.Transitions = append(n.Transitions, Transition[L, G]{
		FromLocal: fromLocal, FromGlobal: fromGlobal,
		ToLocal: toLocal, ToGlobal: toGlobal,
	})
}

// GetLocalStates returns every local state appearing anywhere in the NS,
// deterministically sorted by formatted representation.
func (n *NS[G, L, Req, Resp]) GetLocalStates() []L {
	seen := map[string]L{}
	add := func(l L) { seen[fmt.Sprintf("%v", l)] = l }
	for _, r := range n.Requests {
		add(r.Local)
	}
	for _, r := range n.Responses {
		add(r.Local)
	}
	for _, t := range n.Transitions {
		add(t.FromLocal)
		add(t.ToLocal)
	}
	return sortedValues(seen)
}

// GetGlobalStates returns every global state appearing anywhere in the
// NS (including InitialGlobal), deterministically sorted.
func (n *NS[G, L, Req, Resp]) GetGlobalStates() []G {
	seen := map[string]G{}
	add := func(g G) { seen[fmt.Sprintf("%v", g)] = g }
	add(n.InitialGlobal)
	for _, t := range n.Transitions {
		add(t.FromGlobal)
		add(t.ToGlobal)
	}
	return sortedValues(seen)
}

// GetRequests returns every (Req, L) request edge.
func (n *NS[G, L, Req, Resp]) GetRequests() []RequestEdge[Req, L] {
	return n.Requests
}

// GetResponses returns every (L, Resp) response edge.
func (n *NS[G, L, Req, Resp]) GetResponses() []ResponseEdge[L, Resp] {
	return n.Responses
}

func sortedValues[T any](m map[string]T) []T {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
