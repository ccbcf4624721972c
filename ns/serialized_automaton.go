package ns

import (
	"fmt"

	"github.com/katalvlaran/serialcheck/kleene"
	"github.com/katalvlaran/serialcheck/spresburger"
)

// ResponsePair is the alphabet symbol the serialization automaton's
// edges are labelled by: one completed (request, response) pair.
type ResponsePair[Req, Resp comparable] struct {
	Req  Req
	Resp Resp
}

// String renders "(req,resp)".
func (p ResponsePair[Req, Resp]) String() string {
	return fmt.Sprintf("(%v,%v)", p.Req, p.Resp)
}

type jointState[L, G comparable] struct {
	Local  L
	Global G
}

func (s jointState[L, G]) key() string { return fmt.Sprintf("%v|%v", s.Local, s.Global) }

// SerializedAutomaton views the NS as an NFA over global states, with an
// edge g -> g' for every (request, response) pair reachable by entering
// at the request's local state from g and following joint (local,
// global) transitions until some local state that emits that response is
// reached at g'. Reducing this NFA (kleene.NFAToKleene) yields the
// semilinear target: the set of multisets of completed (req, resp) pairs
// attainable by some sequential schedule (spec §4.6).
func SerializedAutomaton[G, L, Req, Resp comparable](n *NS[G, L, Req, Resp]) (spresburger.Set[ResponsePair[Req, Resp]], error) {
	adjacency := map[string][]jointState[L, G]{}
	for _, t := range n.Transitions {
		from := jointState[L, G]{Local: t.FromLocal, Global: t.FromGlobal}
		adjacency[from.key()] = append(adjacency[from.key()], jointState[L, G]{Local: t.ToLocal, Global: t.ToGlobal})
	}
	responsesByLocal := map[string][]Resp{}
	for _, r := range n.Responses {
		lk := fmt.Sprintf("%v", r.Local)
		responsesByLocal[lk] = append(responsesByLocal[lk], r.Resp)
	}

	globals := n.GetGlobalStates()
	var edges []kleene.Edge[G, spresburger.Set[ResponsePair[Req, Resp]]]

	for _, req := range n.Requests {
		for _, g0 := range globals {
			start := jointState[L, G]{Local: req.Local, Global: g0}
			visited := map[string]bool{start.key(): true}
			queue := []jointState[L, G]{start}

			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]

				if resps, ok := responsesByLocal[fmt.Sprintf("%v", cur.Local)]; ok {
					for _, resp := range resps {
						edges = append(edges, kleene.Edge[G, spresburger.Set[ResponsePair[Req, Resp]]]{
							From:  g0,
							Label: spresburger.Atom(ResponsePair[Req, Resp]{Req: req.Req, Resp: resp}),
							To:    cur.Global,
						})
					}
				}
				for _, next := range adjacency[cur.key()] {
					if k := next.key(); !visited[k] {
						visited[k] = true
						queue = append(queue, next)
					}
				}
			}
		}
	}

	zero := spresburger.Empty[ResponsePair[Req, Resp]]()
	return kleene.NFAToKleene(edges, n.InitialGlobal, zero)
}
