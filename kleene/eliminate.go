package kleene

import (
	"fmt"
	"sort"
)

// NFAToKleene reduces a labelled nondeterministic automaton to the single
// Kleene element describing every path from start back to itself.
//
// The algorithm eliminates every state other than start one at a time:
// for the eliminated state, its self-loops fold (via Plus, then Star)
// into a single "pass through" element, and every incoming/outgoing edge
// pair is replaced by a shortcut edge carrying incoming.Times(selfLoop
// .Times(outgoing)). States are eliminated in a fixed, sorted order
// (formatted via %v) so the result does not depend on map iteration
// order.
//
// zero must be the Kleene zero for T; it seeds the fold over edges with
// no matching classification.
func NFAToKleene[S comparable, T Kleene[T]](edges []Edge[S, T], start S, zero T) (T, error) {
	nfa := append([]Edge[S, T]{}, edges...)

	statesSeen := make(map[S]struct{})
	for _, e := range nfa {
		statesSeen[e.From] = struct{}{}
		statesSeen[e.To] = struct{}{}
	}
	delete(statesSeen, start)

	var todo []S
	for s := range statesSeen {
		todo = append(todo, s)
	}
	sort.Slice(todo, func(i, j int) bool {
		return fmt.Sprintf("%v", todo[i]) < fmt.Sprintf("%v", todo[j])
	})

	for _, state := range todo {
		var newNFA, incoming, outgoing, selfLoops []Edge[S, T]
		for _, e := range nfa {
			switch {
			case e.From == state && e.To == state:
				selfLoops = append(selfLoops, e)
			case e.From == state:
				outgoing = append(outgoing, e)
			case e.To == state:
				incoming = append(incoming, e)
			default:
				newNFA = append(newNFA, e)
			}
		}

		selfLoop := zero
		for _, e := range selfLoops {
			selfLoop = selfLoop.Plus(e.Label)
		}
		selfLoop, err := selfLoop.Star()
		if err != nil {
			return zero, kleeneErrorf("NFAToKleene", err)
		}

		for _, in := range incoming {
			for _, out := range outgoing {
				newNFA = append(newNFA, Edge[S, T]{
					From:  in.From,
					Label: in.Label.Times(selfLoop.Times(out.Label)),
					To:    out.To,
				})
			}
		}

		nfa = newNFA
	}

	answer := zero
	for _, e := range nfa {
		if e.From != start || e.To != start {
			return zero, kleeneErrorf("NFAToKleene", fmt.Errorf("residual edge %v -> %v after eliminating every non-start state", e.From, e.To))
		}
		answer = answer.Plus(e.Label)
	}
	return answer.Star()
}
