package petri

import (
	"fmt"
	"sort"
	"strings"
)

// Transition is one (input places, output places) arc: firing it consumes
// one token from each input place and produces one token in each output
// place. Places may repeat within Input/Output to require/produce
// multiple tokens at the same place.
type Transition[Place comparable] struct {
	Input  []Place
	Output []Place
}

// Petri is a place/transition net: an initial marking plus a set of
// transitions, ported field-for-field from the original engine's
// Petri<Place> struct.
type Petri[Place comparable] struct {
	InitialMarking []Place
	Transitions    []Transition[Place]
}

// New returns a Petri net with the given initial marking and no
// transitions.
func New[Place comparable](initialMarking []Place) *Petri[Place] {
	return &Petri[Place]{InitialMarking: append([]Place{}, initialMarking...)}
}

// AddTransition appends a transition with the given input and output
// place multisets.
func (p *Petri[Place]) AddTransition(input, output []Place) {
	p.Transitions = append(p.Transitions, Transition[Place]{
		Input:  append([]Place{}, input...),
		Output: append([]Place{}, output...),
	})
}

// AddExistentialPlace adds a source transition with no inputs producing
// one token in place: firing it repeatedly lets place hold arbitrarily
// many tokens, the standard Petri encoding for "this place may spawn
// unboundedly many instances" (used for request places, which should be
// fireable any number of times rather than only once).
func (p *Petri[Place]) AddExistentialPlace(place Place) {
	p.AddTransition(nil, []Place{place})
}

// GetPlaces returns every place appearing in the initial marking or any
// transition, deterministically sorted by formatted representation.
func (p *Petri[Place]) GetPlaces() []Place {
	seen := map[string]Place{}
	p.ForEachPlace(func(pl Place) { seen[fmt.Sprintf("%v", pl)] = pl })
	return sortedPlaces(seen)
}

// GetInitialMarking returns the initial marking.
func (p *Petri[Place]) GetInitialMarking() []Place {
	return append([]Place{}, p.InitialMarking...)
}

// GetTransitions returns every transition.
func (p *Petri[Place]) GetTransitions() []Transition[Place] {
	return append([]Transition[Place]{}, p.Transitions...)
}

// ForEachPlace invokes f once for every place occurrence in the initial
// marking and every transition's input/output (occurrences are not
// deduplicated; use GetPlaces for that).
func (p *Petri[Place]) ForEachPlace(f func(Place)) {
	for _, pl := range p.InitialMarking {
		f(pl)
	}
	for _, t := range p.Transitions {
		for _, pl := range t.Input {
			f(pl)
		}
		for _, pl := range t.Output {
			f(pl)
		}
	}
}

// Rename maps every place through f, producing a Petri net over a
// different place type. A free function rather than a method since Go
// does not allow a method to introduce a new type parameter.
func Rename[Place, Q comparable](p *Petri[Place], f func(Place) Q) *Petri[Q] {
	out := &Petri[Q]{}
	for _, pl := range p.InitialMarking {
		out.InitialMarking = append(out.InitialMarking, f(pl))
	}
	for _, t := range p.Transitions {
		nt := Transition[Q]{}
		for _, pl := range t.Input {
			nt.Input = append(nt.Input, f(pl))
		}
		for _, pl := range t.Output {
			nt.Output = append(nt.Output, f(pl))
		}
		out.Transitions = append(out.Transitions, nt)
	}
	return out
}

// RemoveIdentityTransitions drops every transition whose input multiset
// equals its output multiset (a no-op transition).
func (p *Petri[Place]) RemoveIdentityTransitions() {
	kept := p.Transitions[:0]
	for _, t := range p.Transitions {
		if !multisetEqual(t.Input, t.Output) {
			kept = append(kept, t)
		}
	}
	p.Transitions = kept
}

// FindUnreachablePlaces returns every place with no incoming transition
// (not produced as any transition's output) and not present in the
// initial marking.
func (p *Petri[Place]) FindUnreachablePlaces() []Place {
	inMarking := map[string]bool{}
	for _, pl := range p.InitialMarking {
		inMarking[fmt.Sprintf("%v", pl)] = true
	}
	produced := map[string]bool{}
	for _, t := range p.Transitions {
		for _, pl := range t.Output {
			produced[fmt.Sprintf("%v", pl)] = true
		}
	}

	var unreachable []Place
	for _, pl := range p.GetPlaces() {
		k := fmt.Sprintf("%v", pl)
		if !produced[k] && !inMarking[k] {
			unreachable = append(unreachable, pl)
		}
	}
	return unreachable
}

// GetSinkPlaces returns every place that never appears as a transition's
// input (so no transition can ever consume a token from it).
func (p *Petri[Place]) GetSinkPlaces() []Place {
	hasOutgoing := map[string]bool{}
	for _, t := range p.Transitions {
		for _, pl := range t.Input {
			hasOutgoing[fmt.Sprintf("%v", pl)] = true
		}
	}

	var sinks []Place
	for _, pl := range p.GetPlaces() {
		if !hasOutgoing[fmt.Sprintf("%v", pl)] {
			sinks = append(sinks, pl)
		}
	}
	return sinks
}

// RemoveTransitionsAndDependents returns a new Petri net with the
// transitions indexed by transitionsToRemove dropped, plus any
// transition that takes placeToRemove as an input.
func (p *Petri[Place]) RemoveTransitionsAndDependents(placeToRemove Place, transitionsToRemove map[int]bool) *Petri[Place] {
	out := &Petri[Place]{InitialMarking: append([]Place{}, p.InitialMarking...)}
	for i, t := range p.Transitions {
		if transitionsToRemove[i] {
			continue
		}
		if containsPlace(t.Input, placeToRemove) {
			continue
		}
		out.Transitions = append(out.Transitions, t)
	}
	return out
}

// CanReachWithAvailableTransitions reports whether destination is
// reachable from the initial marking by repeatedly firing transitions
// whose every input is already available — a forward fixpoint over the
// set of places that can hold a token, not a full token-count-accurate
// reachability analysis (Petri net reachability is undecidable-adjacent
// in general; this set-based over-approximation is what the pruning
// heuristics in this package need).
func (p *Petri[Place]) CanReachWithAvailableTransitions(destination Place) bool {
	reachable := map[string]bool{}
	for _, pl := range p.InitialMarking {
		reachable[fmt.Sprintf("%v", pl)] = true
	}
	destKey := fmt.Sprintf("%v", destination)
	if reachable[destKey] {
		return true
	}

	changed := true
	for changed {
		changed = false
		for _, t := range p.Transitions {
			if !allAvailable(t.Input, reachable) {
				continue
			}
			for _, pl := range t.Output {
				k := fmt.Sprintf("%v", pl)
				if !reachable[k] {
					reachable[k] = true
					changed = true
					if k == destKey {
						return true
					}
				}
			}
		}
	}
	return reachable[destKey]
}

// ToPNet renders p in the ".net" textual format the external checker
// reads: a "net" header, one "pl" line per distinct initially-marked
// place with its token count, and one "tr" line per transition. Place
// names are sanitized (non-alphanumeric characters become '_') since the
// format does not otherwise tolerate arbitrary identifiers.
func (p *Petri[Place]) ToPNet(netName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "net {%s}\n", sanitizePNet(netName))

	markingCount := map[string]int{}
	var markingOrder []string
	for _, pl := range p.InitialMarking {
		s := sanitizePNet(fmt.Sprintf("%v", pl))
		if markingCount[s] == 0 {
			markingOrder = append(markingOrder, s)
		}
		markingCount[s]++
	}
	sort.Strings(markingOrder)
	for _, s := range markingOrder {
		fmt.Fprintf(&b, "pl %s (%d)\n", s, markingCount[s])
	}

	for i, t := range p.Transitions {
		fmt.Fprintf(&b, "tr t%d ", i)
		for _, pl := range t.Input {
			fmt.Fprintf(&b, "%s ", sanitizePNet(fmt.Sprintf("%v", pl)))
		}
		b.WriteString("-> ")
		for j, pl := range t.Output {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(sanitizePNet(fmt.Sprintf("%v", pl)))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func sanitizePNet(s string) string {
	r := []rune(s)
	for i, c := range r {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			r[i] = '_'
		}
	}
	return string(r)
}

// PNetName returns the ".net"/proof-certificate variable name ToPNet
// would assign to place, so callers lifting a parsed proof certificate
// back onto Place values (see invariant.LiftPetriProof) can reconstruct
// the same name table ToPNet used.
func PNetName[Place any](place Place) string {
	return sanitizePNet(fmt.Sprintf("%v", place))
}

func containsPlace[Place comparable](places []Place, target Place) bool {
	for _, pl := range places {
		if pl == target {
			return true
		}
	}
	return false
}

func allAvailable[Place comparable](inputs []Place, reachable map[string]bool) bool {
	for _, pl := range inputs {
		if !reachable[fmt.Sprintf("%v", pl)] {
			return false
		}
	}
	return true
}

func multisetEqual[Place comparable](a, b []Place) bool {
	if len(a) != len(b) {
		return false
	}
	ac := map[string]int{}
	for _, pl := range a {
		ac[fmt.Sprintf("%v", pl)]++
	}
	bc := map[string]int{}
	for _, pl := range b {
		bc[fmt.Sprintf("%v", pl)]++
	}
	if len(ac) != len(bc) {
		return false
	}
	for k, v := range ac {
		if bc[k] != v {
			return false
		}
	}
	return true
}

func sortedPlaces[Place any](m map[string]Place) []Place {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Place, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
