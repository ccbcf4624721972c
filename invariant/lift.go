package invariant

import (
	"sort"

	"github.com/katalvlaran/serialcheck/petri"
	"github.com/katalvlaran/serialcheck/presburger"
)

// GlobalInvariant is the invariant a lifted proof certificate ascribes
// to one global state: a Presburger set over variables named by
// RequestStatePair, one per (request, local-or-response state) place of
// the Petri net, whether or not the certificate's formula mentions it.
type GlobalInvariant[Req, L, Resp comparable] struct {
	Variables []RequestStatePair[Req, L, Resp]
	Formula   presburger.Set[string]
}

// NSInvariant is a serializability proof candidate: one GlobalInvariant
// per global state of the NS the proof was produced for.
type NSInvariant[G comparable, Req, L, Resp comparable] struct {
	GlobalInvariants map[G]GlobalInvariant[Req, L, Resp]
}

// LiftPetriProof translates petriFormula — a Presburger set over the
// sanitized place-name variables a Petri proof certificate uses (see
// petri.PNetName) — into a per-global-state NSInvariant.
//
// For each global state g, every Global(g') variable is specialized to 1
// (if g'==g) or 0 (otherwise) and projected away; every Local(req, l)
// variable is renamed to its RequestStatePair(req, InFlight(l)) name, and
// every Response(req, resp) variable to RequestStatePair(req,
// Completed(resp)). A Request(req) variable appearing directly in the
// formula has no place in this scheme (spec §9's proof-lifter Open
// Question) and yields ErrUnsupportedLeftRequest.
func LiftPetriProof[G, L, Req, Resp comparable](
	petriFormula presburger.Set[string],
	places []petri.State[L, G, Req, Resp],
	globalStates []G,
) (NSInvariant[G, Req, L, Resp], error) {
	if err := checkNoRequestPlaces(petriFormula, places); err != nil {
		return NSInvariant[G, Req, L, Resp]{}, err
	}

	result := NSInvariant[G, Req, L, Resp]{GlobalInvariants: map[G]GlobalInvariant[Req, L, Resp]{}}
	for _, g := range globalStates {
		gi, err := specializeForGlobal(petriFormula, places, g)
		if err != nil {
			return NSInvariant[G, Req, L, Resp]{}, invariantErrorf("LiftPetriProof", "global state %v: %s", g, err)
		}
		result.GlobalInvariants[g] = gi
	}
	return result, nil
}

func checkNoRequestPlaces[L, G, Req, Resp comparable](petriFormula presburger.Set[string], places []petri.State[L, G, Req, Resp]) error {
	requestNames := map[string]bool{}
	for _, pl := range places {
		if pl.IsRequest() {
			requestNames[petri.PNetName(pl)] = true
		}
	}
	if len(requestNames) == 0 {
		return nil
	}
	for _, qs := range petriFormula.Disjuncts() {
		for _, c := range qs.Constraints {
			for _, t := range c.Terms {
				if !t.Var.IsExistential() && requestNames[t.Var.OriginalLabel()] {
					return ErrUnsupportedLeftRequest
				}
			}
		}
	}
	return nil
}

func specializeForGlobal[L, G, Req, Resp comparable](petriFormula presburger.Set[string], places []petri.State[L, G, Req, Resp], g G) (GlobalInvariant[Req, L, Resp], error) {
	cur := petriFormula
	var vars []RequestStatePair[Req, L, Resp]
	seen := map[string]bool{}

	for _, pl := range places {
		name := petri.PNetName(pl)
		switch {
		case pl.IsGlobal():
			gv, _ := pl.AsGlobal()
			value := 0
			if gv == g {
				value = 1
			}
			var err error
			cur, err = fixVariable(cur, name, value)
			if err != nil {
				return GlobalInvariant[Req, L, Resp]{}, err
			}

		case pl.IsLocal():
			req, l, _ := pl.AsLocal()
			newName := inFlightVarName(req, l)
			cur = presburger.Rename(cur, name, newName)
			if !seen[newName] {
				seen[newName] = true
				vars = append(vars, RequestStatePair[Req, L, Resp]{Req: req, State: InFlight[L, Resp](l)})
			}

		case pl.IsResponse():
			req, resp, _ := pl.AsResponse()
			newName := completedVarName(req, resp)
			cur = presburger.Rename(cur, name, newName)
			if !seen[newName] {
				seen[newName] = true
				vars = append(vars, RequestStatePair[Req, L, Resp]{Req: req, State: Completed[L, Resp](resp)})
			}
		}
	}

	sort.Slice(vars, func(i, j int) bool { return vars[i].String() < vars[j].String() })
	return GlobalInvariant[Req, L, Resp]{Variables: vars, Formula: cur}, nil
}
