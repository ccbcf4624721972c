package invariant

import (
	"github.com/katalvlaran/serialcheck/ns"
	"github.com/katalvlaran/serialcheck/presburger"
)

// CheckInitial verifies that the empty multiset (no request in flight or
// completed anywhere) satisfies n's invariant for the initial global
// state: every free variable of that GlobalInvariant is fixed to zero and
// the resulting ground formula must be satisfiable.
func CheckInitial[G, Req, L, Resp comparable](inv NSInvariant[G, Req, L, Resp], n *ns.NS[G, L, Req, Resp]) error {
	gi, ok := inv.GlobalInvariants[n.InitialGlobal]
	if !ok {
		return invariantErrorf("CheckInitial", "%v: %s", n.InitialGlobal, ErrMissingGlobalInvariant)
	}

	cur := gi.Formula
	for _, v := range gi.Variables {
		var err error
		cur, err = fixVariable(cur, variableName(v), 0)
		if err != nil {
			return invariantErrorf("CheckInitial", "%s", err)
		}
	}

	empty, err := presburger.IsEmpty(cur)
	if err != nil {
		return invariantErrorf("CheckInitial", "%s", err)
	}
	if empty {
		return invariantErrorf("CheckInitial", "initial state does not satisfy the invariant for global state %v", n.InitialGlobal)
	}
	return nil
}

// CheckInductive verifies that the invariant is preserved by every kind
// of step the NS can take: a request being created, an internal
// (local,global)->(local',global') transition, and a request completing
// with a response.
func CheckInductive[G, Req, L, Resp comparable](inv NSInvariant[G, Req, L, Resp], n *ns.NS[G, L, Req, Resp]) error {
	requestTypes := distinctRequestTypes(n)

	for _, t := range n.Transitions {
		fromInv, ok := inv.GlobalInvariants[t.FromGlobal]
		if !ok {
			return invariantErrorf("CheckInductive", "%v: %s", t.FromGlobal, ErrMissingGlobalInvariant)
		}
		toInv, ok := inv.GlobalInvariants[t.ToGlobal]
		if !ok {
			return invariantErrorf("CheckInductive", "%v: %s", t.ToGlobal, ErrMissingGlobalInvariant)
		}

		for _, req := range requestTypes {
			fromName := inFlightVarName(req, t.FromLocal)
			toName := inFlightVarName(req, t.ToLocal)
			after := moveToken(fromInv.Formula, fromName, toName)
			ok, err := implies(after, toInv.Formula)
			if err != nil {
				return invariantErrorf("CheckInductive", "%s", err)
			}
			if !ok {
				return invariantErrorf("CheckInductive",
					"not preserved by transition (%v,%v) -> (%v,%v) for request %v",
					t.FromLocal, t.FromGlobal, t.ToLocal, t.ToGlobal, req)
			}
		}
	}

	initialInv, ok := inv.GlobalInvariants[n.InitialGlobal]
	if !ok {
		return invariantErrorf("CheckInductive", "%v: %s", n.InitialGlobal, ErrMissingGlobalInvariant)
	}
	for _, r := range n.Requests {
		newName := inFlightVarName(r.Req, r.Local)
		after := addToken(initialInv.Formula, newName)
		ok, err := implies(after, initialInv.Formula)
		if err != nil {
			return invariantErrorf("CheckInductive", "%s", err)
		}
		if !ok {
			return invariantErrorf("CheckInductive", "not preserved by request creation: %v at local state %v", r.Req, r.Local)
		}
	}

	for _, r := range n.Responses {
		for _, g := range n.GetGlobalStates() {
			gi, ok := inv.GlobalInvariants[g]
			if !ok {
				return invariantErrorf("CheckInductive", "%v: %s", g, ErrMissingGlobalInvariant)
			}
			for _, req := range requestTypes {
				fromName := inFlightVarName(req, r.Local)
				toName := completedVarName(req, r.Resp)
				after := moveToken(gi.Formula, fromName, toName)
				ok, err := implies(after, gi.Formula)
				if err != nil {
					return invariantErrorf("CheckInductive", "%s", err)
				}
				if !ok {
					return invariantErrorf("CheckInductive",
						"not preserved by request completion: %v at %v -> %v in global state %v",
						req, r.Local, r.Resp, g)
				}
			}
		}
	}

	return nil
}

// CheckTargetImplication verifies that, once every in-flight request is
// set aside (projected to zero), the remaining completed-request
// multiset is always a member of target — the Presburger set of
// serializable completed-response multisets (spec §4.5/§4.9).
func CheckTargetImplication[G, Req, L, Resp comparable](inv NSInvariant[G, Req, L, Resp], target presburger.Set[string]) error {
	for g, gi := range inv.GlobalInvariants {
		cur := gi.Formula
		for _, v := range gi.Variables {
			if _, ok := v.State.AsInFlight(); ok {
				var err error
				cur, err = fixVariable(cur, variableName(v), 0)
				if err != nil {
					return invariantErrorf("CheckTargetImplication", "%s", err)
				}
			}
		}

		ok, err := implies(cur, target)
		if err != nil {
			return invariantErrorf("CheckTargetImplication", "%s", err)
		}
		if !ok {
			return invariantErrorf("CheckTargetImplication", "invariant for global state %v does not imply serializability", g)
		}
	}
	return nil
}

// CheckProof runs all three checks in sequence, matching the original
// engine's check_proof pipeline.
func CheckProof[G, Req, L, Resp comparable](inv NSInvariant[G, Req, L, Resp], n *ns.NS[G, L, Req, Resp], target presburger.Set[string]) error {
	if err := CheckInitial(inv, n); err != nil {
		return err
	}
	if err := CheckInductive(inv, n); err != nil {
		return err
	}
	return CheckTargetImplication(inv, target)
}

func variableName[Req, L, Resp comparable](v RequestStatePair[Req, L, Resp]) string {
	if l, ok := v.State.AsInFlight(); ok {
		return inFlightVarName(v.Req, l)
	}
	resp, _ := v.State.AsCompleted()
	return completedVarName(v.Req, resp)
}

func distinctRequestTypes[G, L, Req, Resp comparable](n *ns.NS[G, L, Req, Resp]) []Req {
	seen := map[Req]bool{}
	var out []Req
	for _, r := range n.Requests {
		if !seen[r.Req] {
			seen[r.Req] = true
			out = append(out, r.Req)
		}
	}
	return out
}
