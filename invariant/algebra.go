package invariant

import (
	"errors"

	"github.com/katalvlaran/serialcheck/presburger"
)

// fixVariable restricts s to the assignments where name equals value,
// then projects name out entirely — the Presburger equivalent of
// substituting a constant for one free variable.
func fixVariable(s presburger.Set[string], name string, value int) (presburger.Set[string], error) {
	fixed := presburger.FromQuantifiedSets([]presburger.QuantifiedSet[string]{
		presburger.NewQuantifiedSet([]presburger.Constraint[string]{
			presburger.Equality([]presburger.Term[string]{{Coef: 1, Var: presburger.Original(name)}}, -value),
		}, 0),
	})
	return presburger.ProjectOut(presburger.Intersect(s, fixed), name)
}

// atLeastOne returns the set of assignments where name is at least 1,
// used as the precondition for "a token is available to consume".
func atLeastOne(name string) presburger.Set[string] {
	return presburger.FromQuantifiedSets([]presburger.QuantifiedSet[string]{
		presburger.NewQuantifiedSet([]presburger.Constraint[string]{
			presburger.Inequality([]presburger.Term[string]{{Coef: 1, Var: presburger.Original(name)}}, -1),
		}, 0),
	})
}

// shiftVariable reinterprets every occurrence of name as (name+delta):
// since a term coef*name contributes coef*delta to the constant once
// name is shifted, every constraint mentioning name has its constant
// adjusted accordingly and is otherwise untouched.
func shiftVariable(s presburger.Set[string], name string, delta int) presburger.Set[string] {
	var union []presburger.QuantifiedSet[string]
	for _, qs := range s.Disjuncts() {
		constraints := make([]presburger.Constraint[string], len(qs.Constraints))
		for i, c := range qs.Constraints {
			constraints[i] = shiftConstraint(c, name, delta)
		}
		union = append(union, presburger.NewQuantifiedSet(constraints, qs.NumExistentials))
	}
	return presburger.FromQuantifiedSets(union)
}

func shiftConstraint(c presburger.Constraint[string], name string, delta int) presburger.Constraint[string] {
	coef := 0
	for _, t := range c.Terms {
		if !t.Var.IsExistential() && t.Var.OriginalLabel() == name {
			coef = t.Coef
			break
		}
	}
	if coef == 0 {
		return c
	}
	newConst := c.Const + coef*delta
	switch c.Kind {
	case presburger.NonNegative:
		return presburger.Inequality(c.Terms, newConst)
	case presburger.Congruence:
		return presburger.CongruenceConstraint(c.Terms, newConst, c.Modulus)
	default:
		return presburger.Equality(c.Terms, newConst)
	}
}

// moveToken models consuming one token from fromVar and producing one in
// toVar: it requires fromVar >= 1, then re-expresses the set in terms of
// the post-move values of fromVar and toVar (fromVar decreased by one,
// toVar increased by one).
func moveToken(s presburger.Set[string], fromVar, toVar string) presburger.Set[string] {
	precond := presburger.Intersect(s, atLeastOne(fromVar))
	return shiftVariable(shiftVariable(precond, fromVar, 1), toVar, -1)
}

// addToken models unconditionally producing one token in toVar (request
// creation: no token is consumed).
func addToken(s presburger.Set[string], toVar string) presburger.Set[string] {
	return shiftVariable(s, toVar, -1)
}

// implies reports whether every assignment satisfying antecedent also
// satisfies consequent: antecedent implies consequent iff their
// difference (antecedent minus consequent) is empty.
//
// IsEmpty can report ErrSearchBoundExceeded on a genuinely empty
// disjunct that still mentions variables (it searched the whole bound
// and found no witness). implies takes that outcome as emptiness, so it
// counts as a holding implication and is not propagated as an error
// here; a witness lying beyond the search bound is not seen. Any other error (malformed sets, a harmonization bug)
// still aborts the check.
func implies(antecedent, consequent presburger.Set[string]) (bool, error) {
	diff, err := presburger.Difference(antecedent, consequent)
	if err != nil {
		return false, err
	}
	empty, err := presburger.IsEmpty(diff)
	if err != nil && !errors.Is(err, presburger.ErrSearchBoundExceeded) {
		return false, err
	}
	return empty, nil
}
