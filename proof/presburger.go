package proof

import (
	"fmt"

	"github.com/katalvlaran/serialcheck/presburger"
)

// ToPresburgerSet translates f into a presburger.Set[string] over its
// free variable names, by structural recursion: a Constraint becomes a
// single-conjunct QuantifiedSet, And/Or become Intersect/Union, and
// Exists/Forall become ProjectOut (Forall via the standard
// not-exists-not encoding), mirroring the original engine's
// to_presburger_constraint.
func ToPresburgerSet(f Formula) (presburger.Set[string], error) {
	switch f.kind {
	case formulaConstraint:
		return presburger.FromQuantifiedSets([]presburger.QuantifiedSet[string]{
			presburger.NewQuantifiedSet(
				[]presburger.Constraint[string]{toPresburgerConstraint(f.constraint)}, 0),
		}), nil

	case formulaAnd:
		result := presburger.FromQuantifiedSets([]presburger.QuantifiedSet[string]{{}}) // universe
		for _, part := range f.parts {
			converted, err := ToPresburgerSet(part)
			if err != nil {
				return presburger.Set[string]{}, err
			}
			result = presburger.Intersect(result, converted)
		}
		return result, nil

	case formulaOr:
		result := presburger.Empty[string]()
		for _, part := range f.parts {
			converted, err := ToPresburgerSet(part)
			if err != nil {
				return presburger.Set[string]{}, err
			}
			result = presburger.Union(result, converted)
		}
		return result, nil

	case formulaExists:
		body, err := ToPresburgerSet(*f.body)
		if err != nil {
			return presburger.Set[string]{}, err
		}
		return presburger.ProjectOut(body, f.qvar)

	default: // formulaForall
		// forall v. body  ==  not(exists v. not(body)). The Complement
		// call below is exact (De Morgan over a quantifier-free
		// conjunction, not a search), but any caller that later asks
		// presburger.IsEmpty of a set built from a certificate
		// containing this Forall only gets an answer within
		// presburger.DefaultSearchBound — a certificate whose true
		// witness needs a larger assignment degrades to
		// ErrSearchBoundExceeded rather than a wrong answer.
		negated, err := ToPresburgerSet(Negate(*f.body))
		if err != nil {
			return presburger.Set[string]{}, err
		}
		projected, err := presburger.ProjectOut(negated, f.qvar)
		if err != nil {
			return presburger.Set[string]{}, err
		}
		return presburger.Complement(projected)
	}
}

func toPresburgerConstraint(c Constraint) presburger.Constraint[string] {
	var terms []presburger.Term[string]
	for _, v := range c.Expr.Variables() {
		terms = append(terms, presburger.Term[string]{
			Coef: int(c.Expr.Coefficient(v)),
			Var:  presburger.Original(v),
		})
	}
	constant := int(c.Expr.Constant())
	if c.Op == CompEq {
		return presburger.Equality(terms, constant)
	}
	return presburger.Inequality(terms, constant)
}

// String satisfies fmt.Stringer for ProofInvariant, used in log lines
// describing which certificate a component is using.
func (pi ProofInvariant) String() string {
	return fmt.Sprintf("cert(%v) = %s", pi.Variables, pi.Formula.String())
}
