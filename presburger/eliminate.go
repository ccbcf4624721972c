package presburger

// EliminateExistentials eliminates every existentially quantified
// variable from qs, returning an equivalent quantifier-free conjunction
// over qs's original variables only.
//
// Each existential is eliminated using one equality constraint that
// mentions it (see eliminateOne's doc comment for the exact
// substitution); existentials that appear only in inequalities fall back
// to unit-coefficient Fourier-Motzkin elimination. EliminateExistentials
// fails with ErrCannotEliminate only in that fallback path, when some
// inequality's coefficient for the eliminated variable has magnitude
// other than 1 — a case FromSemilinear's own constructions never
// produce, since every existential they introduce appears in an equality.
func (qs QuantifiedSet[T]) EliminateExistentials() (QuantifiedSet[T], error) {
	remaining := append([]Constraint[T]{}, qs.Constraints...)
	for i := 0; i < qs.NumExistentials; i++ {
		next, err := eliminateOne(remaining, Existential[T](i))
		if err != nil {
			return QuantifiedSet[T]{}, presburgerErrorf("EliminateExistentials", "n%d: %s", i, err)
		}
		remaining = next
	}
	return NewQuantifiedSet(remaining, 0), nil
}

// eliminateOne removes every occurrence of v from constraints, returning
// an equivalent constraint set that no longer mentions v.
//
// If some equality E mentions v with coefficient c (normalized positive
// by negating E if needed), every other constraint F mentioning v with
// coefficient c' is replaced by the integer combination
// c*F.withoutVariable(v) - c'*E.withoutVariable(v), which eliminates v
// exactly (no division, hence no rational arithmetic) because
// c*(c'*v) - c'*(c*v) = 0. Two side constraints recover what substituting
// v = -restE/c would otherwise have required an integer, non-negative
// value: a congruence restE = 0 (mod c) when c != 1 (integrality), and an
// inequality -restE >= 0 (non-negativity of v's natural-number domain).
//
// When v appears in no equality, eliminateOne falls back to
// eliminateByFourierMotzkin.
func eliminateOne[T comparable](constraints []Constraint[T], v Variable[T]) ([]Constraint[T], error) {
	eqIdx := -1
	for i, c := range constraints {
		if c.Kind == EqualToZero && c.coefficientOf(v) != 0 {
			eqIdx = i
			break
		}
	}
	if eqIdx < 0 {
		return eliminateByFourierMotzkin(constraints, v)
	}

	e := constraints[eqIdx]
	c := e.coefficientOf(v)
	if c < 0 {
		e = e.negate()
		c = -c
	}
	restE := e.withoutVariable(v)

	var result []Constraint[T]
	for i, f := range constraints {
		if i == eqIdx {
			continue
		}
		cp := f.coefficientOf(v)
		if cp == 0 {
			result = append(result, f)
			continue
		}
		newTerms := append(scaleTerms(f.withoutVariable(v), c), scaleTerms(restE, -cp)...)
		newConst := c*f.Const - cp*e.Const
		result = append(result, normalizeConstraint(Constraint[T]{
			Terms:   newTerms,
			Const:   newConst,
			Kind:    f.Kind,
			Modulus: f.Modulus * c,
		}))
	}

	if c != 1 {
		result = append(result, CongruenceConstraint(append([]Term[T]{}, restE...), e.Const, c))
	}
	result = append(result, Inequality(negateTerms(restE), -e.Const))

	return result, nil
}

func scaleTerms[T comparable](terms []Term[T], k int) []Term[T] {
	out := make([]Term[T], len(terms))
	for i, t := range terms {
		out[i] = Term[T]{Coef: t.Coef * k, Var: t.Var}
	}
	return out
}

// eliminateByFourierMotzkin eliminates v from a constraint set where it
// appears only in inequalities (or not at all), via the classical
// pairwise combination of lower and upper bounds. v's own natural-number
// domain (v >= 0) is included as a synthetic lower bound.
//
// This is exact when every inequality's coefficient for v has magnitude
// 1 (the only shape this module's own elimination calls ever produce,
// since eliminateOne's side constraints always use unit coefficient for
// the eliminated variable). For any other coefficient magnitude it
// returns ErrCannotEliminate rather than silently computing the unsound
// "dark shadow" over-approximation classical Fourier-Motzkin falls back
// to for integer domains.
func eliminateByFourierMotzkin[T comparable](constraints []Constraint[T], v Variable[T]) ([]Constraint[T], error) {
	var zeros, lowers, uppers []Constraint[T]
	for _, c := range constraints {
		coef := c.coefficientOf(v)
		if coef == 0 {
			zeros = append(zeros, c)
			continue
		}
		if c.Kind != NonNegative {
			return nil, presburgerErrorf("eliminateByFourierMotzkin", "%s: %w", v.String(), ErrCannotEliminate)
		}
		switch {
		case coef == 1:
			lowers = append(lowers, c)
		case coef == -1:
			uppers = append(uppers, c)
		default:
			return nil, presburgerErrorf("eliminateByFourierMotzkin", "%s: coefficient %d: %w", v.String(), coef, ErrCannotEliminate)
		}
	}
	lowers = append(lowers, Inequality([]Term[T]{{Coef: 1, Var: v}}, 0))

	if len(uppers) == 0 {
		return zeros, nil
	}

	result := append([]Constraint[T]{}, zeros...)
	for _, lo := range lowers {
		for _, up := range uppers {
			terms := append(scaleTerms(lo.withoutVariable(v), 1), scaleTerms(up.withoutVariable(v), 1)...)
			result = append(result, normalizeConstraint(Constraint[T]{
				Terms: terms,
				Const: lo.Const + up.Const,
				Kind:  NonNegative,
			}))
		}
	}
	return result, nil
}
