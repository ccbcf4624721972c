package presburger

// Intersect returns the set of elements in both a and b. Each disjunct of
// the result conjoins one disjunct of a with one of b, re-indexing b's
// existentials so they never collide with a's.
func Intersect[T comparable](a, b Set[T]) Set[T] {
	var union []QuantifiedSet[T]
	for _, da := range a.union {
		for _, db := range b.union {
			union = append(union, da.and(db))
		}
	}
	return FromQuantifiedSets(union)
}

// Difference returns the elements of a that are not in b.
func Difference[T comparable](a, b Set[T]) (Set[T], error) {
	notB, err := Complement(b)
	if err != nil {
		return Set[T]{}, presburgerErrorf("Difference", "%s", err)
	}
	return Intersect(a, notB), nil
}

// Complement returns the set's complement over the domain of nonnegative
// integer vectors (no ambient dimension list is needed: a vector not
// constrained by any disjunct is, by construction, already outside every
// disjunct once each is reduced to a quantifier-free form over original
// variables only).
//
// Complement(D1 or D2 or ... or Dn) = not(D1) and not(D2) and ... and
// not(Dn): De Morgan over the outer union, applied after eliminating each
// disjunct's own existentials (see EliminateExistentials) so that negating
// each constraint does not leave a dangling existential whose
// quantifier should have flipped to universal.
func Complement[T comparable](s Set[T]) (Set[T], error) {
	result := FromQuantifiedSets([]QuantifiedSet[T]{{}}) // true (empty conjunct) = universe
	for _, d := range s.union {
		notD, err := complementConjunct(d)
		if err != nil {
			return Set[T]{}, presburgerErrorf("Complement", "%s", err)
		}
		result = Intersect(result, notD)
	}
	return result, nil
}

// complementConjunct negates a single conjunct: eliminate its
// existentials, then De Morgan-expand the negation of each remaining
// constraint into a disjunction, one disjunct per negated constraint.
func complementConjunct[T comparable](d QuantifiedSet[T]) (Set[T], error) {
	quantifierFree, err := d.EliminateExistentials()
	if err != nil {
		return Set[T]{}, err
	}

	if len(quantifierFree.Constraints) == 0 {
		// The conjunct was "true" (the universe); its complement is empty.
		return Empty[T](), nil
	}

	var union []QuantifiedSet[T]
	for _, c := range quantifierFree.Constraints {
		for _, neg := range c.negations() {
			union = append(union, NewQuantifiedSet([]Constraint[T]{neg}, 0))
		}
	}
	return FromQuantifiedSets(union), nil
}

// ProjectOut existentially quantifies label out of every disjunct: the
// result holds for x (with label removed) iff some value of label made
// the original conjunct hold. This is eliminateOne applied to label's
// Original variable, so it shares eliminateOne's exactness and its
// ErrCannotEliminate scope limit.
func ProjectOut[T comparable](s Set[T], label T) (Set[T], error) {
	var union []QuantifiedSet[T]
	for _, d := range s.union {
		reduced, err := eliminateOne(d.Constraints, Original(label))
		if err != nil {
			return Set[T]{}, presburgerErrorf("ProjectOut", "%v: %s", label, err)
		}
		union = append(union, NewQuantifiedSet(reduced, d.NumExistentials))
	}
	return FromQuantifiedSets(union), nil
}

// Rename substitutes every occurrence of from with to across every
// disjunct, used to harmonize two sets' label-to-coordinate mappings
// before a binary operation when they were built over differently-named
// (but corresponding) dimensions.
func Rename[T comparable](s Set[T], from, to T) Set[T] {
	var union []QuantifiedSet[T]
	for _, d := range s.union {
		constraints := make([]Constraint[T], len(d.Constraints))
		for i, c := range d.Constraints {
			terms := make([]Term[T], len(c.Terms))
			for j, t := range c.Terms {
				if !t.Var.IsExistential() && t.Var.OriginalLabel() == from {
					terms[j] = Term[T]{Coef: t.Coef, Var: Original(to)}
				} else {
					terms[j] = t
				}
			}
			constraints[i] = normalizeConstraint(Constraint[T]{Terms: terms, Const: c.Const, Kind: c.Kind, Modulus: c.Modulus})
		}
		union = append(union, NewQuantifiedSet(constraints, d.NumExistentials))
	}
	return FromQuantifiedSets(union)
}
