package presburger

import "sort"

// Times computes the Minkowski sum {a+b : a in A, b in B} directly in
// Presburger form: for each pair of disjuncts (one from A, one from B)
// and each label touched by either operand, two fresh existentials are
// introduced standing for "A's component" and "B's component" of that
// label, the operand's own constraints are rewritten in terms of its
// fresh copy instead of the shared original variable, and a tie
// constraint forces the original variable to equal the sum of the two
// copies. A label untouched by an operand gets its copy pinned to zero,
// matching the sparse-vector convention that an absent key reads as
// zero.
//
// This is the Presburger-side equivalent of semilinear.SemilinearSet.Times
// (which computes the same Minkowski sum structurally, by summing base
// vectors and concatenating period lists); this version is needed because
// spresburger.Set.Times must work even when one operand only exists in
// Presburger form (post-complement, say).
func Times[T comparable](a, b Set[T]) Set[T] {
	labels := unionOriginalLabels(a, b)
	var union []QuantifiedSet[T]
	for _, da := range a.union {
		for _, db := range b.union {
			union = append(union, timesConjuncts(da, db, labels))
		}
	}
	return FromQuantifiedSets(union)
}

func timesConjuncts[T comparable](da, db QuantifiedSet[T], labels []T) QuantifiedSet[T] {
	aCopyStart := da.NumExistentials
	bOwnStart := aCopyStart + len(labels)
	dbShifted := db.offsetExistentials(bOwnStart)
	bCopyStart := bOwnStart + db.NumExistentials
	total := bCopyStart + len(labels)

	aConstraints := append([]Constraint[T]{}, da.Constraints...)
	bConstraints := append([]Constraint[T]{}, dbShifted.Constraints...)
	var tie []Constraint[T]

	for i, label := range labels {
		aVar := Existential[T](aCopyStart + i)
		bVar := Existential[T](bCopyStart + i)

		if touchesLabel(aConstraints, label) {
			aConstraints = substituteOriginal(aConstraints, label, aVar)
		} else {
			aConstraints = append(aConstraints, Equality([]Term[T]{{Coef: 1, Var: aVar}}, 0))
		}
		if touchesLabel(bConstraints, label) {
			bConstraints = substituteOriginal(bConstraints, label, bVar)
		} else {
			bConstraints = append(bConstraints, Equality([]Term[T]{{Coef: 1, Var: bVar}}, 0))
		}
		tie = append(tie, Equality([]Term[T]{
			{Coef: 1, Var: Original(label)},
			{Coef: -1, Var: aVar},
			{Coef: -1, Var: bVar},
		}, 0))
	}

	all := append(append(aConstraints, bConstraints...), tie...)
	return NewQuantifiedSet(all, total)
}

// touchesLabel reports whether any constraint references Original(label).
func touchesLabel[T comparable](constraints []Constraint[T], label T) bool {
	for _, c := range constraints {
		for _, t := range c.Terms {
			if !t.Var.IsExistential() && t.Var.OriginalLabel() == label {
				return true
			}
		}
	}
	return false
}

// substituteOriginal replaces every occurrence of Original(label) with v
// across constraints.
func substituteOriginal[T comparable](constraints []Constraint[T], label T, v Variable[T]) []Constraint[T] {
	out := make([]Constraint[T], len(constraints))
	for i, c := range constraints {
		terms := make([]Term[T], len(c.Terms))
		for j, t := range c.Terms {
			if !t.Var.IsExistential() && t.Var.OriginalLabel() == label {
				terms[j] = Term[T]{Coef: t.Coef, Var: v}
			} else {
				terms[j] = t
			}
		}
		out[i] = normalizeConstraint(Constraint[T]{Terms: terms, Const: c.Const, Kind: c.Kind, Modulus: c.Modulus})
	}
	return out
}

// unionOriginalLabels returns, in a fixed deterministic order, every
// original-dimension label referenced anywhere in a or b.
func unionOriginalLabels[T comparable](a, b Set[T]) []T {
	seen := make(map[string]T)
	collect := func(s Set[T]) {
		for _, d := range s.union {
			for _, c := range d.Constraints {
				for _, t := range c.Terms {
					if !t.Var.IsExistential() {
						seen[t.Var.key()] = t.Var.OriginalLabel()
					}
				}
			}
		}
	}
	collect(a)
	collect(b)
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	labels := make([]T, 0, len(keys))
	for _, k := range keys {
		labels = append(labels, seen[k])
	}
	return labels
}
