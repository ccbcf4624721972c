package presburger

// MapLabels rebuilds s with every original-variable label passed through
// f, changing the set's label type from T to U. This is the type-
// changing counterpart to Rename (which only renames within a single
// label type): it is how a set built over one vocabulary (e.g. the
// serialization automaton's ResponsePair alphabet) is carried onto
// another (e.g. Petri places) once a caller knows how the two
// vocabularies correspond, mirroring petri.Rename's
// func(Place) Q parameter for the same purpose on Petri nets.
//
// f must be injective on the labels actually occurring in s; a
// non-injective f would alias two distinct dimensions together, which
// MapLabels does not detect.
func MapLabels[T, U comparable](s Set[T], f func(T) U) Set[U] {
	var union []QuantifiedSet[U]
	for _, d := range s.union {
		constraints := make([]Constraint[U], len(d.Constraints))
		for i, c := range d.Constraints {
			terms := make([]Term[U], len(c.Terms))
			for j, t := range c.Terms {
				if t.Var.IsExistential() {
					terms[j] = Term[U]{Coef: t.Coef, Var: Existential[U](t.Var.Index())}
				} else {
					terms[j] = Term[U]{Coef: t.Coef, Var: Original(f(t.Var.OriginalLabel()))}
				}
			}
			constraints[i] = Constraint[U]{Terms: terms, Const: c.Const, Kind: c.Kind, Modulus: c.Modulus}
		}
		union = append(union, NewQuantifiedSet(constraints, d.NumExistentials))
	}
	return FromQuantifiedSets(union)
}
