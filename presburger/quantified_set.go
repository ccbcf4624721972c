package presburger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/serialcheck/semilinear"
	"github.com/katalvlaran/serialcheck/sparsevec"
)

// QuantifiedSet is a single existentially quantified conjunction of
// constraints: {x : exists n0,...,nk >= 0. Terms(x,n) hold}.
type QuantifiedSet[T comparable] struct {
	Constraints     []Constraint[T]
	NumExistentials int
}

// NewQuantifiedSet builds a QuantifiedSet, canonicalizing constraint order
// so that structurally identical conjuncts compare equal.
func NewQuantifiedSet[T comparable](constraints []Constraint[T], numExistentials int) QuantifiedSet[T] {
	sorted := append([]Constraint[T]{}, constraints...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })
	return QuantifiedSet[T]{Constraints: sorted, NumExistentials: numExistentials}
}

// FromLinearSet translates base + sum(ni*periodi) into a QuantifiedSet
// with one equality per dimension touched by the linear set: x_d - b_d -
// sum(period_i[d] * n_i) = 0. One existential variable is introduced per
// period vector, matching the original engine's from_linear_set exactly.
func FromLinearSet[T comparable](ls semilinear.LinearSet[T]) QuantifiedSet[T] {
	dims := make(map[string]T)
	collect := func(v sparsevec.Vector[T]) {
		for _, k := range v.Keys() {
			dims[fmt.Sprintf("%v", k)] = k
		}
	}
	collect(ls.Base)
	for _, p := range ls.Periods {
		collect(p)
	}

	var dimKeys []string
	for k := range dims {
		dimKeys = append(dimKeys, k)
	}
	sort.Strings(dimKeys)

	var constraints []Constraint[T]
	for _, dk := range dimKeys {
		dim := dims[dk]
		terms := []Term[T]{{Coef: 1, Var: Original(dim)}}
		for i, p := range ls.Periods {
			if pv := p.Get(dim); pv != 0 {
				terms = append(terms, Term[T]{Coef: -pv, Var: Existential[T](i)})
			}
		}
		constraints = append(constraints, Equality(terms, -ls.Base.Get(dim)))
	}

	return NewQuantifiedSet(constraints, len(ls.Periods))
}

// offsetExistentials shifts every existential variable's index up by
// delta, used to make room when combining two independently built
// QuantifiedSets (e.g. during Intersect) so their existential indices
// don't collide.
func (qs QuantifiedSet[T]) offsetExistentials(delta int) QuantifiedSet[T] {
	constraints := make([]Constraint[T], len(qs.Constraints))
	for i, c := range qs.Constraints {
		terms := make([]Term[T], len(c.Terms))
		for j, t := range c.Terms {
			if t.Var.IsExistential() {
				terms[j] = Term[T]{Coef: t.Coef, Var: Existential[T](t.Var.Index() + delta)}
			} else {
				terms[j] = t
			}
		}
		constraints[i] = Constraint[T]{Terms: terms, Const: c.Const, Kind: c.Kind, Modulus: c.Modulus}
	}
	return QuantifiedSet[T]{Constraints: constraints, NumExistentials: qs.NumExistentials + delta}
}

// and conjoins qs with other, offsetting other's existentials past qs's
// own so indices stay disjoint.
func (qs QuantifiedSet[T]) and(other QuantifiedSet[T]) QuantifiedSet[T] {
	shifted := other.offsetExistentials(qs.NumExistentials)
	combined := append(append([]Constraint[T]{}, qs.Constraints...), shifted.Constraints...)
	return NewQuantifiedSet(combined, qs.NumExistentials+other.NumExistentials)
}

// key is a canonical string identity used for deduplication and for
// stable sorting of a Set's union components.
func (qs QuantifiedSet[T]) key() string {
	var parts []string
	for _, c := range qs.Constraints {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " & ")
}

// String renders the conjunct the same way as the original engine: an
// existential-quantifier prefix (if any existentials are used) followed
// by the constraints joined with logical AND.
func (qs QuantifiedSet[T]) String() string {
	var b strings.Builder
	if qs.NumExistentials > 0 {
		b.WriteString("exists ")
		for i := 0; i < qs.NumExistentials; i++ {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(Existential[T](i).String())
		}
		b.WriteString(". ")
	}
	for i, c := range qs.Constraints {
		if i > 0 {
			b.WriteString(" and ")
		}
		b.WriteString(c.String())
	}
	if len(qs.Constraints) == 0 {
		b.WriteString("true")
	}
	return b.String()
}
