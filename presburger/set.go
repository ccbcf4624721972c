package presburger

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/katalvlaran/serialcheck/semilinear"
)

// Set is a finite union of QuantifiedSets: a quantifier-free Presburger
// set in disjunctive normal form.
type Set[T comparable] struct {
	union []QuantifiedSet[T]
}

// FromQuantifiedSets builds a Set from its disjuncts, deduplicating
// structurally identical ones and sorting for a deterministic component
// order (the original engine sorts "by length of constraints" as a
// stand-in for a real canonical order; we sort by the full canonical
// string key instead, which is both deterministic and collision-free).
func FromQuantifiedSets[T comparable](union []QuantifiedSet[T]) Set[T] {
	seen := make(map[string]struct{}, len(union))
	out := make([]QuantifiedSet[T], 0, len(union))
	for _, qs := range union {
		key := qs.key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, qs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key() < out[j].key() })
	return Set[T]{union: out}
}

// Empty is the Presburger set with no elements.
func Empty[T comparable]() Set[T] {
	return Set[T]{}
}

// Disjuncts returns the set's disjuncts in canonical order.
func (s Set[T]) Disjuncts() []QuantifiedSet[T] {
	return s.union
}

// FromSemilinear converts every component of a semilinear set to a
// QuantifiedSet via FromLinearSet and unions the results.
func FromSemilinear[T comparable](s semilinear.SemilinearSet[T]) Set[T] {
	components := s.Components()
	union := make([]QuantifiedSet[T], 0, len(components))
	for _, c := range components {
		union = append(union, FromLinearSet(c))
	}
	return FromQuantifiedSets(union)
}

// Union returns the set of elements in either operand.
func Union[T comparable](a, b Set[T]) Set[T] {
	combined := append(append([]QuantifiedSet[T]{}, a.union...), b.union...)
	return FromQuantifiedSets(combined)
}

// Equal reports whether a and b have the same canonical disjuncts.
func (s Set[T]) Equal(o Set[T]) bool {
	if len(s.union) != len(o.union) {
		return false
	}
	for i := range s.union {
		if s.union[i].key() != o.union[i].key() {
			return false
		}
	}
	return true
}

// MarshalJSON renders s as a plain JSON array of its disjuncts, since
// s.union is otherwise unexported.
func (s Set[T]) MarshalJSON() ([]byte, error) {
	if s.union == nil {
		return json.Marshal([]QuantifiedSet[T]{})
	}
	return json.Marshal(s.union)
}

// UnmarshalJSON is MarshalJSON's inverse.
func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var union []QuantifiedSet[T]
	if err := json.Unmarshal(data, &union); err != nil {
		return err
	}
	s.union = union
	return nil
}

// String renders the set the same way as the original engine: disjuncts
// joined by " or ", parenthesized when there is more than one.
func (s Set[T]) String() string {
	if len(s.union) == 0 {
		return "false"
	}
	parts := make([]string, 0, len(s.union))
	for _, qs := range s.union {
		if len(s.union) > 1 {
			parts = append(parts, "("+qs.String()+")")
		} else {
			parts = append(parts, qs.String())
		}
	}
	return strings.Join(parts, " or ")
}
