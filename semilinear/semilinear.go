package semilinear

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/serialcheck/sparsevec"
)

// LinearSet is {base + n1*p1 + ... + nm*pm : ni >= 0}, a base vector plus
// a finite list of period generators.
type LinearSet[K comparable] struct {
	Base    sparsevec.Vector[K]
	Periods []sparsevec.Vector[K]
}

func newLinearSet[K comparable](base sparsevec.Vector[K], periods []sparsevec.Vector[K]) LinearSet[K] {
	seen := make(map[string]struct{}, len(periods))
	dedup := make([]sparsevec.Vector[K], 0, len(periods))
	for _, p := range periods {
		key := p.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dedup = append(dedup, p)
	}
	sort.Slice(dedup, func(i, j int) bool { return dedup[i].String() < dedup[j].String() })
	return LinearSet[K]{Base: base, Periods: dedup}
}

// key returns a canonical string identifying this LinearSet's value,
// independent of period ordering (newLinearSet already sorted them).
func (l LinearSet[K]) key() string {
	var b strings.Builder
	b.WriteString(l.Base.String())
	b.WriteByte(';')
	for i, p := range l.Periods {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.String())
	}
	return b.String()
}

// SemilinearSet is a finite union of LinearSets.
type SemilinearSet[K comparable] struct {
	components []LinearSet[K]
}

// New builds a SemilinearSet from components, deduplicating both
// components and, within each component, its period list.
func New[K comparable](components []LinearSet[K]) SemilinearSet[K] {
	seen := make(map[string]struct{}, len(components))
	out := make([]LinearSet[K], 0, len(components))
	for _, c := range components {
		norm := newLinearSet(c.Base, c.Periods)
		key := norm.key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, norm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key() < out[j].key() })
	return SemilinearSet[K]{components: out}
}

// Components returns the set's linear components in canonical order.
func (s SemilinearSet[K]) Components() []LinearSet[K] {
	return s.components
}

// IsEmpty reports whether the set contains no vectors at all.
func (s SemilinearSet[K]) IsEmpty() bool {
	return len(s.components) == 0
}

// Singleton returns the set containing exactly one vector.
func Singleton[K comparable](v sparsevec.Vector[K]) SemilinearSet[K] {
	return New([]LinearSet[K]{{Base: v, Periods: nil}})
}

// Empty returns the set containing no vectors, the Kleene zero.
func Empty[K comparable]() SemilinearSet[K] {
	return SemilinearSet[K]{}
}

// Zero is the Kleene additive identity: the empty set.
func Zero[K comparable]() SemilinearSet[K] {
	return Empty[K]()
}

// One is the Kleene multiplicative identity: the set containing only the
// zero vector, since Times is Minkowski sum.
func One[K comparable]() SemilinearSet[K] {
	return Singleton(sparsevec.New[K]())
}

// Universe returns the set of all nonnegative integer vectors over the
// given dimensions: base zero, one period generator per dimension.
func Universe[K comparable](keys []K) SemilinearSet[K] {
	periods := make([]sparsevec.Vector[K], 0, len(keys))
	for _, k := range keys {
		periods = append(periods, sparsevec.Unit(k))
	}
	return New([]LinearSet[K]{{Base: sparsevec.New[K](), Periods: periods}})
}

// Equal reports whether two sets have the same canonical component set.
func (s SemilinearSet[K]) Equal(o SemilinearSet[K]) bool {
	if len(s.components) != len(o.components) {
		return false
	}
	for i := range s.components {
		if s.components[i].key() != o.components[i].key() {
			return false
		}
	}
	return true
}

// Plus is set union.
func (s SemilinearSet[K]) Plus(o SemilinearSet[K]) SemilinearSet[K] {
	combined := make([]LinearSet[K], 0, len(s.components)+len(o.components))
	combined = append(combined, s.components...)
	combined = append(combined, o.components...)
	return New(combined)
}

// Times is Minkowski sum: the set of all pairwise sums of one vector from
// each operand, equivalently sequential composition of the corresponding
// languages under the Parikh image.
func (s SemilinearSet[K]) Times(o SemilinearSet[K]) SemilinearSet[K] {
	result := make([]LinearSet[K], 0, len(s.components)*len(o.components))
	for _, a := range s.components {
		for _, b := range o.components {
			periods := make([]sparsevec.Vector[K], 0, len(a.Periods)+len(b.Periods))
			periods = append(periods, a.Periods...)
			periods = append(periods, b.Periods...)
			result = append(result, LinearSet[K]{
				Base:    sparsevec.Add(a.Base, b.Base),
				Periods: periods,
			})
		}
	}
	return New(result)
}

// Star computes the Kleene closure of s. Because LinearSet union is not
// closed under arbitrary iteration in general, the closure is computed
// directly: for every nonempty subset X of s's components, the base
// vectors of X sum into a new base, and the union of all bases and
// periods in X become that subset's periods (plus the empty subset's
// singleton zero vector). This mirrors the commutative-Kleene-closure
// construction rather than iterating Times to a fixpoint.
//
// Star returns ErrTooManyComponents if s has more components than this
// subset enumeration can afford.
func (s SemilinearSet[K]) Star() (SemilinearSet[K], error) {
	n := len(s.components)
	if n >= maxStarComponents {
		return SemilinearSet[K]{}, semilinearErrorf("Star", "%w: %d components reaches or exceeds limit of %d", ErrTooManyComponents, n, maxStarComponents)
	}

	result := make([]LinearSet[K], 0, 1<<uint(n))
	result = append(result, LinearSet[K]{Base: sparsevec.New[K](), Periods: nil})

	for mask := 1; mask < (1 << uint(n)); mask++ {
		base := sparsevec.New[K]()
		var periods []sparsevec.Vector[K]
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) == 0 {
				continue
			}
			comp := s.components[i]
			base = sparsevec.Add(base, comp.Base)
			periods = append(periods, comp.Base)
			periods = append(periods, comp.Periods...)
		}
		result = append(result, LinearSet[K]{Base: base, Periods: periods})
	}

	return New(result), nil
}

// MustStar is like Star but panics on ErrTooManyComponents. Reserved for
// call sites operating on automaton-reduced sets already known to be
// small.
func (s SemilinearSet[K]) MustStar() SemilinearSet[K] {
	out, err := s.Star()
	if err != nil {
		panic(err)
	}
	return out
}

// UniqueKeys returns, in sorted order, every label that appears in any
// base or period vector across the set's components.
func (s SemilinearSet[K]) UniqueKeys() []K {
	seen := make(map[K]struct{})
	var keys []K
	add := func(v sparsevec.Vector[K]) {
		for _, k := range v.Keys() {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	for _, c := range s.components {
		add(c.Base)
		for _, p := range c.Periods {
			add(p)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprintf("%v", keys[i]) < fmt.Sprintf("%v", keys[j])
	})
	return keys
}
