package spresburger

import (
	"fmt"

	"github.com/katalvlaran/serialcheck/presburger"
	"github.com/katalvlaran/serialcheck/semilinear"
	"github.com/katalvlaran/serialcheck/sparsevec"
)

type form int

const (
	formSemilinear form = iota
	formPresburger
)

// Set is a tagged union of a semilinear.SemilinearSet and a
// presburger.Set over the same label type, holding exactly one
// representation at a time and converting on demand.
type Set[T comparable] struct {
	form       form
	semilinear semilinear.SemilinearSet[T]
	presburger presburger.Set[T]
}

// FromSemilinear wraps a SemilinearSet, holding it unconverted.
func FromSemilinear[T comparable](s semilinear.SemilinearSet[T]) Set[T] {
	return Set[T]{form: formSemilinear, semilinear: s}
}

// FromPresburger wraps a Presburger Set, holding it unconverted.
func FromPresburger[T comparable](s presburger.Set[T]) Set[T] {
	return Set[T]{form: formPresburger, presburger: s}
}

// Atom builds the set containing the single unit vector for label a, held
// in semilinear form (the cheaper representation for a singleton).
func Atom[T comparable](a T) Set[T] {
	return FromSemilinear(semilinear.Singleton(sparsevec.Unit(a)))
}

// Empty is the Kleene zero, held in semilinear form.
func Empty[T comparable]() Set[T] {
	return FromSemilinear(semilinear.Zero[T]())
}

// Universe builds the set of every nonnegative vector over labels, held
// in semilinear form.
func Universe[T comparable](labels []T) Set[T] {
	return FromSemilinear(semilinear.Universe(labels))
}

// IsSemilinear reports whether s is currently held in semilinear form.
func (s Set[T]) IsSemilinear() bool { return s.form == formSemilinear }

// EnsureSemilinear returns s's semilinear representation, failing with
// ErrNoSemilinearForm if s is held as Presburger: the reverse conversion
// is not implemented anywhere in this module, by design (spec §4.4).
func (s Set[T]) EnsureSemilinear() (semilinear.SemilinearSet[T], error) {
	if s.form == formPresburger {
		return semilinear.SemilinearSet[T]{}, spresburgerErrorf("EnsureSemilinear", "%w", ErrNoSemilinearForm)
	}
	return s.semilinear, nil
}

// EnsurePresburger returns s's Presburger representation, converting from
// semilinear form if necessary. Conversion in this direction is always
// possible and lossless.
func (s Set[T]) EnsurePresburger() presburger.Set[T] {
	if s.form == formSemilinear {
		return presburger.FromSemilinear(s.semilinear)
	}
	return s.presburger
}

// Star computes the Kleene closure. It requires s to already be held in
// semilinear form (see EnsureSemilinear); a Presburger-held set must be
// reconstructed from its semilinear origin by the caller before starring,
// since Presburger-to-semilinear conversion is not implemented.
func (s Set[T]) Star() (Set[T], error) {
	sl, err := s.EnsureSemilinear()
	if err != nil {
		return Set[T]{}, spresburgerErrorf("Star", "%w", err)
	}
	starred, err := sl.Star()
	if err != nil {
		return Set[T]{}, spresburgerErrorf("Star", "%w", err)
	}
	return FromSemilinear(starred), nil
}

// Complement returns the set's complement over nonnegative integer
// vectors. It always converts to Presburger form first, since complement
// is not expressible over the semilinear representation directly. The
// universeLabels parameter is accepted for symmetry with spec §4.3's
// public contract but is not otherwise needed: a quantifier-free
// Presburger conjunct's negation is already total over its own original
// variables once existentials are eliminated (see presburger.Complement).
func (s Set[T]) Complement(universeLabels []T) (Set[T], error) {
	_ = universeLabels
	comp, err := presburger.Complement(s.EnsurePresburger())
	if err != nil {
		return Set[T]{}, spresburgerErrorf("Complement", "%s", err)
	}
	return FromPresburger(comp), nil
}

// Union returns the set of elements in either operand. If both operands
// are semilinear it stays semilinear (cheap concatenation); otherwise
// both are converted to Presburger first.
func (s Set[T]) Union(o Set[T]) Set[T] {
	if s.form == formSemilinear && o.form == formSemilinear {
		return FromSemilinear(s.semilinear.Plus(o.semilinear))
	}
	return FromPresburger(presburger.Union(s.EnsurePresburger(), o.EnsurePresburger()))
}

// Plus is Union, satisfying kleene.Kleene.
func (s Set[T]) Plus(o Set[T]) Set[T] { return s.Union(o) }

// Intersection always proceeds in Presburger form.
func (s Set[T]) Intersection(o Set[T]) Set[T] {
	return FromPresburger(presburger.Intersect(s.EnsurePresburger(), o.EnsurePresburger()))
}

// Difference returns the elements of s not in o, always in Presburger
// form.
func (s Set[T]) Difference(o Set[T]) (Set[T], error) {
	diff, err := presburger.Difference(s.EnsurePresburger(), o.EnsurePresburger())
	if err != nil {
		return Set[T]{}, spresburgerErrorf("Difference", "%s", err)
	}
	return FromPresburger(diff), nil
}

// Times is Minkowski sum / sequential composition, always computed in
// Presburger form via presburger.Times's existential-quantified
// encoding.
func (s Set[T]) Times(o Set[T]) Set[T] {
	return FromPresburger(presburger.Times(s.EnsurePresburger(), o.EnsurePresburger()))
}

// IsEmpty works in either representation: semilinear emptiness is a
// direct structural check (no components, or every component carries a
// zero base and no periods), Presburger emptiness delegates to
// presburger.IsEmpty.
func (s Set[T]) IsEmpty() (bool, error) {
	if s.form == formSemilinear {
		if s.semilinear.IsEmpty() {
			return true, nil
		}
		for _, c := range s.semilinear.Components() {
			if !c.Base.IsZero() || len(c.Periods) != 0 {
				return false, nil
			}
		}
		return true, nil
	}
	return presburger.IsEmpty(s.presburger)
}

// Equal converts both operands to Presburger form and compares them with
// presburger.Set.Equal, which compares canonical disjuncts structurally:
// a true result means the sets are equal, but two sets that hold the same
// vectors under different constraints are reported unequal.
func (s Set[T]) Equal(o Set[T]) bool {
	return s.EnsurePresburger().Equal(o.EnsurePresburger())
}

// String renders the set tagged by its current representation, e.g.
// "Semilinear(...)" or "Presburger(...)", matching the original engine's
// Display impl.
func (s Set[T]) String() string {
	if s.form == formSemilinear {
		return fmt.Sprintf("Semilinear(%v)", s.semilinear.Components())
	}
	return fmt.Sprintf("Presburger(%s)", s.presburger.String())
}
