package semilinear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/serialcheck/sparsevec"
)

func vec(kv ...interface{}) sparsevec.Vector[string] {
	v := sparsevec.New[string]()
	for i := 0; i < len(kv); i += 2 {
		v = v.MustSet(kv[i].(string), kv[i+1].(int))
	}
	return v
}

func TestUnion(t *testing.T) {
	v1 := vec("x", 1, "y", 2)
	v2 := vec("y", 3, "z", 4)

	set1 := Singleton(v1)
	set2 := Singleton(v2)
	union := set1.Plus(set2)

	assert.Len(t, union.Components(), 2)
	bases := []sparsevec.Vector[string]{union.Components()[0].Base, union.Components()[1].Base}
	assert.Contains(t, bases, v1)
	assert.Contains(t, bases, v2)
}

func TestTimesIsMinkowskiSum(t *testing.T) {
	v1 := vec("x", 1)
	v2 := vec("y", 2)

	set1 := Singleton(v1)
	set2 := Singleton(v2)
	sum := set1.Times(set2)

	require.Len(t, sum.Components(), 1)
	result := sum.Components()[0].Base
	assert.Equal(t, 1, result.Get("x"))
	assert.Equal(t, 2, result.Get("y"))
}

func TestStarOfSingleton(t *testing.T) {
	a := Singleton(vec("a", 1))
	aStar, err := a.Star()
	require.NoError(t, err)

	expected := New([]LinearSet[string]{
		{Base: vec("a", 1), Periods: []sparsevec.Vector[string]{vec("a", 1)}},
		{Base: sparsevec.New[string](), Periods: nil},
	})

	assert.True(t, aStar.Equal(expected), "got %v, want %v", aStar.Components(), expected.Components())
}

func TestStarTooManyComponents(t *testing.T) {
	components := make([]LinearSet[string], maxStarComponents+1)
	for i := range components {
		components[i] = LinearSet[string]{Base: vec("k", i+1)}
	}
	s := New(components)

	_, err := s.Star()
	require.Error(t, err)
}

// TestStarRefusesAtExactlyTheLimit exercises spec.md §8's boundary
// precisely: "≥ 32 components must refuse", so 32 itself (not just 33)
// must be rejected.
func TestStarRefusesAtExactlyTheLimit(t *testing.T) {
	components := make([]LinearSet[string], maxStarComponents)
	for i := range components {
		components[i] = LinearSet[string]{Base: vec("k", i+1)}
	}
	s := New(components)

	_, err := s.Star()
	require.Error(t, err)
}

// TestStarAtTwentyComponentsStaysWithinBound exercises the other half of
// spec.md §8's boundary: "with exactly n (1 <= n <= 20) must produce a
// set of at most 2^n components."
func TestStarAtTwentyComponentsStaysWithinBound(t *testing.T) {
	const n = 20
	components := make([]LinearSet[string], n)
	for i := range components {
		components[i] = LinearSet[string]{Base: vec("k", i+1)}
	}
	s := New(components)

	star, err := s.Star()
	require.NoError(t, err)
	assert.LessOrEqual(t, len(star.Components()), 1<<uint(n))
}

func TestZeroAndOne(t *testing.T) {
	assert.True(t, Zero[string]().IsEmpty())
	one := One[string]()
	require.Len(t, one.Components(), 1)
	assert.True(t, one.Components()[0].Base.IsZero())
}

func TestUniverseContainsUnitPeriodPerKey(t *testing.T) {
	u := Universe([]string{"x", "y"})
	require.Len(t, u.Components(), 1)
	assert.ElementsMatch(t, []string{"x", "y"}, u.UniqueKeys())
}

func TestEqualIgnoresComponentOrder(t *testing.T) {
	a := New([]LinearSet[string]{
		{Base: vec("x", 1)},
		{Base: vec("y", 1)},
	})
	b := New([]LinearSet[string]{
		{Base: vec("y", 1)},
		{Base: vec("x", 1)},
	})
	assert.True(t, a.Equal(b))
}

func TestNewDedupesComponentsAndPeriods(t *testing.T) {
	s := New([]LinearSet[string]{
		{Base: vec("x", 1), Periods: []sparsevec.Vector[string]{vec("p", 1), vec("p", 1)}},
		{Base: vec("x", 1), Periods: []sparsevec.Vector[string]{vec("p", 1)}},
	})
	assert.Len(t, s.Components(), 1)
	assert.Len(t, s.Components()[0].Periods, 1)
}
