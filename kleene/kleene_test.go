package kleene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNFAToKleeneStateElimination(t *testing.T) {
	edges := []Edge[int, Regex[rune]]{
		{From: 0, Label: Atom('a'), To: 1},
		{From: 1, Label: Atom('b'), To: 2},
		{From: 2, Label: Atom('c'), To: 0},
		{From: 1, Label: Atom('d'), To: 1},
	}

	result, err := NFAToKleene(edges, 0, ZeroRegex[rune]())
	require.NoError(t, err)
	assert.Equal(t, "(((a . ((d)* . b)) . c))*", result.String())
}

func TestNFAToKleeneBool(t *testing.T) {
	edges := []Edge[int, Bool]{
		{From: 0, Label: Bool(true), To: 1},
		{From: 1, Label: Bool(true), To: 0},
	}
	result, err := NFAToKleene(edges, 0, Bool(false))
	require.NoError(t, err)
	assert.True(t, bool(result))
}

func TestRegexAlgebraicSimplification(t *testing.T) {
	a := Atom('a')
	zero := ZeroRegex[rune]()
	one := OneRegex[rune]()

	assert.Equal(t, a, a.Plus(zero))
	assert.Equal(t, a, zero.Plus(a))
	assert.Equal(t, zero, a.Times(zero))
	assert.Equal(t, a, a.Times(one))

	starred, err := zero.Star()
	require.NoError(t, err)
	assert.Equal(t, one, starred)

	doubleStarred, err := starred.Star()
	require.NoError(t, err)
	assert.Equal(t, one, doubleStarred)
}

func TestBoolAlgebra(t *testing.T) {
	assert.Equal(t, Bool(true), Bool(true).Plus(Bool(false)))
	assert.Equal(t, Bool(false), Bool(true).Times(Bool(false)))
	star, err := Bool(false).Star()
	require.NoError(t, err)
	assert.Equal(t, Bool(true), star)
}
