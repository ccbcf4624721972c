package sparsevec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsEmpty(t *testing.T) {
	v := New[string]()
	assert.True(t, v.IsZero())
	assert.Equal(t, 0, v.Get("x"))
	assert.Equal(t, "{}", v.String())
}

func TestUnit(t *testing.T) {
	v := Unit("x")
	assert.Equal(t, 1, v.Get("x"))
	assert.Equal(t, 0, v.Get("y"))
	assert.False(t, v.IsZero())
}

func TestSetRemovesZero(t *testing.T) {
	v := Unit("x")
	v, err := v.Set("x", 0)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
	assert.Equal(t, "{}", v.String())
}

func TestSetRejectsNegative(t *testing.T) {
	v := New[string]()
	_, err := v.Set("x", -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNegativeValue))
}

func TestSetIsImmutable(t *testing.T) {
	a := Unit("x")
	b, err := a.Set("x", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Get("x"))
	assert.Equal(t, 5, b.Get("x"))
}

func TestAdd(t *testing.T) {
	a, err := New[string]().Set("x", 2)
	require.NoError(t, err)
	a, err = a.Set("y", 3)
	require.NoError(t, err)

	b, err := New[string]().Set("y", 1)
	require.NoError(t, err)
	b, err = b.Set("z", 4)
	require.NoError(t, err)

	sum := Add(a, b)
	assert.Equal(t, 2, sum.Get("x"))
	assert.Equal(t, 4, sum.Get("y"))
	assert.Equal(t, 4, sum.Get("z"))
}

func TestEqual(t *testing.T) {
	a := Unit("x")
	b := Unit("x")
	c := Unit("y")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestStringIsKeySorted(t *testing.T) {
	v, err := New[string]().Set("b", 1)
	require.NoError(t, err)
	v, err = v.Set("a", 2)
	require.NoError(t, err)
	v, err = v.Set("c", 3)
	require.NoError(t, err)

	assert.Equal(t, "{a=2,b=1,c=3}", v.String())
}

func TestKeysSorted(t *testing.T) {
	v, err := New[string]().Set("banana", 1)
	require.NoError(t, err)
	v, err = v.Set("apple", 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"apple", "banana"}, v.Keys())
}

func TestMustSetPanicsOnNegative(t *testing.T) {
	v := New[string]()
	assert.Panics(t, func() {
		v.MustSet("x", -1)
	})
}
