package sparsevec

import (
	"fmt"
	"sort"
	"strings"
)

// Vector is a canonical sparse nonnegative-integer vector keyed by K.
// The zero value is the empty vector (every key reads as zero). Vector is
// a value type: all operations return new Vectors and never mutate a
// receiver's backing map in place once it has been shared.
type Vector[K comparable] struct {
	values map[K]int
}

// New returns the empty vector.
func New[K comparable]() Vector[K] {
	return Vector[K]{values: map[K]int{}}
}

// Unit returns the vector with a single entry k=1.
func Unit[K comparable](k K) Vector[K] {
	v := New[K]()
	v.values[k] = 1
	return v
}

// Get returns the value stored at k, or zero if k is absent.
func (v Vector[K]) Get(k K) int {
	if v.values == nil {
		return 0
	}
	return v.values[k]
}

// Set returns a new vector identical to v except that k now maps to n.
// Setting n to zero removes the key, preserving canonicality. A negative n
// is reported as an error wrapping ErrNegativeValue rather than a panic,
// since negative values can arise from malformed external data (e.g. a
// proof certificate) rather than only programmer error.
func (v Vector[K]) Set(k K, n int) (Vector[K], error) {
	if n < 0 {
		return Vector[K]{}, fmt.Errorf("sparsevec: Set(%v): %w", k, ErrNegativeValue)
	}
	out := v.clone()
	if n == 0 {
		delete(out.values, k)
	} else {
		out.values[k] = n
	}
	return out, nil
}

// MustSet is like Set but panics if n is negative. Reserved for call sites
// constructing vectors from already-validated nonnegative literals.
func (v Vector[K]) MustSet(k K, n int) Vector[K] {
	out, err := v.Set(k, n)
	if err != nil {
		panic(err)
	}
	return out
}

// Add returns the elementwise sum of a and b.
func Add[K comparable](a, b Vector[K]) Vector[K] {
	out := a.clone()
	for k, n := range b.values {
		out.values[k] += n
	}
	return out
}

// Keys returns the sorted (by formatted string) list of labels with a
// nonzero entry.
func (v Vector[K]) Keys() []K {
	keys := make([]K, 0, len(v.values))
	for k := range v.values {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// IsZero reports whether every entry is absent.
func (v Vector[K]) IsZero() bool {
	return len(v.values) == 0
}

// Equal reports structural equality: identical nonzero entries.
func (v Vector[K]) Equal(o Vector[K]) bool {
	if len(v.values) != len(o.values) {
		return false
	}
	for k, n := range v.values {
		if o.values[k] != n {
			return false
		}
	}
	return true
}

// String renders the vector in a deterministic, key-sorted form, e.g.
// "{x=1,y=2}". Used both for debugging and as the canonical hash key.
func (v Vector[K]) String() string {
	keys := v.Keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%v=%d", k, v.values[k]))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func (v Vector[K]) clone() Vector[K] {
	out := make(map[K]int, len(v.values))
	for k, n := range v.values {
		out[k] = n
	}
	return Vector[K]{values: out}
}

// sortKeys orders labels deterministically by their fmt-formatted
// representation. This avoids requiring every instantiation of K to
// implement a specific ordering interface, at the cost of relying on Go's
// deterministic %v formatting for the concrete label types this module
// actually uses (strings and small string-keyed structs).
func sortKeys[K comparable](keys []K) {
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprintf("%v", keys[i]) < fmt.Sprintf("%v", keys[j])
	})
}
