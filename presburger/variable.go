package presburger

import (
	"encoding/json"
	"fmt"
)

// Variable is either one of the original set's dimensions or one of a
// QuantifiedSet's own existentially quantified (natural-number-valued)
// indices.
type Variable[T comparable] struct {
	existential bool
	original    T
	index       int
}

// Original wraps one of the set's own dimension labels.
func Original[T comparable](t T) Variable[T] {
	return Variable[T]{original: t}
}

// Existential builds the reference to the i-th existential variable of
// whichever QuantifiedSet this Variable is used within.
func Existential[T comparable](i int) Variable[T] {
	return Variable[T]{existential: true, index: i}
}

// IsExistential reports whether v refers to an existential index rather
// than an original dimension.
func (v Variable[T]) IsExistential() bool { return v.existential }

// Index returns the existential index. Only meaningful when IsExistential
// is true.
func (v Variable[T]) Index() int { return v.index }

// OriginalLabel returns the wrapped dimension label. Only meaningful when
// IsExistential is false.
func (v Variable[T]) OriginalLabel() T { return v.original }

// String renders "n<i>" for existentials and the dimension's own
// formatting otherwise, matching the original engine's Display impl.
func (v Variable[T]) String() string {
	if v.existential {
		return fmt.Sprintf("n%d", v.index)
	}
	return fmt.Sprintf("%v", v.original)
}

// variableJSON is Variable's wire shape: since Variable's fields are
// unexported (to keep IsExistential/Original/Index as the only public
// surface), JSON (de)serialization needs its own mirror struct rather
// than relying on struct-tag reflection.
type variableJSON[T any] struct {
	Existential bool `json:"existential"`
	Index       int  `json:"index,omitempty"`
	Original    T    `json:"original,omitempty"`
}

// MarshalJSON renders v as {"existential":bool,"index":int,"original":T}.
func (v Variable[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(variableJSON[T]{Existential: v.existential, Index: v.index, Original: v.original})
}

// UnmarshalJSON is MarshalJSON's inverse.
func (v *Variable[T]) UnmarshalJSON(data []byte) error {
	var vj variableJSON[T]
	if err := json.Unmarshal(data, &vj); err != nil {
		return err
	}
	v.existential = vj.Existential
	v.index = vj.Index
	v.original = vj.Original
	return nil
}

// key is a canonical, comparable identity for this variable, used to
// group/sort terms deterministically regardless of T's own comparability
// quirks.
func (v Variable[T]) key() string {
	if v.existential {
		return fmt.Sprintf("E%d", v.index)
	}
	return fmt.Sprintf("O%v", v.original)
}
