package sparsevec

import "errors"

// ErrNegativeValue indicates that Set was asked to store a negative count.
// Vectors in this package represent nonnegative integer multiplicities only;
// a negative value has no meaning here and is rejected rather than silently
// clamped.
// Usage: if errors.Is(err, ErrNegativeValue) { /* reject malformed input */ }.
var ErrNegativeValue = errors.New("sparsevec: negative value")
