package kleene

// Bool is the simplest Kleene algebra: plain reachability, with plus as
// logical-or, times as logical-and, and star always true (since zero or
// more repetitions of anything is always achievable).
type Bool bool

// Plus is logical or.
func (b Bool) Plus(o Bool) Bool { return b || o }

// Times is logical and.
func (b Bool) Times(o Bool) Bool { return b && o }

// Star always holds: zero repetitions always succeeds.
func (b Bool) Star() (Bool, error) { return true, nil }
