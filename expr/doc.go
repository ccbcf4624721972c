// Package expr implements a small hash-consed expression language — the
// program AST that the serializability checker's symbolic executor turns
// into a Network System. Terms are interned by a Table so that
// structurally identical subexpressions are represented by the same
// pointer, which lets the executor's "seen state" sets use pointer
// identity as part of their dedup key.
//
// The Table is the only constructor surface: building a Term always goes
// through Table.Number, Table.Add, and so on, which also perform constant
// folding (Add/Subtract/Equal/Not/And/Or of two Numbers collapse to a
// Number) and short-circuit simplification (And with a false left operand
// never builds an And node at all) exactly the way a hand-written
// evaluator would, so the executor never has to re-discover that a
// subterm is already a constant.
package expr
