// Package ns implements the Network System (NS): the intermediate
// representation a symbolic executor (package expr) produces and the
// Petri encoder (package petri) consumes.
//
// An NS over (G, L, Req, Resp) is a request/response/transition graph:
// requests land at a local state, local states can emit responses, and
// joint (local, global) transitions connect local states while also
// threading global state. FromExpr builds one from a hash-consed
// expr.Term by repeatedly small-stepping the executor and discovering
// new reachable (local, global) pairs until a fixpoint, mirroring the
// original engine's expr_to_ns worklist.
package ns
