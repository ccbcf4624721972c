// Package invariant lifts a proof.Formula over Petri place names (the
// shape the external reachability checker's certificates describe) back
// to a per-global-state invariant over (Req, RequestState) pairs, and
// independently checks the three properties that make such an invariant
// a valid serializability proof: it holds at the initial state, it is
// preserved by every request-creation/internal/completion step, and it
// implies serializability once projected to completed requests only.
package invariant
