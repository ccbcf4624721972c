// Package serialcheck decides serializability of concurrent programs by
// translating them to a Network System, then to a Petri net, and
// deciding a reachability question over that net.
//
// The pipeline mirrors the original engine's three stages:
//
//	expr/          — program terms (hash-consed), parser, small-step executor
//	ns/            — Network System: requests, responses, transitions over
//	                 local and global state
//	petri/         — NS -> Petri net translation, request-aware place
//	                 encoding
//	reachability/  — target negation, disjunct splitting, net pruning, and
//	                 driving an external reachability checker
//	proof/         — parsing and normalizing the checker's certificates
//	invariant/     — lifting a Petri-level proof to per-global NS invariants
//	decision/      — the Proof / CounterExample / Timeout verdict and its
//	                 on-disk JSON form
//
// Two supporting packages carry the underlying math: semilinear/ and
// presburger/ implement semilinear sets and quantifier-free Presburger
// formulas respectively; spresburger/ is a façade that holds a set in
// whichever of the two representations is cheapest for the operation at
// hand and converts on demand. kleene/ holds the commutative Kleene
// algebra abstraction (plus, times, star) that the semilinear and
// spresburger set representations satisfy.
//
// cmd/serialcheck wires the whole pipeline into a CLI: it parses a
// program or loads a Network System from JSON, drives it through
// translation and reachability, and writes a decision to disk.
package serialcheck
