// Package sparsevec implements canonical sparse nonnegative-integer vectors
// keyed by an arbitrary comparable label type.
//
// A Vector represents a mapping from labels to nonnegative integers where
// every absent key denotes zero. The canonical form never stores a zero
// entry: Set(k, 0) removes k rather than recording it. This canonicality is
// what lets Vector be compared and hashed structurally (via String, which
// enumerates entries in a deterministic, key-sorted order) without ever
// disagreeing over whether a "zero but present" entry counts.
package sparsevec
