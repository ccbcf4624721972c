// Package kleene implements a generic Kleene algebra abstraction (zero,
// one, plus, times, star) together with the state-elimination algorithm
// that reduces a labelled nondeterministic automaton down to a single
// Kleene element describing every path from a start state back to
// itself.
//
// Three instantiations matter to this module: Bool (ordinary reachability
// over an automaton with no value information), Regex[T] (human-readable
// traces, mainly useful in tests), and semilinear.SemilinearSet[K] (the
// actual serialization-target computation, where the "labels" are
// per-transition request/response count vectors and the reduced element
// is the semilinear set of achievable counts).
package kleene
