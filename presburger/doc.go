// Package presburger implements a scoped quantifier-free Presburger set
// representation: a finite union of existentially quantified conjunctions
// of affine constraints over nonnegative integers.
//
// This is this module's own implementation of the narrow contract the
// original pipeline asked an ISL-backed engine to provide (construct from
// a semilinear set, union, intersect, difference, complement, project a
// variable out, decide emptiness) — not a general-purpose reimplementation
// of Presburger arithmetic's full decision procedure.
//
// Three constraint kinds are supported: equalities (e = 0), inequalities
// (e >= 0), and congruences (e = 0 mod m). Congruences are not part of the
// original Rust prototype's vocabulary; they are added here because exact
// elimination of an existential variable bound by a single equality with a
// non-unit coefficient produces one (see eliminate.go) — without them,
// Complement would be unsound whenever a period vector's entry is not 1.
//
// Scope: EliminateExistentials and therefore Complement are exact whenever
// every existential variable appears in at least one equality constraint,
// which is always true of sets built by FromSemilinear (the only producer
// this module's reachability driver complements). Existentials introduced
// by proof.Formula's Exists that are constrained only by inequalities fall
// back to Fourier-Motzkin elimination, which is exact when the eliminated
// variable's coefficient is +-1 in every inequality; any other coefficient
// makes the elimination fail with ErrCannotEliminate — see eliminate.go's
// eliminateByFourierMotzkin doc comment.
package presburger
