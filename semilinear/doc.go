// Package semilinear implements semilinear sets of sparse nonnegative
// integer vectors, the value domain a serialization target is expressed
// over.
//
// A LinearSet is a base vector plus a finite list of period generators:
// the set {base + n1*p1 + n2*p2 + ... : ni >= 0}. A SemilinearSet is a
// finite union of LinearSets. By Parikh's theorem this family is exactly
// the image, under the commutative "count each symbol" map, of every
// context-free (and in particular every regular) language — which is why
// SemilinearSet implements kleene.Kleene: union is Plus, Minkowski sum is
// Times, and Star is computed directly via subset enumeration rather than
// by iterating Times to a fixpoint.
package semilinear
