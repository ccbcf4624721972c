// Package spresburger provides SPresburgerSet, a tagged union of a
// semilinear.SemilinearSet and a presburger.Set that lazily converts
// between the two representations on demand, exposing the union of both
// capability sets (Star from the semilinear side, Complement from the
// Presburger side) behind one kleene.Kleene-compatible façade.
//
// The two representations denote the same class of sets mathematically;
// they differ only in which operations they can compute directly.
// Semilinear→Presburger conversion is cheap and always available
// (presburger.FromSemilinear); the reverse is not implemented and is not
// needed by this pipeline, matching the original engine's
// "SPresburgerSet::ensure_semilinear panics on a Presburger-held value".
package spresburger
