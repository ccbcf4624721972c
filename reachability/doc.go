// Package reachability drives the external Petri-net reachability
// checker: it complements a target Presburger set (the "good",
// serializable configurations) into the set of bad configurations,
// splits that into independent disjuncts, prunes each disjunct's net
// (petri.DeduceTransitionsThatAreLocked/DeduceZeroPlacesFromConstraints),
// emits a ".net" file and a reachability-query XML file per disjunct,
// and invokes an injected CheckerFunc standing in for the real checker
// binary (spec.md §1 names it an external collaborator, not something
// this module reimplements).
package reachability
