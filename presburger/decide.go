package presburger

import "sort"

// DefaultSearchBound is the per-variable search bound IsEmpty uses when
// no other bound is specified. It is large enough for the small,
// bounded-coefficient systems this module's target sets, proof
// certificates, and invariant lifts actually produce, and small enough that exhaustive per-disjunct search stays
// fast.
const DefaultSearchBound = 12

// IsEmpty decides whether s has no satisfying assignment, by bounded
// exhaustive search over each disjunct independently: s is empty iff
// every disjunct is.
//
// The search is exact when a satisfying assignment exists within
// DefaultSearchBound (IsEmpty correctly reports nonempty). When no
// assignment is found within the bound, IsEmpty reports the disjunct as
// empty but returns ErrSearchBoundExceeded so a caller with reason to
// distrust the bound (an externally supplied proof certificate, say) can
// retry with IsEmptyWithBound and a larger bound instead of trusting a
// possibly-wrong answer silently.
func IsEmpty[T comparable](s Set[T]) (bool, error) {
	return IsEmptyWithBound(s, DefaultSearchBound)
}

// IsEmptyWithBound is IsEmpty with an explicit per-variable search bound.
func IsEmptyWithBound[T comparable](s Set[T], bound int) (bool, error) {
	exceeded := false
	for _, d := range s.union {
		sat, hitBound := conjunctSatisfiable(d, bound)
		if sat {
			return false, nil
		}
		if hitBound {
			exceeded = true
		}
	}
	if exceeded {
		return true, presburgerErrorf("IsEmpty", "no satisfying assignment found within bound %d: %w", bound, ErrSearchBoundExceeded)
	}
	return true, nil
}

// conjunctSatisfiable reports whether qs has a satisfying assignment
// with every variable in [0, bound], and whether the search actually
// explored the full bound (as opposed to proving unsatisfiability
// trivially, e.g. because qs has no variables at all).
func conjunctSatisfiable[T comparable](qs QuantifiedSet[T], bound int) (satisfiable, hitBound bool) {
	vars := collectVariables(qs)
	if len(vars) == 0 {
		ok := true
		for _, c := range qs.Constraints {
			if !c.holds(map[string]int{}) {
				ok = false
				break
			}
		}
		return ok, false
	}
	assignment := make(map[string]int, len(vars))
	return searchAssignment(qs.Constraints, vars, 0, bound, assignment), true
}

func searchAssignment[T comparable](constraints []Constraint[T], vars []Variable[T], idx, bound int, assignment map[string]int) bool {
	if idx == len(vars) {
		for _, c := range constraints {
			if !c.holds(assignment) {
				return false
			}
		}
		return true
	}
	v := vars[idx]
	for val := 0; val <= bound; val++ {
		assignment[v.key()] = val
		if searchAssignment(constraints, vars, idx+1, bound, assignment) {
			return true
		}
	}
	delete(assignment, v.key())
	return false
}

// collectVariables returns every variable referenced by qs's
// constraints, in a fixed deterministic order (existentials first, then
// original variables, each group sorted by its formatted key).
func collectVariables[T comparable](qs QuantifiedSet[T]) []Variable[T] {
	seen := make(map[string]Variable[T])
	for _, c := range qs.Constraints {
		for _, t := range c.Terms {
			seen[t.Var.key()] = t.Var
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	vars := make([]Variable[T], 0, len(keys))
	for _, k := range keys {
		vars = append(vars, seen[k])
	}
	return vars
}
