package invariant

import "sort"

// ProjectToCompleted projects gi to only its completed-request variables,
// mirroring the original engine's NSInvariant::project_to_completed: every
// InFlight(l) variable is fixed to 0 and projected away, leaving a
// GlobalInvariant whose Variables are all Completed(...).
func ProjectToCompleted[Req, L, Resp comparable](gi GlobalInvariant[Req, L, Resp]) (GlobalInvariant[Req, L, Resp], error) {
	cur := gi.Formula
	var remaining []RequestStatePair[Req, L, Resp]
	for _, v := range gi.Variables {
		if l, ok := v.State.AsInFlight(); ok {
			var err error
			cur, err = fixVariable(cur, inFlightVarName(v.Req, l), 0)
			if err != nil {
				return GlobalInvariant[Req, L, Resp]{}, err
			}
			continue
		}
		remaining = append(remaining, v)
	}
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].String() < remaining[j].String() })
	return GlobalInvariant[Req, L, Resp]{Variables: remaining, Formula: cur}, nil
}
