// Package petri implements place/transition Petri nets as the target
// structure an NS is compiled down to before an external unbounded
// reachability checker is invoked: places carry unboundedly many
// anonymous tokens, transitions fire by consuming one token from each
// input place and producing one token in each output place, and the
// questions this module ultimately answers ("can this multiset of
// completed requests ever occur") reduce to Petri net reachability
// queries over this representation.
package petri
