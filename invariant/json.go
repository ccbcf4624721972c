package invariant

import (
	"encoding/json"
	"fmt"
	"sort"
)

// nsInvariantJSON mirrors NSInvariant's wire shape: global_invariants is
// a JSON array of `[G, ProofInvariant]` two-element pairs, exactly
// `spec.md` §6's schema, rather than a JSON object — G is not guaranteed
// to be a JSON object key, and the original engine's tuple_vec_map
// helper uses the same array-of-pairs encoding for this reason.
type nsInvariantJSON[G comparable, Req, L, Resp comparable] struct {
	GlobalInvariants [][2]json.RawMessage `json:"global_invariants"`
}

// MarshalJSON renders inv.GlobalInvariants as a deterministically
// ordered array of [global, invariant] pairs.
func (inv NSInvariant[G, Req, L, Resp]) MarshalJSON() ([]byte, error) {
	type pair struct {
		global G
		gi     GlobalInvariant[Req, L, Resp]
	}
	pairs := make([]pair, 0, len(inv.GlobalInvariants))
	for g, gi := range inv.GlobalInvariants {
		pairs = append(pairs, pair{global: g, gi: gi})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return fmt.Sprintf("%v", pairs[i].global) < fmt.Sprintf("%v", pairs[j].global)
	})

	out := nsInvariantJSON[G, Req, L, Resp]{GlobalInvariants: make([][2]json.RawMessage, 0, len(pairs))}
	for _, p := range pairs {
		gRaw, err := json.Marshal(p.global)
		if err != nil {
			return nil, err
		}
		giRaw, err := json.Marshal(p.gi)
		if err != nil {
			return nil, err
		}
		out.GlobalInvariants = append(out.GlobalInvariants, [2]json.RawMessage{gRaw, giRaw})
	}
	return json.Marshal(out)
}

// UnmarshalJSON is MarshalJSON's inverse.
func (inv *NSInvariant[G, Req, L, Resp]) UnmarshalJSON(data []byte) error {
	var in nsInvariantJSON[G, Req, L, Resp]
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	inv.GlobalInvariants = make(map[G]GlobalInvariant[Req, L, Resp], len(in.GlobalInvariants))
	for _, p := range in.GlobalInvariants {
		var g G
		if err := json.Unmarshal(p[0], &g); err != nil {
			return err
		}
		var gi GlobalInvariant[Req, L, Resp]
		if err := json.Unmarshal(p[1], &gi); err != nil {
			return err
		}
		inv.GlobalInvariants[g] = gi
	}
	return nil
}
