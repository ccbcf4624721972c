package ns

import "encoding/json"

// MarshalJSON renders n per spec.md §6's on-disk schema: three arrays of
// tuples (requests, responses, transitions) plus initial_global, with
// exactly those field names. Each tuple is encoded as a plain JSON array
// rather than an object, since G, L, Req, Resp carry no field names of
// their own to hang object keys off of.
func (n NS[G, L, Req, Resp]) MarshalJSON() ([]byte, error) {
	requests := make([]json.RawMessage, len(n.Requests))
	for i, r := range n.Requests {
		raw, err := json.Marshal([2]interface{}{r.Req, r.Local})
		if err != nil {
			return nil, nsErrorf("MarshalJSON", "request %d: %s", i, err)
		}
		requests[i] = raw
	}

	responses := make([]json.RawMessage, len(n.Responses))
	for i, r := range n.Responses {
		raw, err := json.Marshal([2]interface{}{r.Local, r.Resp})
		if err != nil {
			return nil, nsErrorf("MarshalJSON", "response %d: %s", i, err)
		}
		responses[i] = raw
	}

	transitions := make([]json.RawMessage, len(n.Transitions))
	for i, t := range n.Transitions {
		raw, err := json.Marshal([4]interface{}{t.FromLocal, t.FromGlobal, t.ToLocal, t.ToGlobal})
		if err != nil {
			return nil, nsErrorf("MarshalJSON", "transition %d: %s", i, err)
		}
		transitions[i] = raw
	}

	return json.Marshal(struct {
		Requests      []json.RawMessage `json:"requests"`
		Responses     []json.RawMessage `json:"responses"`
		Transitions   []json.RawMessage `json:"transitions"`
		InitialGlobal G                 `json:"initial_global"`
	}{requests, responses, transitions, n.InitialGlobal})
}

// UnmarshalJSON parses an NS from the schema MarshalJSON writes.
func (n *NS[G, L, Req, Resp]) UnmarshalJSON(data []byte) error {
	var wire struct {
		Requests      []json.RawMessage `json:"requests"`
		Responses     []json.RawMessage `json:"responses"`
		Transitions   []json.RawMessage `json:"transitions"`
		InitialGlobal G                 `json:"initial_global"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nsErrorf("UnmarshalJSON", "%s", err)
	}

	n.InitialGlobal = wire.InitialGlobal

	n.Requests = make([]RequestEdge[Req, L], len(wire.Requests))
	for i, raw := range wire.Requests {
		var pair [2]json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil {
			return nsErrorf("UnmarshalJSON", "request %d: %s", i, err)
		}
		var req Req
		var local L
		if err := json.Unmarshal(pair[0], &req); err != nil {
			return nsErrorf("UnmarshalJSON", "request %d req: %s", i, err)
		}
		if err := json.Unmarshal(pair[1], &local); err != nil {
			return nsErrorf("UnmarshalJSON", "request %d local: %s", i, err)
		}
		n.Requests[i] = RequestEdge[Req, L]{Req: req, Local: local}
	}

	n.Responses = make([]ResponseEdge[L, Resp], len(wire.Responses))
	for i, raw := range wire.Responses {
		var pair [2]json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil {
			return nsErrorf("UnmarshalJSON", "response %d: %s", i, err)
		}
		var local L
		var resp Resp
		if err := json.Unmarshal(pair[0], &local); err != nil {
			return nsErrorf("UnmarshalJSON", "response %d local: %s", i, err)
		}
		if err := json.Unmarshal(pair[1], &resp); err != nil {
			return nsErrorf("UnmarshalJSON", "response %d resp: %s", i, err)
		}
		n.Responses[i] = ResponseEdge[L, Resp]{Local: local, Resp: resp}
	}

	n.Transitions = make([]Transition[L, G], len(wire.Transitions))
	for i, raw := range wire.Transitions {
		var tuple [4]json.RawMessage
		if err := json.Unmarshal(raw, &tuple); err != nil {
			return nsErrorf("UnmarshalJSON", "transition %d: %s", i, err)
		}
		var fromLocal, toLocal L
		var fromGlobal, toGlobal G
		if err := json.Unmarshal(tuple[0], &fromLocal); err != nil {
			return nsErrorf("UnmarshalJSON", "transition %d fromLocal: %s", i, err)
		}
		if err := json.Unmarshal(tuple[1], &fromGlobal); err != nil {
			return nsErrorf("UnmarshalJSON", "transition %d fromGlobal: %s", i, err)
		}
		if err := json.Unmarshal(tuple[2], &toLocal); err != nil {
			return nsErrorf("UnmarshalJSON", "transition %d toLocal: %s", i, err)
		}
		if err := json.Unmarshal(tuple[3], &toGlobal); err != nil {
			return nsErrorf("UnmarshalJSON", "transition %d toGlobal: %s", i, err)
		}
		n.Transitions[i] = Transition[L, G]{FromLocal: fromLocal, FromGlobal: fromGlobal, ToLocal: toLocal, ToGlobal: toGlobal}
	}

	return nil
}
