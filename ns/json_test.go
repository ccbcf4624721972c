package ns_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/serialcheck/ns"
)

func TestNSJSONRoundTrip(t *testing.T) {
	n := ns.New[int, string, string, int64](0)
	n.AddRequest("req", "l0")
	n.AddTransition("l0", 0, "l1", 1)
	n.AddResponse("l1", 42)

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var got ns.NS[int, string, string, int64]
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, n.InitialGlobal, got.InitialGlobal)
	assert.Equal(t, n.Requests, got.Requests)
	assert.Equal(t, n.Responses, got.Responses)
	assert.Equal(t, n.Transitions, got.Transitions)
}

func TestNSJSONSchemaFieldNames(t *testing.T) {
	n := ns.New[int, string, string, int64](7)
	n.AddRequest("req", "l0")
	n.AddResponse("l0", 1)
	n.AddTransition("l0", 7, "l0", 7)

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, field := range []string{"requests", "responses", "transitions", "initial_global"} {
		_, ok := raw[field]
		assert.Truef(t, ok, "expected field %q in serialized NS", field)
	}

	var initial int
	require.NoError(t, json.Unmarshal(raw["initial_global"], &initial))
	assert.Equal(t, 7, initial)

	var requests [][2]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["requests"], &requests))
	require.Len(t, requests, 1)
	var req string
	var local string
	require.NoError(t, json.Unmarshal(requests[0][0], &req))
	require.NoError(t, json.Unmarshal(requests[0][1], &local))
	assert.Equal(t, "req", req)
	assert.Equal(t, "l0", local)
}

func TestNSJSONEmpty(t *testing.T) {
	n := ns.New[int, string, string, int64](0)

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var got ns.NS[int, string, string, int64]
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Empty(t, got.Requests)
	assert.Empty(t, got.Responses)
	assert.Empty(t, got.Transitions)
}
