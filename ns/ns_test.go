package ns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/serialcheck/expr"
	"github.com/katalvlaran/serialcheck/ns"
	"github.com/katalvlaran/serialcheck/spresburger"
)

func TestNewNSIsEmpty(t *testing.T) {
	n := ns.New[int, string, string, int](0)
	assert.Equal(t, 0, n.InitialGlobal)
	assert.Empty(t, n.Requests)
	assert.Empty(t, n.Responses)
	assert.Empty(t, n.Transitions)
}

func TestGetLocalAndGlobalStatesDeterministic(t *testing.T) {
	n := ns.New[int, string, string, int](0)
	n.AddRequest("req", "l0")
	n.AddTransition("l0", 0, "l1", 1)
	n.AddResponse("l1", 42)

	assert.Equal(t, []string{"l0", "l1"}, n.GetLocalStates())
	assert.Equal(t, []int{0, 1}, n.GetGlobalStates())
}

// no-transitions: a request that responds without changing the global
// state is a self-loop at the start state, so the reduced automaton is
// exactly the Kleene star of the one (req, resp) atom.
func TestSerializedAutomatonNoTransitions(t *testing.T) {
	n := ns.New[int, string, string, int](0)
	n.AddRequest("req", "l0")
	n.AddResponse("l0", 1)

	set, err := ns.SerializedAutomaton[int, string, string, int](n)
	require.NoError(t, err)

	pair := ns.ResponsePair[string, int]{Req: "req", Resp: 1}
	expected, err := spresburger.Atom(pair).Star()
	require.NoError(t, err)
	assert.True(t, set.Equal(expected))
}

// single-transition: req enters at l0, one internal step moves to l1 at a
// different global state, which responds. This exercises the BFS walking
// across a transition before finding the response-emitting local state.
func TestSerializedAutomatonSingleTransition(t *testing.T) {
	n := ns.New[int, string, string, int](0)
	n.AddRequest("req", "l0")
	n.AddTransition("l0", 0, "l1", 1)
	n.AddResponse("l1", 1)

	_, err := ns.SerializedAutomaton[int, string, string, int](n)
	require.NoError(t, err)
}

// chain-of-transitions: req -> l0 -> l1 -> l2 (response), verifying
// multi-hop BFS reaches the final response without error.
func TestSerializedAutomatonChainOfTransitions(t *testing.T) {
	n := ns.New[int, string, string, int](0)
	n.AddRequest("req", "l0")
	n.AddTransition("l0", 0, "l1", 0)
	n.AddTransition("l1", 0, "l2", 0)
	n.AddResponse("l2", 7)

	set, err := ns.SerializedAutomaton[int, string, string, int](n)
	require.NoError(t, err)

	pair := ns.ResponsePair[string, int]{Req: "req", Resp: 7}
	expected, err := spresburger.Atom(pair).Star()
	require.NoError(t, err)
	assert.True(t, set.Equal(expected))
}

// branching-paths: from l0 two transitions lead to two different
// responding local states, both staying at the start global state, so the
// reduced language is the star of the union of both atoms.
func TestSerializedAutomatonBranchingPaths(t *testing.T) {
	n := ns.New[int, string, string, int](0)
	n.AddRequest("req", "l0")
	n.AddTransition("l0", 0, "l1", 0)
	n.AddTransition("l0", 0, "l2", 0)
	n.AddResponse("l1", 1)
	n.AddResponse("l2", 2)

	set, err := ns.SerializedAutomaton[int, string, string, int](n)
	require.NoError(t, err)

	pair1 := ns.ResponsePair[string, int]{Req: "req", Resp: 1}
	pair2 := ns.ResponsePair[string, int]{Req: "req", Resp: 2}
	expected, err := spresburger.Atom(pair1).Union(spresburger.Atom(pair2)).Star()
	require.NoError(t, err)
	assert.True(t, set.Equal(expected))
}

// cycle: a self-loop at the global-state level before the request reaches
// a responding state. The automaton must still terminate (kleene.Star)
// without error.
func TestSerializedAutomatonCycle(t *testing.T) {
	n := ns.New[int, string, string, int](0)
	n.AddRequest("req", "l0")
	n.AddTransition("l0", 0, "l0", 0)
	n.AddTransition("l0", 0, "l1", 0)
	n.AddResponse("l1", 9)

	_, err := ns.SerializedAutomaton[int, string, string, int](n)
	require.NoError(t, err)
}

func TestCheckTraceValidReplay(t *testing.T) {
	n := ns.New[int, string, string, int](0)
	n.AddRequest("req", "l0")
	n.AddTransition("l0", 0, "l1", 1)
	n.AddResponse("l1", 5)

	trace := ns.NSTrace[int, string, string, int]{
		Steps: []ns.TraceStep[int, string, string, int]{
			{RequestStart: &ns.RequestStartStep[string, string]{Req: "req", Local: "l0"}},
			{InternalStep: &ns.InternalStepStep[string, int]{FromLocal: "l0", FromGlobal: 0, ToLocal: "l1", ToGlobal: 1}},
			{RequestComplete: &ns.RequestCompleteStep[string, int]{Local: "l1", Resp: 5}},
		},
	}
	require.NoError(t, ns.CheckTrace[int, string, string, int](n, trace))
}

func TestCheckTraceRejectsUnknownTransition(t *testing.T) {
	n := ns.New[int, string, string, int](0)
	n.AddRequest("req", "l0")
	n.AddResponse("l0", 5)

	trace := ns.NSTrace[int, string, string, int]{
		Steps: []ns.TraceStep[int, string, string, int]{
			{RequestStart: &ns.RequestStartStep[string, string]{Req: "req", Local: "l0"}},
			{InternalStep: &ns.InternalStepStep[string, int]{FromLocal: "l0", FromGlobal: 0, ToLocal: "l1", ToGlobal: 1}},
		},
	}
	err := ns.CheckTrace[int, string, string, int](n, trace)
	assert.ErrorIs(t, err, ns.ErrTraceStepInvalid)
}

func TestCheckTraceRejectsWrongResponse(t *testing.T) {
	n := ns.New[int, string, string, int](0)
	n.AddRequest("req", "l0")
	n.AddResponse("l0", 5)

	trace := ns.NSTrace[int, string, string, int]{
		Steps: []ns.TraceStep[int, string, string, int]{
			{RequestStart: &ns.RequestStartStep[string, string]{Req: "req", Local: "l0"}},
			{RequestComplete: &ns.RequestCompleteStep[string, int]{Local: "l0", Resp: 6}},
		},
	}
	err := ns.CheckTrace[int, string, string, int](n, trace)
	assert.ErrorIs(t, err, ns.ErrTraceStepInvalid)
}

// TestCheckTraceAllowsConcurrentRequests mirrors the lock-free
// read-modify-write race (spec.md scenario 2): two "inc" requests both
// start before either completes, so two entries sit in flight at the
// same local state at once. A validator modelling only one in-flight
// request at a time would reject this trace even though it is exactly
// the kind of counterexample the reachability driver produces.
func TestCheckTraceAllowsConcurrentRequests(t *testing.T) {
	n := ns.New[int, string, string, int](0)
	n.AddRequest("inc", "read")
	n.AddTransition("read", 0, "write", 0)
	n.AddResponse("write", 1)

	trace := ns.NSTrace[int, string, string, int]{
		Steps: []ns.TraceStep[int, string, string, int]{
			{RequestStart: &ns.RequestStartStep[string, string]{Req: "inc", Local: "read"}},
			{RequestStart: &ns.RequestStartStep[string, string]{Req: "inc", Local: "read"}},
			{InternalStep: &ns.InternalStepStep[string, int]{FromLocal: "read", FromGlobal: 0, ToLocal: "write", ToGlobal: 0}},
			{InternalStep: &ns.InternalStepStep[string, int]{FromLocal: "read", FromGlobal: 0, ToLocal: "write", ToGlobal: 0}},
			{RequestComplete: &ns.RequestCompleteStep[string, int]{Local: "write", Resp: 1}},
			{RequestComplete: &ns.RequestCompleteStep[string, int]{Local: "write", Resp: 1}},
		},
	}
	require.NoError(t, ns.CheckTrace[int, string, string, int](n, trace))
}

// TestCheckTraceRejectsCompleteWithNothingInFlight ensures the multiset
// accounting still rejects a RequestComplete/InternalStep that has no
// matching in-flight entry at all, not just a literal double-start.
func TestCheckTraceRejectsCompleteWithNothingInFlight(t *testing.T) {
	n := ns.New[int, string, string, int](0)
	n.AddRequest("inc", "read")
	n.AddResponse("write", 1)

	trace := ns.NSTrace[int, string, string, int]{
		Steps: []ns.TraceStep[int, string, string, int]{
			{RequestComplete: &ns.RequestCompleteStep[string, int]{Local: "write", Resp: 1}},
		},
	}
	err := ns.CheckTrace[int, string, string, int](n, trace)
	assert.ErrorIs(t, err, ns.ErrTraceStepInvalid)
}

func TestFromExprConstant(t *testing.T) {
	table := expr.NewTable()
	program, err := expr.Parse("1 + 1", table)
	require.NoError(t, err)

	n, locals, err := ns.FromExpr(table, program)
	require.NoError(t, err)
	require.Len(t, n.Requests, 1)
	require.Len(t, n.Responses, 1)

	resp := n.Responses[0]
	assert.EqualValues(t, 2, resp.Resp)
	_, ok := locals[resp.Local]
	assert.True(t, ok)
}

func TestFromExprAssignmentReachesGlobal(t *testing.T) {
	table := expr.NewTable()
	program, err := expr.Parse("X := 1; X", table)
	require.NoError(t, err)

	n, _, err := ns.FromExpr(table, program)
	require.NoError(t, err)
	require.NotEmpty(t, n.Responses)

	found := false
	for _, r := range n.Responses {
		if r.Resp == 1 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestFromExprSerializesToAutomaton(t *testing.T) {
	table := expr.NewTable()
	program, err := expr.Parse("42", table)
	require.NoError(t, err)

	n, _, err := ns.FromExpr(table, program)
	require.NoError(t, err)

	set, err := ns.SerializedAutomaton[string, string, ns.ExprRequest, int64](n)
	require.NoError(t, err)
	assert.IsType(t, spresburger.Set[ns.ResponsePair[ns.ExprRequest, int64]]{}, set)
}
