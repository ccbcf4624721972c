package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeAssignment(t *testing.T) {
	tokens, err := Tokenize("x := 42")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, TokIdentifier, tokens[0].Kind)
	assert.Equal(t, TokAssign, tokens[1].Kind)
	assert.Equal(t, int64(42), tokens[2].Value)
	assert.Equal(t, TokEOF, tokens[3].Kind)
}

func TestTokenizeComment(t *testing.T) {
	tokens, err := Tokenize("x := 10; // a comment\ny := 20;")
	require.NoError(t, err)
	var kinds []TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokIdentifier, TokAssign, TokNumber, TokSemi,
		TokIdentifier, TokAssign, TokNumber, TokSemi, TokEOF,
	}, kinds)
}

func TestParseAddConstantFolding(t *testing.T) {
	table := NewTable()
	e, err := Parse("5 + 3", table)
	require.NoError(t, err)
	assert.Equal(t, table.Number(8), e)
}

func TestParseSubtractConstantFolding(t *testing.T) {
	table := NewTable()
	e, err := Parse("10 - 4", table)
	require.NoError(t, err)
	assert.Equal(t, table.Number(6), e)
}

func TestParseAndShortCircuitFolding(t *testing.T) {
	table := NewTable()
	e, err := Parse("0 && 1", table)
	require.NoError(t, err)
	assert.Equal(t, table.Number(0), e)
}

func TestParseOrShortCircuitFolding(t *testing.T) {
	table := NewTable()
	e, err := Parse("1 || 0", table)
	require.NoError(t, err)
	assert.Equal(t, table.Number(1), e)
}

func TestParseIfElse(t *testing.T) {
	table := NewTable()
	e, err := Parse("if(x == 1){y := 2}else{z := 3}", table)
	require.NoError(t, err)
	assert.Equal(t, "if(x == 1){y := 2}else{z := 3}", e.String())
}

func TestParseWhile(t *testing.T) {
	table := NewTable()
	e, err := Parse("while(x == 0){x := x}", table)
	require.NoError(t, err)
	assert.Equal(t, "while(x == 0){ x := x }", e.String())
}

func TestHashConsSharesIdenticalSubterms(t *testing.T) {
	table := NewTable()
	a := table.Variable("x")
	b := table.Variable("x")
	assert.Same(t, a, b)

	left := table.Add(table.Variable("a"), table.Number(1))
	right := table.Add(table.Variable("a"), table.Number(1))
	assert.Same(t, left, right)
}

func TestParseRoundTrip(t *testing.T) {
	table := NewTable()
	source := "while(x == 0){y := 1; z := 2}"
	e, err := Parse(source, table)
	require.NoError(t, err)
	regenerated := e.String()
	e2, err := Parse(regenerated, table)
	require.NoError(t, err)
	assert.Same(t, e, e2)
}

func TestParseProgram(t *testing.T) {
	table := NewTable()
	prog, err := ParseProgram("request foo { x := 1 } request bar { x }", table)
	require.NoError(t, err)
	require.Len(t, prog.Requests, 2)
	assert.Equal(t, "foo", prog.Requests[0].Name)
	assert.Equal(t, "bar", prog.Requests[1].Name)
}

func TestEnvGetSetDefaultsToZero(t *testing.T) {
	e := NewEnv()
	assert.Equal(t, int64(0), e.Get("missing"))
	e2 := e.Set("x", 5)
	assert.Equal(t, int64(0), e.Get("x"))
	assert.Equal(t, int64(5), e2.Get("x"))
}

func TestEnvKeyIsOrderIndependent(t *testing.T) {
	a := NewEnv().Set("b", 2).Set("a", 1)
	b := NewEnv().Set("a", 1).Set("b", 2)
	assert.Equal(t, a.Key(), b.Key())
}

func TestRunNumberReturnsImmediately(t *testing.T) {
	table := NewTable()
	steps, err := Run(table, table.Number(7), NewEnv(), NewEnv())
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.False(t, steps[0].Result.IsYielding())
	assert.Equal(t, int64(7), steps[0].Result.Value)
}

func TestRunAssignLocalVsGlobal(t *testing.T) {
	table := NewTable()
	local, global := NewEnv(), NewEnv()

	steps, err := Run(table, table.Assign("x", table.Number(5)), local, global)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, int64(5), steps[0].Local.Get("x"))
	assert.Equal(t, int64(0), steps[0].Global.Get("x"))

	steps, err = Run(table, table.Assign("X", table.Number(9)), local, global)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, int64(9), steps[0].Global.Get("X"))
}

func TestRunUnknownBranchesNondeterministically(t *testing.T) {
	table := NewTable()
	steps, err := Run(table, table.Unknown(), NewEnv(), NewEnv())
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, int64(0), steps[0].Result.Value)
	assert.Equal(t, int64(1), steps[1].Result.Value)
}

func TestRunYieldProducesResidual(t *testing.T) {
	table := NewTable()
	steps, err := Run(table, table.Yield(), NewEnv(), NewEnv())
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.True(t, steps[0].Result.IsYielding())
	assert.Equal(t, table.Number(0), steps[0].Result.Term)
}

func TestRunExitIsUnsupported(t *testing.T) {
	table := NewTable()
	_, err := Run(table, table.Exit(), NewEnv(), NewEnv())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExitUnsupported)
}

func TestRunWhileTerminates(t *testing.T) {
	table := NewTable()
	// x := 0; while (x == 0) { x := 1 }
	prog, err := Parse("x := 0; while(x == 0){x := 1}", table)
	require.NoError(t, err)
	steps, err := Run(table, prog, NewEnv(), NewEnv())
	require.NoError(t, err)
	require.NotEmpty(t, steps)
	for _, s := range steps {
		assert.False(t, s.Result.IsYielding())
	}
}

func TestRunWhileYieldsInsideBody(t *testing.T) {
	table := NewTable()
	prog, err := Parse("while(1){yield}", table)
	require.NoError(t, err)
	steps, err := Run(table, prog, NewEnv(), NewEnv())
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.True(t, steps[0].Result.IsYielding())
}

func TestRunEqualShortCircuitsOnYield(t *testing.T) {
	table := NewTable()
	e, err := Parse("yield == 1", table)
	require.NoError(t, err)
	steps, err := Run(table, e, NewEnv(), NewEnv())
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.True(t, steps[0].Result.IsYielding())
}
