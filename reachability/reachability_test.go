package reachability_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/serialcheck/petri"
	"github.com/katalvlaran/serialcheck/presburger"
	"github.com/katalvlaran/serialcheck/reachability"
)

func eq(v string) presburger.Constraint[string] {
	return presburger.Equality([]presburger.Term[string]{{Coef: 1, Var: presburger.Original(v)}}, 0)
}

func TestConstraintsToXML_EmptyIsTautology(t *testing.T) {
	out, err := reachability.ConstraintsToXML[string](nil, "q0")
	require.NoError(t, err)
	assert.Contains(t, out, "<id>q0</id>")
	assert.Contains(t, out, "<integer-eq>")
}

func TestConstraintToXML_RejectsCongruence(t *testing.T) {
	c := presburger.CongruenceConstraint([]presburger.Term[string]{{Coef: 1, Var: presburger.Original("P0")}}, 0, 2)
	_, err := reachability.ConstraintToXML(c)
	assert.ErrorIs(t, err, reachability.ErrUnsupportedConstraint)
}

func TestConstraintToXML_RendersTokenCount(t *testing.T) {
	c := presburger.Inequality([]presburger.Term[string]{{Coef: 2, Var: presburger.Original("P0")}}, -3)
	out, err := reachability.ConstraintToXML(c)
	require.NoError(t, err)
	assert.Contains(t, out, "<place>P0</place>")
	assert.Contains(t, out, "<integer-ge>")
}

// buildTwoPlaceNet: P0 -> P1, starting with one token in P0.
func buildTwoPlaceNet() *petri.Petri[string] {
	p := petri.New([]string{"P0"})
	p.AddTransition([]string{"P0"}, []string{"P1"})
	return p
}

func TestCheck_ReachableDisjunctYieldsCounterExample(t *testing.T) {
	p := buildTwoPlaceNet()
	// target = "P1 is always zero"; its complement (P1 >= 1) is reachable.
	target := presburger.FromQuantifiedSets([]presburger.QuantifiedSet[string]{
		presburger.NewQuantifiedSet([]presburger.Constraint[string]{eq("P1")}, 0),
	})

	checker := func(ctx context.Context, netFile, xmlFile string, timeout time.Duration) (reachability.CheckerResult, error) {
		return reachability.CheckerResult{
			Reachable:  true,
			MethodUsed: "BFS",
			Trace:      []reachability.TraceStep{{Consumed: []string{"P0"}, Produced: []string{"P1"}}},
		}, nil
	}

	decision, err := reachability.Check[string](p, nil, target, t.TempDir(), checker, time.Second, false, zerolog.Nop())
	require.NoError(t, err)
	_, trace, method, _, ok := decision.AsCounterExample()
	require.True(t, ok)
	assert.Equal(t, "BFS", method)
	require.Len(t, trace, 1)
	assert.Equal(t, []string{"P0"}, trace[0].Consumed)
	assert.Equal(t, []string{"P1"}, trace[0].Produced)
}

func TestCheck_UnreachableDisjunctsYieldProof(t *testing.T) {
	p := buildTwoPlaceNet()
	target := presburger.FromQuantifiedSets([]presburger.QuantifiedSet[string]{
		presburger.NewQuantifiedSet([]presburger.Constraint[string]{eq("P1")}, 0),
	})

	cert := `(define-fun cert ((P0 Int) (P1 Int)) Bool (>= P0 0))`
	checker := func(ctx context.Context, netFile, xmlFile string, timeout time.Duration) (reachability.CheckerResult, error) {
		return reachability.CheckerResult{Reachable: false, Certificate: cert, MethodUsed: "K-INDUCTION"}, nil
	}

	decision, err := reachability.Check[string](p, nil, target, t.TempDir(), checker, time.Second, false, zerolog.Nop())
	require.NoError(t, err)
	_, ok := decision.AsProof()
	assert.True(t, ok)
}

func TestCheck_CheckerTimeoutYieldsTimeoutDecision(t *testing.T) {
	p := buildTwoPlaceNet()
	target := presburger.FromQuantifiedSets([]presburger.QuantifiedSet[string]{
		presburger.NewQuantifiedSet([]presburger.Constraint[string]{eq("P1")}, 0),
	})

	checker := func(ctx context.Context, netFile, xmlFile string, timeout time.Duration) (reachability.CheckerResult, error) {
		return reachability.CheckerResult{}, context.DeadlineExceeded
	}

	decision, err := reachability.Check[string](p, nil, target, t.TempDir(), checker, time.Millisecond, false, zerolog.Nop())
	require.NoError(t, err)
	_, ok := decision.AsTimeout()
	assert.True(t, ok)
}

func TestCheck_NoTargetComplementMeansVacuousProof(t *testing.T) {
	p := buildTwoPlaceNet()
	// target = universe (no constraints at all): its complement is empty,
	// so there is nothing to check.
	target := presburger.FromQuantifiedSets([]presburger.QuantifiedSet[string]{
		presburger.NewQuantifiedSet[string](nil, 0),
	})

	checker := func(ctx context.Context, netFile, xmlFile string, timeout time.Duration) (reachability.CheckerResult, error) {
		t.Fatal("checker should not be invoked when the complement is empty")
		return reachability.CheckerResult{}, nil
	}

	decision, err := reachability.Check[string](p, nil, target, t.TempDir(), checker, time.Second, false, zerolog.Nop())
	require.NoError(t, err)
	_, ok := decision.AsProof()
	assert.True(t, ok)
}

func TestCheck_MissingCertificateDegradesToTimeoutByDefault(t *testing.T) {
	p := buildTwoPlaceNet()
	target := presburger.FromQuantifiedSets([]presburger.QuantifiedSet[string]{
		presburger.NewQuantifiedSet([]presburger.Constraint[string]{eq("P1")}, 0),
	})

	checker := func(ctx context.Context, netFile, xmlFile string, timeout time.Duration) (reachability.CheckerResult, error) {
		return reachability.CheckerResult{Reachable: false, Certificate: ""}, nil
	}

	decision, err := reachability.Check[string](p, nil, target, t.TempDir(), checker, time.Second, false, zerolog.Nop())
	require.NoError(t, err)
	_, ok := decision.AsTimeout()
	assert.True(t, ok)
}

func TestCheck_MissingCertificateIsHardErrorWhenStrict(t *testing.T) {
	p := buildTwoPlaceNet()
	target := presburger.FromQuantifiedSets([]presburger.QuantifiedSet[string]{
		presburger.NewQuantifiedSet([]presburger.Constraint[string]{eq("P1")}, 0),
	})

	checker := func(ctx context.Context, netFile, xmlFile string, timeout time.Duration) (reachability.CheckerResult, error) {
		return reachability.CheckerResult{Reachable: false, Certificate: ""}, nil
	}

	_, err := reachability.Check[string](p, nil, target, t.TempDir(), checker, time.Second, true, zerolog.Nop())
	assert.Error(t, err)
}
