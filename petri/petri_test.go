package petri_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/serialcheck/ns"
	"github.com/katalvlaran/serialcheck/petri"
	"github.com/katalvlaran/serialcheck/presburger"
)

func zeroConstraint(v string) presburger.Constraint[string] {
	return presburger.Equality([]presburger.Term[string]{{Coef: 1, Var: presburger.Original(v)}}, 0)
}

func TestSinkPlaces(t *testing.T) {
	p := petri.New([]string{"P0", "P1", "P2"})
	p.AddTransition([]string{"P0"}, []string{"P1"})
	p.AddTransition([]string{"P1"}, []string{"P2"})

	assert.Equal(t, []string{"P2"}, p.GetSinkPlaces())
}

func TestFredArith2PetriNetFiltering(t *testing.T) {
	p := petri.New([]string{"P16"})
	p.AddTransition(nil, []string{"P12"})
	p.AddTransition(nil, []string{"P6"})
	p.AddTransition([]string{"P9"}, []string{"P1"})
	p.AddTransition([]string{"P8"}, []string{"P0"})
	p.AddTransition([]string{"P12", "P16"}, []string{"P14", "P17"})
	p.AddTransition([]string{"P6", "P17"}, []string{"P8", "P16"})
	p.AddTransition([]string{"P15"}, []string{"P5"})
	p.AddTransition([]string{"P12", "P17"}, []string{"P15", "P18"})
	p.AddTransition([]string{"P6", "P18"}, []string{"P9", "P17"})

	toRemove := map[int]bool{4: true}
	pruned := p.RemoveTransitionsAndDependents("P17", toRemove)

	assert.True(t, p.CanReachWithAvailableTransitions("P17"))
	assert.False(t, pruned.CanReachWithAvailableTransitions("P17"))
	assert.True(t, pruned.CanReachWithAvailableTransitions("P16"))
	assert.False(t, pruned.CanReachWithAvailableTransitions("P8"))

	pruned.AddTransition([]string{"P12"}, []string{"P8"})
	assert.True(t, pruned.CanReachWithAvailableTransitions("P8"))
	assert.False(t, pruned.CanReachWithAvailableTransitions("P17"))
	assert.True(t, pruned.CanReachWithAvailableTransitions("P0"))
	assert.False(t, pruned.CanReachWithAvailableTransitions("P1"))
}

func buildFredArith2() *petri.Petri[string] {
	p := petri.New([]string{"P16"})
	p.AddTransition(nil, []string{"P12"})
	p.AddTransition(nil, []string{"P6"})
	p.AddTransition([]string{"P9"}, []string{"P1"})
	p.AddTransition([]string{"P8"}, []string{"P0"})
	p.AddTransition([]string{"P12", "P16"}, []string{"P14", "P17"})
	p.AddTransition([]string{"P6", "P17"}, []string{"P8", "P16"})
	p.AddTransition([]string{"P15"}, []string{"P5"})
	p.AddTransition([]string{"P12", "P17"}, []string{"P15", "P18"})
	p.AddTransition([]string{"P6", "P18"}, []string{"P9", "P17"})
	return p
}

func TestDeduceLockedTransitionsFredArith2(t *testing.T) {
	p := buildFredArith2()
	clause := []presburger.Constraint[string]{zeroConstraint("P14")}

	locked, _ := p.DeduceTransitionsThatAreLocked(clause, zerolog.Nop())

	assert.Len(t, locked, 2)
	assert.True(t, locked[4], "t4 should be locked (outputs to zero-constrained sink P14)")
	assert.True(t, locked[8], "t8 should be locked by propagation")
}

func TestDeduceZeroPlacesFredArith2(t *testing.T) {
	p := buildFredArith2()
	clause := []presburger.Constraint[string]{zeroConstraint("P14")}

	newZeros := p.DeduceZeroPlacesFromConstraints(clause, zerolog.Nop())
	zeroSet := map[string]bool{}
	for _, pl := range newZeros {
		zeroSet[pl] = true
	}

	for _, pl := range []string{"P0", "P1", "P5", "P8", "P9", "P15", "P17", "P18"} {
		assert.True(t, zeroSet[pl], "%s should be deduced unreachable", pl)
	}
	for _, pl := range []string{"P6", "P12", "P16"} {
		assert.False(t, zeroSet[pl], "%s is a spawning/initially-marked place and should be reachable", pl)
	}
}

func TestEffectiveSinks(t *testing.T) {
	p := petri.New([]string{"P16"})
	p.AddTransition(nil, []string{"P12"})
	p.AddTransition(nil, []string{"P6"})
	p.AddTransition([]string{"P14"}, []string{"P4"})
	p.AddTransition([]string{"P13"}, []string{"P3"})
	p.AddTransition([]string{"P15"}, []string{"P5"})
	p.AddTransition([]string{"P9"}, []string{"P1"})
	p.AddTransition([]string{"P8"}, []string{"P0"})
	p.AddTransition([]string{"P10"}, []string{"P2"})
	p.AddTransition([]string{"P7", "P16"}, []string{"P9", "P17"})
	p.AddTransition([]string{"P6", "P17"}, []string{"P8", "P16"})
	p.AddTransition([]string{"P7", "P17"}, []string{"P10", "P18"})
	p.AddTransition([]string{"P6", "P18"}, []string{"P9", "P17"})
	p.AddTransition([]string{"P12", "P16"}, []string{"P14", "P17"})
	p.AddTransition([]string{"P11", "P17"}, []string{"P13", "P16"})
	p.AddTransition([]string{"P12", "P17"}, []string{"P15", "P18"})
	p.AddTransition([]string{"P11", "P18"}, []string{"P14", "P17"})

	var clause []presburger.Constraint[string]
	for _, pl := range []string{"P4", "P3", "P2", "P0", "P11", "P14", "P7", "P6", "P9", "P12", "P8", "P13", "P15", "P10"} {
		clause = append(clause, zeroConstraint(pl))
	}

	effective := p.GetEffectiveSinks(clause)
	assert.Len(t, effective, 4)
	for _, pl := range []string{"P8", "P10", "P13", "P14"} {
		assert.True(t, effective[pl], "%s should be an effective sink", pl)
	}
	for _, pl := range []string{"P9", "P15"} {
		assert.False(t, effective[pl], "%s is not an effective sink (downstream sink not zero-constrained)", pl)
	}
}

func TestFromNSSimple(t *testing.T) {
	n := ns.New[string, string, string, string]("NoSession")
	n.AddRequest("Login", "Start")
	n.AddResponse("LoggedIn", "Success")
	n.AddTransition("Start", "NoSession", "LoggedIn", "ActiveSession")

	p := petri.FromNS[string, string, string, string](n)

	places := p.GetPlaces()
	assert.Len(t, places, 6)

	marking := p.GetInitialMarking()
	require.Len(t, marking, 1)

	// One transition per request/response/state-transition, plus one
	// existential spawner transition for the "Login" request.
	assert.Len(t, p.GetTransitions(), 4)
}
