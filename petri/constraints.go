package petri

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/serialcheck/presburger"
)

// zeroPlaces extracts every place a clause constrains to exactly zero: a
// single-term EqualToZero constraint over an original (non-existential)
// variable, mirroring Constraints::extract_zero_variables.
func zeroPlaces[Place comparable](clause []presburger.Constraint[Place]) map[Place]bool {
	out := map[Place]bool{}
	for _, c := range clause {
		if c.Kind != presburger.EqualToZero || c.Const != 0 || len(c.Terms) != 1 {
			continue
		}
		v := c.Terms[0].Var
		if v.IsExistential() {
			continue
		}
		out[v.OriginalLabel()] = true
	}
	return out
}

// GetEffectiveSinks identifies non-sink places that behave like sinks
// under clause: every place p such that p is zero-constrained, p is not
// itself a genuine sink, and every transition consuming a token from p
// only ever produces tokens in places that are both genuine sinks and
// zero-constrained.
func (p *Petri[Place]) GetEffectiveSinks(clause []presburger.Constraint[Place]) map[Place]bool {
	zeros := zeroPlaces(clause)
	sinks := map[Place]bool{}
	for _, pl := range p.GetSinkPlaces() {
		sinks[pl] = true
	}

	effective := map[Place]bool{}
	for _, pl := range p.GetPlaces() {
		if sinks[pl] || !zeros[pl] {
			continue
		}
		onlyToZeroSinks := true
		touchesAny := false
		for _, t := range p.Transitions {
			if !containsPlace(t.Input, pl) {
				continue
			}
			for _, out := range t.Output {
				touchesAny = true
				if !sinks[out] || !zeros[out] {
					onlyToZeroSinks = false
				}
			}
		}
		if touchesAny && onlyToZeroSinks {
			effective[pl] = true
		}
	}
	return effective
}

// DeduceTransitionsThatAreLocked partitions transition indices into
// locked (can never usefully fire: every path it could contribute to
// ends in a zero-constrained sink) and potentiallyFiring (everything
// else), iteratively propagating lock status the way the original
// engine's deduce_transitions_that_are_locked does.
func (p *Petri[Place]) DeduceTransitionsThatAreLocked(clause []presburger.Constraint[Place], logger zerolog.Logger) (locked map[int]bool, potentiallyFiring map[int]bool) {
	zeros := zeroPlaces(clause)
	critical := map[Place]bool{}
	for _, pl := range p.GetSinkPlaces() {
		critical[pl] = true
	}
	for pl := range p.GetEffectiveSinks(clause) {
		critical[pl] = true
	}

	locked = map[int]bool{}
	potentiallyFiring = map[int]bool{}
	for i := range p.Transitions {
		potentiallyFiring[i] = true
	}

	for pl := range critical {
		if !zeros[pl] {
			continue
		}
		for i, t := range p.Transitions {
			if potentiallyFiring[i] && containsPlace(t.Output, pl) {
				logger.Debug().Str("place", fmt.Sprintf("%v", pl)).Int("transition", i).Msg("locking transition: outputs to zero-constrained critical place")
				locked[i] = true
				delete(potentiallyFiring, i)
			}
		}
	}

	changed := true
	for changed {
		changed = false

		placesToCheck := map[Place]bool{}
		for i := range locked {
			for _, pl := range p.Transitions[i].Output {
				if !zeros[pl] {
					placesToCheck[pl] = true
				}
			}
		}

		for pl := range placesToCheck {
			var outputTransitions []int
			for i, t := range p.Transitions {
				if containsPlace(t.Output, pl) {
					outputTransitions = append(outputTransitions, i)
				}
			}

			pfCount := 0
			for _, i := range outputTransitions {
				if potentiallyFiring[i] {
					pfCount++
				}
			}
			if pfCount > 1 {
				continue
			}

			pruned := p.RemoveTransitionsAndDependents(pl, locked)
			if pruned.CanReachWithAvailableTransitions(pl) {
				continue
			}
			for _, i := range outputTransitions {
				if potentiallyFiring[i] {
					logger.Debug().Str("place", fmt.Sprintf("%v", pl)).Int("transition", i).Msg("locking transition: only remaining path is blocked")
					locked[i] = true
					delete(potentiallyFiring, i)
					changed = true
					break
				}
			}
		}
	}

	return locked, potentiallyFiring
}

// DeduceZeroPlacesFromConstraints returns every place not already
// constrained to zero by clause that becomes unreachable once every
// locked transition (per DeduceTransitionsThatAreLocked) is removed —
// new places that may soundly be added to clause as additional
// EqualToZero facts before the next checker round.
//
// The original engine recovers each unreachable place's Var index by
// parsing its "P{n}" display string back apart; this port has no such
// need since Place is carried as a real Go value throughout, so the
// unreachable places are returned directly.
func (p *Petri[Place]) DeduceZeroPlacesFromConstraints(clause []presburger.Constraint[Place], logger zerolog.Logger) []Place {
	locked, _ := p.DeduceTransitionsThatAreLocked(clause, logger)

	filtered := &Petri[Place]{InitialMarking: append([]Place{}, p.InitialMarking...)}
	for i, t := range p.Transitions {
		if !locked[i] {
			filtered.Transitions = append(filtered.Transitions, t)
		}
	}

	existingZeros := zeroPlaces(clause)

	var newZeros []Place
	for _, pl := range p.GetPlaces() {
		if existingZeros[pl] {
			continue
		}
		if !filtered.CanReachWithAvailableTransitions(pl) {
			logger.Debug().Str("place", fmt.Sprintf("%v", pl)).Msg("place unreachable once locked transitions removed: zero-constraining")
			newZeros = append(newZeros, pl)
		}
	}
	return newZeros
}
