package decision

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/serialcheck/invariant"
	"github.com/katalvlaran/serialcheck/ns"
	"github.com/katalvlaran/serialcheck/petri"
	"github.com/katalvlaran/serialcheck/presburger"
	"github.com/katalvlaran/serialcheck/reachability"
)

// FromPetriDecision lifts a Petri-level reachability.Decision back onto
// NS-level terms: a Proof becomes Serializable (via
// invariant.LiftPetriProof), a CounterExample becomes NotSerializable
// (via convertPetriTrace), and a Timeout passes its message through
// unchanged. places and globalStates must be the same ones petri.FromNS
// produced the Petri net from.
func FromPetriDecision[G, L, Req, Resp comparable](
	pd reachability.Decision[petri.State[L, G, Req, Resp]],
	places []petri.State[L, G, Req, Resp],
	globalStates []G,
	logger zerolog.Logger,
) (NSDecision[G, L, Req, Resp], error) {
	if formula, ok := pd.AsProof(); ok {
		stringFormula := presburger.MapLabels(formula, petri.PNetName[petri.State[L, G, Req, Resp]])
		inv, err := invariant.LiftPetriProof(stringFormula, places, globalStates)
		if err != nil {
			return NSDecision[G, L, Req, Resp]{}, decisionErrorf("FromPetriDecision", "lifting proof: %s", err)
		}
		return NewSerializable[G, L, Req, Resp](inv), nil
	}

	if _, trace, _, _, ok := pd.AsCounterExample(); ok {
		nsTrace := convertPetriTrace[G, L, Req, Resp](trace, logger)
		return NewNotSerializable[G, L, Req, Resp](nsTrace), nil
	}

	message, _ := pd.AsTimeout()
	return NewTimeout[G, L, Req, Resp](message), nil
}

// convertPetriTrace turns a Petri witness firing sequence back into a
// sequential NS trace, matching each step's consumed/produced places
// against the three transition shapes FromNS emits:
//
//   - consumed Request(req), produced Local(req, l)          -> RequestStart
//   - consumed Local(req, l) + Global(g), produced
//     Local(req, l') + Global(g')                           -> InternalStep
//   - consumed Local(req, l), produced Response(req, resp)  -> RequestComplete
//
// A step matching none of these (e.g. a spawner firing that produces a
// Request token from nothing, or a batched firing the checker reports at coarser grain) is logged and
// skipped: the resulting trace is a best-effort replay, not a guaranteed
// one-to-one reconstruction.
func convertPetriTrace[G, L, Req, Resp comparable](
	trace []reachability.PlaceTraceStep[petri.State[L, G, Req, Resp]],
	logger zerolog.Logger,
) ns.NSTrace[G, L, Req, Resp] {
	var steps []ns.TraceStep[G, L, Req, Resp]

	for i, step := range trace {
		if s, ok := asRequestStart[G, L, Req, Resp](step); ok {
			steps = append(steps, ns.TraceStep[G, L, Req, Resp]{RequestStart: s})
			continue
		}
		if s, ok := asInternalStep[G, L, Req, Resp](step); ok {
			steps = append(steps, ns.TraceStep[G, L, Req, Resp]{InternalStep: s})
			continue
		}
		if s, ok := asRequestComplete[G, L, Req, Resp](step); ok {
			steps = append(steps, ns.TraceStep[G, L, Req, Resp]{RequestComplete: s})
			continue
		}
		logger.Debug().Int("step", i).Msg("skipping trace step that does not match a known NS transition shape")
	}

	return ns.NSTrace[G, L, Req, Resp]{Steps: steps}
}

func asRequestStart[G, L, Req, Resp comparable](step reachability.PlaceTraceStep[petri.State[L, G, Req, Resp]]) (*ns.RequestStartStep[Req, L], bool) {
	if len(step.Consumed) != 1 || len(step.Produced) != 1 {
		return nil, false
	}
	consumedReq, ok := step.Consumed[0].AsRequest()
	if !ok {
		return nil, false
	}
	req, l, ok := step.Produced[0].AsLocal()
	if !ok || req != consumedReq {
		return nil, false
	}
	return &ns.RequestStartStep[Req, L]{Req: req, Local: l}, true
}

func asInternalStep[G, L, Req, Resp comparable](step reachability.PlaceTraceStep[petri.State[L, G, Req, Resp]]) (*ns.InternalStepStep[L, G], bool) {
	if len(step.Consumed) != 2 || len(step.Produced) != 2 {
		return nil, false
	}
	fromLocal, fromGlobal, ok := localAndGlobal(step.Consumed)
	if !ok {
		return nil, false
	}
	toLocal, toGlobal, ok := localAndGlobal(step.Produced)
	if !ok {
		return nil, false
	}
	return &ns.InternalStepStep[L, G]{FromLocal: fromLocal, FromGlobal: fromGlobal, ToLocal: toLocal, ToGlobal: toGlobal}, true
}

func localAndGlobal[G, L, Req, Resp comparable](pair []petri.State[L, G, Req, Resp]) (L, G, bool) {
	var local L
	var global G
	var haveLocal, haveGlobal bool
	for _, s := range pair {
		if _, l, ok := s.AsLocal(); ok {
			local = l
			haveLocal = true
			continue
		}
		if g, ok := s.AsGlobal(); ok {
			global = g
			haveGlobal = true
		}
	}
	return local, global, haveLocal && haveGlobal
}

func asRequestComplete[G, L, Req, Resp comparable](step reachability.PlaceTraceStep[petri.State[L, G, Req, Resp]]) (*ns.RequestCompleteStep[L, Resp], bool) {
	if len(step.Consumed) != 1 || len(step.Produced) != 1 {
		return nil, false
	}
	_, local, ok := step.Consumed[0].AsLocal()
	if !ok {
		return nil, false
	}
	_, resp, ok := step.Produced[0].AsResponse()
	if !ok {
		return nil, false
	}
	return &ns.RequestCompleteStep[L, Resp]{Local: local, Resp: resp}, true
}
