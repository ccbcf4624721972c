package reachability

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/serialcheck/petri"
	"github.com/katalvlaran/serialcheck/presburger"
	"github.com/katalvlaran/serialcheck/proof"
)

// maxPruneRounds bounds the zero-place/locked-transition refinement
// fixpoint: every round that does not end the loop zero-constrains at
// least one new place, so a net with at most this many places always
// reaches the fixpoint; on a larger net the loop may stop before it.
const maxPruneRounds = 64

// Check decides whether the target Presburger set is an inductive-enough
// invariant for p to certify no bad configuration is reachable: it
// complements target, splits the complement into independent disjuncts,
// prunes p against each disjunct's constraints, and asks checker whether
// the pruned net can still reach that disjunct. The first reachable
// disjunct settles the whole call as a CounterExample; if every disjunct
// is proven unreachable, their certificates are combined into a single
// overall Proof. logger receives per-disjunct progress at debug level,
// matching the pruning helpers' own logging convention.
func Check[Place comparable](
	p *petri.Petri[Place],
	placesThatMustBeZero []Place,
	target presburger.Set[Place],
	outDir string,
	checker CheckerFunc,
	timeout time.Duration,
	strictProofParsing bool,
	logger zerolog.Logger,
) (Decision[Place], error) {
	bad, err := presburger.Complement(target)
	if err != nil {
		return Decision[Place]{}, reachabilityErrorf("Check", "complementing target: %s", err)
	}

	disjuncts := bad.Disjuncts()
	if len(disjuncts) == 0 {
		return ProofDecision(presburger.Empty[Place]()), nil
	}

	nameToPlace := make(map[string]Place, len(p.GetPlaces()))
	for _, pl := range p.GetPlaces() {
		nameToPlace[petri.PNetName(pl)] = pl
	}

	var merr *multierror.Error
	combinedProof := presburger.Set[Place]{}
	haveProof := false

	for i, disjunct := range disjuncts {
		logger.Debug().Int("disjunct", i).Msg("checking reachability of bad-configuration disjunct")

		clause, err := pruneClause(p, disjunct, placesThatMustBeZero, logger)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("disjunct %d: %w", i, err))
			continue
		}

		prunedNet := lockedTransitionsRemoved(p, clause, logger)

		id := uuid.New().String()
		netPath := filepath.Join(outDir, id+".net")
		xmlPath := filepath.Join(outDir, id+".xml")

		if err := os.WriteFile(netPath, []byte(prunedNet.ToPNet(id)), 0o644); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("disjunct %d: writing net file: %w", i, err))
			continue
		}
		xmlContent, err := ConstraintsToXML(clause, id)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("disjunct %d: rendering query XML: %w", i, err))
			continue
		}
		if err := os.WriteFile(xmlPath, []byte(xmlContent), 0o644); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("disjunct %d: writing query file: %w", i, err))
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		result, err := checker(ctx, netPath, xmlPath, timeout)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return TimeoutDecision[Place](fmt.Sprintf("disjunct %d: checker did not decide within %s", i, timeout)), nil
			}
			merr = multierror.Append(merr, fmt.Errorf("disjunct %d: invoking checker: %w", i, err))
			continue
		}

		if result.Reachable {
			logger.Debug().Int("disjunct", i).Str("method", result.MethodUsed).Msg("bad configuration reachable")
			trace, err := mapTraceNames(result.Trace, nameToPlace)
			if err != nil {
				return Decision[Place]{}, err
			}
			return CounterExampleDecision(disjunct, trace, result.MethodUsed, result.ExecutionTimeMS), nil
		}

		inv, err := proof.Parse(result.Certificate)
		if err != nil {
			if errors.Is(err, proof.ErrCertNotFound) && !strictProofParsing {
				logger.Debug().Int("disjunct", i).Msg("no cert function in checker output, degrading to timeout")
				return TimeoutDecision[Place](fmt.Sprintf("disjunct %d: checker reported unreachable without a proof certificate", i)), nil
			}
			merr = multierror.Append(merr, fmt.Errorf("disjunct %d: parsing certificate: %w", i, err))
			continue
		}
		stringFormula, err := proof.ToPresburgerSet(inv.Formula)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("disjunct %d: converting certificate to Presburger set: %w", i, err))
			continue
		}
		formula, err := mapSetNames(stringFormula, nameToPlace)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("disjunct %d: %w", i, err))
			continue
		}

		if !haveProof {
			combinedProof = formula
			haveProof = true
		} else {
			combinedProof = presburger.Intersect(combinedProof, formula)
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return Decision[Place]{}, err
	}
	return ProofDecision(combinedProof), nil
}

// pruneClause turns one bad-configuration disjunct into a fully
// quantifier-free clause, iteratively folding in newly deducible
// zero-places (petri.DeduceZeroPlacesFromConstraints) until a fixpoint,
// the same iterative refinement reachability_with_proofs.rs performs
// before handing a clause to the checker.
func pruneClause[Place comparable](p *petri.Petri[Place], disjunct presburger.QuantifiedSet[Place], placesThatMustBeZero []Place, logger zerolog.Logger) ([]presburger.Constraint[Place], error) {
	eliminated, err := disjunct.EliminateExistentials()
	if err != nil {
		return nil, reachabilityErrorf("pruneClause", "eliminating existentials: %s", err)
	}

	clause := append([]presburger.Constraint[Place]{}, eliminated.Constraints...)
	for _, pl := range placesThatMustBeZero {
		clause = append(clause, presburger.Equality([]presburger.Term[Place]{{Coef: 1, Var: presburger.Original(pl)}}, 0))
	}

	for round := 0; round < maxPruneRounds; round++ {
		newZeros := p.DeduceZeroPlacesFromConstraints(clause, logger)
		if len(newZeros) == 0 {
			break
		}
		for _, pl := range newZeros {
			clause = append(clause, presburger.Equality([]presburger.Term[Place]{{Coef: 1, Var: presburger.Original(pl)}}, 0))
		}
	}
	return clause, nil
}

// lockedTransitionsRemoved returns the subset of p's transitions that
// DeduceTransitionsThatAreLocked did not mark as locked under clause.
func lockedTransitionsRemoved[Place comparable](p *petri.Petri[Place], clause []presburger.Constraint[Place], logger zerolog.Logger) *petri.Petri[Place] {
	locked, _ := p.DeduceTransitionsThatAreLocked(clause, logger)
	out := petri.New(p.GetInitialMarking())
	for i, t := range p.GetTransitions() {
		if !locked[i] {
			out.AddTransition(t.Input, t.Output)
		}
	}
	return out
}

// mapSetNames renames a Presburger set's string-keyed dimensions back
// onto Place values via nameToPlace, the inverse of the petri.PNetName
// table the ".net"/XML export used. Existential variables are kept as
// existentials of the same index; only original dimensions are renamed.
func mapSetNames[Place comparable](s presburger.Set[string], nameToPlace map[string]Place) (presburger.Set[Place], error) {
	disjuncts := s.Disjuncts()
	out := make([]presburger.QuantifiedSet[Place], 0, len(disjuncts))
	for _, qs := range disjuncts {
		constraints := make([]presburger.Constraint[Place], 0, len(qs.Constraints))
		for _, c := range qs.Constraints {
			terms := make([]presburger.Term[Place], 0, len(c.Terms))
			for _, t := range c.Terms {
				if t.Var.IsExistential() {
					terms = append(terms, presburger.Term[Place]{Coef: t.Coef, Var: presburger.Existential[Place](t.Var.Index())})
					continue
				}
				pl, ok := nameToPlace[t.Var.OriginalLabel()]
				if !ok {
					return presburger.Set[Place]{}, reachabilityErrorf("mapSetNames", "certificate references unknown place name %q", t.Var.OriginalLabel())
				}
				terms = append(terms, presburger.Term[Place]{Coef: t.Coef, Var: presburger.Original(pl)})
			}
			switch c.Kind {
			case presburger.Congruence:
				constraints = append(constraints, presburger.CongruenceConstraint(terms, c.Const, c.Modulus))
			case presburger.NonNegative:
				constraints = append(constraints, presburger.Inequality(terms, c.Const))
			default:
				constraints = append(constraints, presburger.Equality(terms, c.Const))
			}
		}
		out = append(out, presburger.NewQuantifiedSet(constraints, qs.NumExistentials))
	}
	return presburger.FromQuantifiedSets(out), nil
}

// mapTraceNames renames a witness firing sequence's place-name strings
// back onto Place values via the same nameToPlace table mapSetNames uses.
func mapTraceNames[Place comparable](trace []TraceStep, nameToPlace map[string]Place) ([]PlaceTraceStep[Place], error) {
	out := make([]PlaceTraceStep[Place], 0, len(trace))
	resolve := func(names []string) ([]Place, error) {
		places := make([]Place, 0, len(names))
		for _, name := range names {
			pl, ok := nameToPlace[name]
			if !ok {
				return nil, reachabilityErrorf("mapTraceNames", "checker trace references unknown place name %q", name)
			}
			places = append(places, pl)
		}
		return places, nil
	}
	for _, step := range trace {
		consumed, err := resolve(step.Consumed)
		if err != nil {
			return nil, err
		}
		produced, err := resolve(step.Produced)
		if err != nil {
			return nil, err
		}
		out = append(out, PlaceTraceStep[Place]{Consumed: consumed, Produced: produced})
	}
	return out, nil
}
