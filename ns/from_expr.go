package ns

import (
	"fmt"

	"github.com/katalvlaran/serialcheck/expr"
)

// ExprRequest is the single sentinel request type a program's entry
// point is modeled as: a program has exactly one way in, so there is
// nothing to distinguish between requests at the NS level.
type ExprRequest struct{}

// String renders the sentinel the way the original engine's Display impl
// does.
func (ExprRequest) String() string { return "Request" }

// LocalExpr pairs a local environment with the residual term still to be
// executed from it — the local state of a program-derived NS.
type LocalExpr struct {
	Local expr.Env
	Term  *expr.Term
}

// String renders "(env, term)", matching the original engine's
// LocalExpr Display impl.
func (l LocalExpr) String() string {
	return fmt.Sprintf("(%s, %s)", l.Local.String(), l.Term.String())
}

func (l LocalExpr) key() string { return l.String() }

// ExprNS is the NS produced by FromExpr: globals and locals are
// represented by their canonical string keys (expr.Env.Key() and
// LocalExpr.key(), respectively) rather than by the structured
// expr.Env/expr.Term values themselves, since those are backed by maps
// and pointers and so cannot satisfy Go's comparable constraint that NS's
// type parameters require. FromExpr separately returns a lookup table
// from key back to the structured LocalExpr for callers (trace replay,
// diagnostics) that need it.
type ExprNS = NS[string, string, ExprRequest, int64]

// FromExpr translates a program (a hash-consed expr.Term, as parsed by
// expr.Parse) into a Network System by repeatedly small-stepping the
// executor and discovering new reachable (local, global) pairs until a
// fixpoint, mirroring the original engine's expr_to_ns worklist: every
// newly discovered global is paired with every already-seen local state
// and vice versa, guaranteeing every reachable (local, global) pair is
// eventually enqueued.
//
// It returns the NS plus a lookup table from local-state key to the
// structured LocalExpr it denotes.
func FromExpr(table *expr.Table, program *expr.Term) (*ExprNS, map[string]LocalExpr, error) {
	initialLocal := expr.NewEnv()
	initialGlobal := expr.NewEnv()

	n := New[string, string, ExprRequest, int64](initialGlobal.Key())

	locals := map[string]LocalExpr{}
	globals := map[string]expr.Env{initialGlobal.Key(): initialGlobal}

	initialLocalExpr := LocalExpr{Local: initialLocal, Term: program}
	initialKey := initialLocalExpr.key()
	n.AddRequest(ExprRequest{}, initialKey)
	locals[initialKey] = initialLocalExpr

	type workItem struct {
		term          *expr.Term
		local, global expr.Env
	}
	todo := []workItem{{program, initialLocal, initialGlobal}}

	for len(todo) > 0 {
		item := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		cur := LocalExpr{Local: item.local, Term: item.term}
		curKey := cur.key()

		if item.term.Kind() == expr.KindNumber {
			n.AddResponse(curKey, item.term.Number())
			locals[curKey] = cur
			continue
		}

		steps, err := expr.Run(table, item.term, item.local, item.global)
		if err != nil {
			return nil, nil, nsErrorf("FromExpr", "%s", err)
		}

		var newGlobalKeys, newLocalKeys []string
		newGlobalEnvs := map[string]expr.Env{}
		newLocalExprs := map[string]LocalExpr{}

		for _, s := range steps {
			var next LocalExpr
			if s.Result.IsYielding() {
				next = LocalExpr{Local: s.Local, Term: s.Result.Term}
			} else {
				next = LocalExpr{Local: s.Local, Term: table.Number(s.Result.Value)}
			}
			nextKey := next.key()
			n.AddTransition(curKey, item.global.Key(), nextKey, s.Global.Key())

			gk := s.Global.Key()
			newGlobalKeys = append(newGlobalKeys, gk)
			newGlobalEnvs[gk] = s.Global
			newLocalKeys = append(newLocalKeys, nextKey)
			newLocalExprs[nextKey] = next
		}

		for _, gk := range newGlobalKeys {
			if _, ok := globals[gk]; ok {
				continue
			}
			globals[gk] = newGlobalEnvs[gk]
			for _, p := range locals {
				todo = append(todo, workItem{p.Term, p.Local, newGlobalEnvs[gk]})
			}
		}
		for _, lk := range newLocalKeys {
			if _, ok := locals[lk]; ok {
				continue
			}
			locals[lk] = newLocalExprs[lk]
			for _, g := range globals {
				todo = append(todo, workItem{newLocalExprs[lk].Term, newLocalExprs[lk].Local, g})
			}
		}
	}

	return n, locals, nil
}
