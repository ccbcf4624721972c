package expr

// ExprResult is either a residual term still to be executed (Yielding) or
// a final integer value (Returning), mirroring the original engine's
// ExprResult enum. A zero-valued ExprResult with Term == nil and
// Value == 0 is indistinguishable from Returning(0); always construct via
// Yielding or Returning.
type ExprResult struct {
	Term  *Term
	Value int64
}

// Yielding wraps a residual continuation.
func Yielding(t *Term) ExprResult { return ExprResult{Term: t} }

// Returning wraps a final value.
func Returning(v int64) ExprResult { return ExprResult{Value: v} }

// IsYielding reports whether r carries a residual continuation rather
// than a final value.
func (r ExprResult) IsYielding() bool { return r.Term != nil }

// Step pairs an ExprResult with the (local, global) environment it was
// produced under.
type Step struct {
	Result ExprResult
	Local  Env
	Global Env
}

// Run small-steps expr once under (local, global), returning every
// nondeterministic outcome: Unknown branches into two outcomes, and a
// yielding sub-evaluation of a While loop's condition or body propagates
// as a single Yielding outcome that reconstructs the loop around the
// residual. Run returns ErrExitUnsupported if expr (or any subterm it
// steps into) is an Exit term.
func Run(table *Table, expr *Term, local, global Env) ([]Step, error) {
	switch expr.Kind() {
	case KindAssign:
		name := expr.Name()
		sub, err := Run(table, expr.Child(0), local, global)
		if err != nil {
			return nil, err
		}
		var out []Step
		for _, s := range sub {
			if s.Result.IsYielding() {
				out = append(out, Step{Yielding(table.Assign(name, s.Result.Term)), s.Local, s.Global})
				continue
			}
			n := s.Result.Value
			if IsLocal(name) {
				out = append(out, Step{Returning(n), s.Local.Set(name, n), s.Global})
			} else {
				out = append(out, Step{Returning(n), s.Local, s.Global.Set(name, n)})
			}
		}
		return out, nil

	case KindEqual:
		return runBinaryFold(table, expr, local, global, table.Equal)

	case KindAdd:
		return runBinaryFold(table, expr, local, global, table.Add)

	case KindSubtract:
		return runBinaryFold(table, expr, local, global, table.Subtract)

	case KindAnd:
		return runBinaryFold(table, expr, local, global, table.And)

	case KindOr:
		return runBinaryFold(table, expr, local, global, table.Or)

	case KindNot:
		sub, err := Run(table, expr.Child(0), local, global)
		if err != nil {
			return nil, err
		}
		var out []Step
		for _, s := range sub {
			if s.Result.IsYielding() {
				out = append(out, Step{Yielding(table.Not(s.Result.Term)), s.Local, s.Global})
			} else {
				out = append(out, Step{Returning(boolToInt(s.Result.Value == 0)), s.Local, s.Global})
			}
		}
		return out, nil

	case KindSequence:
		first, err := Run(table, expr.Child(0), local, global)
		if err != nil {
			return nil, err
		}
		var out []Step
		for _, s1 := range first {
			if s1.Result.IsYielding() {
				out = append(out, Step{Yielding(table.Sequence(s1.Result.Term, expr.Child(1))), s1.Local, s1.Global})
				continue
			}
			second, err := Run(table, expr.Child(1), s1.Local, s1.Global)
			if err != nil {
				return nil, err
			}
			out = append(out, second...)
		}
		return out, nil

	case KindIf:
		cond, err := Run(table, expr.Child(0), local, global)
		if err != nil {
			return nil, err
		}
		var out []Step
		for _, s := range cond {
			if s.Result.IsYielding() {
				out = append(out, Step{Yielding(table.If(s.Result.Term, expr.Child(1), expr.Child(2))), s.Local, s.Global})
				continue
			}
			branch := expr.Child(2)
			if s.Result.Value != 0 {
				branch = expr.Child(1)
			}
			sub, err := Run(table, branch, s.Local, s.Global)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil

	case KindWhile:
		return runWhile(table, expr, local, global)

	case KindYield:
		return []Step{{Yielding(table.Number(0)), local, global}}, nil

	case KindExit:
		return nil, exprErrorf("Run", "%w", ErrExitUnsupported)

	case KindUnknown:
		return []Step{
			{Returning(0), local, global},
			{Returning(1), local, global},
		}, nil

	case KindNumber:
		return []Step{{Returning(expr.Number()), local, global}}, nil

	case KindVariable:
		name := expr.Name()
		if IsLocal(name) {
			return []Step{{Returning(local.Get(name)), local, global}}, nil
		}
		return []Step{{Returning(global.Get(name)), local, global}}, nil

	default:
		return nil, exprErrorf("Run", "unhandled term kind %s", expr.Kind())
	}
}

// runBinaryFold executes both operands of a strict binary term
// left-to-right, propagating a Yielding residual from either side and
// otherwise combining the two final values with build (which itself
// performs the term's constant folding).
func runBinaryFold(table *Table, expr *Term, local, global Env, build func(l, r *Term) *Term) ([]Step, error) {
	leftSteps, err := Run(table, expr.Child(0), local, global)
	if err != nil {
		return nil, err
	}
	var out []Step
	for _, s1 := range leftSteps {
		if s1.Result.IsYielding() {
			out = append(out, Step{Yielding(build(s1.Result.Term, expr.Child(1))), s1.Local, s1.Global})
			continue
		}
		rightSteps, err := Run(table, expr.Child(1), s1.Local, s1.Global)
		if err != nil {
			return nil, err
		}
		for _, s2 := range rightSteps {
			if s2.Result.IsYielding() {
				out = append(out, Step{Yielding(build(table.Number(s1.Result.Value), s2.Result.Term)), s2.Local, s2.Global})
				continue
			}
			n1, n2 := s1.Result.Value, table.Number(s2.Result.Value)
			folded := build(table.Number(n1), n2)
			if folded.Kind() == KindNumber {
				out = append(out, Step{Returning(folded.Number()), s2.Local, s2.Global})
			} else {
				// build returned a non-literal term. Every builder passed here
				// folds two Number operands to a Number, so this branch is only
				// a fallback: the term is handed back as a further yield so the
				// caller still receives a well-formed result.
				out = append(out, Step{Yielding(folded), s2.Local, s2.Global})
			}
		}
	}
	return out, nil
}

// runWhile implements the worklist-based fixpoint the original engine
// uses to handle non-yielding infinite loops: states are explored until a
// visited set (keyed by the (local, global) pair) closes the search, at
// which point every remaining branch has either yielded or returned.
func runWhile(table *Table, expr *Term, local, global Env) ([]Step, error) {
	cond, body := expr.Child(0), expr.Child(1)

	type state struct {
		local, global Env
	}
	todo := []state{{local, global}}
	visited := make(map[string]bool)
	var out []Step

	for len(todo) > 0 {
		cur := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		key := cur.local.Key() + "|" + cur.global.Key()
		if visited[key] {
			continue
		}
		visited[key] = true

		condSteps, err := Run(table, cond, cur.local, cur.global)
		if err != nil {
			return nil, err
		}
		for _, cs := range condSteps {
			if cs.Result.IsYielding() {
				out = append(out, Step{Yielding(table.While(cs.Result.Term, body)), cs.Local, cs.Global})
				continue
			}
			if cs.Result.Value == 0 {
				out = append(out, Step{Returning(0), cs.Local, cs.Global})
				continue
			}
			bodySteps, err := Run(table, body, cs.Local, cs.Global)
			if err != nil {
				return nil, err
			}
			for _, bs := range bodySteps {
				if bs.Result.IsYielding() {
					whileExpr := table.While(cond, body)
					out = append(out, Step{Yielding(table.Sequence(bs.Result.Term, whileExpr)), bs.Local, bs.Global})
					continue
				}
				todo = append(todo, state{bs.Local, bs.Global})
			}
		}
	}
	return out, nil
}
