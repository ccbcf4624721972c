package expr

import "fmt"

// Table is a hash-cons table for Terms: it is the only way to build one,
// and guarantees that two structurally identical terms built through the
// same Table share a pointer.
type Table struct {
	interned map[string]*Term
}

// NewTable returns an empty hash-cons table.
func NewTable() *Table {
	return &Table{interned: make(map[string]*Term)}
}

func (tb *Table) intern(t Term) *Term {
	key := termKey(t)
	if existing, ok := tb.interned[key]; ok {
		return existing
	}
	stored := t
	tb.interned[key] = &stored
	return &stored
}

func termKey(t Term) string {
	switch t.kind {
	case KindNumber:
		return fmt.Sprintf("%d|n|%d", t.kind, t.number)
	case KindVariable:
		return fmt.Sprintf("%d|v|%s", t.kind, t.name)
	case KindAssign:
		return fmt.Sprintf("%d|%s|%p", t.kind, t.name, t.children[0])
	case KindYield, KindExit, KindUnknown:
		return fmt.Sprintf("%d", t.kind)
	default:
		switch t.nChild {
		case 1:
			return fmt.Sprintf("%d|%p", t.kind, t.children[0])
		case 2:
			return fmt.Sprintf("%d|%p|%p", t.kind, t.children[0], t.children[1])
		case 3:
			return fmt.Sprintf("%d|%p|%p|%p", t.kind, t.children[0], t.children[1], t.children[2])
		default:
			return fmt.Sprintf("%d", t.kind)
		}
	}
}

// Number interns a literal.
func (tb *Table) Number(n int64) *Term {
	return tb.intern(Term{kind: KindNumber, number: n})
}

// Variable interns a variable reference.
func (tb *Table) Variable(name string) *Term {
	return tb.intern(Term{kind: KindVariable, name: name})
}

// Assign interns var := e, with no folding: the assignment's value is
// only known once e is evaluated by the executor.
func (tb *Table) Assign(name string, e *Term) *Term {
	return tb.intern(Term{kind: KindAssign, name: name, children: [3]*Term{e}, nChild: 1})
}

// Equal interns l == r, folding to a 0/1 Number when both sides are
// already literals.
func (tb *Table) Equal(l, r *Term) *Term {
	if l.kind == KindNumber && r.kind == KindNumber {
		return tb.Number(boolToInt(l.number == r.number))
	}
	return tb.intern(Term{kind: KindEqual, children: [3]*Term{l, r}, nChild: 2})
}

// Add interns l + r, folding two literals to their sum.
func (tb *Table) Add(l, r *Term) *Term {
	if l.kind == KindNumber && r.kind == KindNumber {
		return tb.Number(l.number + r.number)
	}
	return tb.intern(Term{kind: KindAdd, children: [3]*Term{l, r}, nChild: 2})
}

// Subtract interns l - r, folding two literals to their difference.
func (tb *Table) Subtract(l, r *Term) *Term {
	if l.kind == KindNumber && r.kind == KindNumber {
		return tb.Number(l.number - r.number)
	}
	return tb.intern(Term{kind: KindSubtract, children: [3]*Term{l, r}, nChild: 2})
}

// Not interns !e, folding a literal operand to its logical negation.
func (tb *Table) Not(e *Term) *Term {
	if e.kind == KindNumber {
		return tb.Number(boolToInt(e.number == 0))
	}
	return tb.intern(Term{kind: KindNot, children: [3]*Term{e}, nChild: 1})
}

// And interns l && r with short-circuit folding: a literal zero left
// operand collapses to 0 without ever building a node referencing r; a
// nonzero literal left operand collapses to r itself (preserving any
// effects r may still yield).
func (tb *Table) And(l, r *Term) *Term {
	if l.kind == KindNumber {
		if l.number == 0 {
			return tb.Number(0)
		}
		return r
	}
	return tb.intern(Term{kind: KindAnd, children: [3]*Term{l, r}, nChild: 2})
}

// Or interns l || r with short-circuit folding symmetric to And.
func (tb *Table) Or(l, r *Term) *Term {
	if l.kind == KindNumber {
		if l.number != 0 {
			return tb.Number(1)
		}
		return r
	}
	return tb.intern(Term{kind: KindOr, children: [3]*Term{l, r}, nChild: 2})
}

// Sequence interns first; second, folding away a literal first operand
// (its value carries no further effect once evaluated).
func (tb *Table) Sequence(first, second *Term) *Term {
	if first.kind == KindNumber {
		return second
	}
	return tb.intern(Term{kind: KindSequence, children: [3]*Term{first, second}, nChild: 2})
}

// If interns if(cond){then}else{els}, folding away the branch not taken
// when cond is already a literal.
func (tb *Table) If(cond, then, els *Term) *Term {
	if cond.kind == KindNumber {
		if cond.number != 0 {
			return then
		}
		return els
	}
	return tb.intern(Term{kind: KindIf, children: [3]*Term{cond, then, els}, nChild: 3})
}

// While interns while(cond){body}, folding to 0 when cond is the literal
// zero (the loop never runs).
func (tb *Table) While(cond, body *Term) *Term {
	if cond.kind == KindNumber && cond.number == 0 {
		return tb.Number(0)
	}
	return tb.intern(Term{kind: KindWhile, children: [3]*Term{cond, body}, nChild: 2})
}

// Yield interns the sentinel yield term.
func (tb *Table) Yield() *Term {
	return tb.intern(Term{kind: KindYield})
}

// Exit interns the sentinel exit term. Building it is always legal;
// Run refuses to execute it (ErrExitUnsupported).
func (tb *Table) Exit() *Term {
	return tb.intern(Term{kind: KindExit})
}

// Unknown interns the nondeterministic-choice sentinel.
func (tb *Table) Unknown() *Term {
	return tb.intern(Term{kind: KindUnknown})
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
