package proof

import "strings"

// CompOp is one of the two comparison operators a normalized Constraint
// may use; >, <=, < are all lowered to = or >= during parsing.
type CompOp int

const (
	// CompEq holds when the expression is exactly zero.
	CompEq CompOp = iota
	// CompGeq holds when the expression is at least zero.
	CompGeq
)

func (op CompOp) String() string {
	if op == CompEq {
		return "="
	}
	return ">="
}

// Constraint is a single normalized affine constraint: expr op 0.
type Constraint struct {
	Expr AffineExpr
	Op   CompOp
}

func (c Constraint) String() string {
	return c.Expr.String() + " " + c.Op.String() + " 0"
}

type formulaKind int

const (
	formulaConstraint formulaKind = iota
	formulaAnd
	formulaOr
	formulaExists
	formulaForall
)

// Formula is a normalized proof invariant formula: Not and Implies have
// already been eliminated (De Morgan, A=>B == not(A) or B), leaving only
// Constraint, And, Or, Exists, Forall.
type Formula struct {
	kind       formulaKind
	constraint Constraint
	parts      []Formula
	qvar       string
	body       *Formula
}

// ConstraintFormula wraps a single constraint as a Formula leaf.
func ConstraintFormula(c Constraint) Formula {
	return Formula{kind: formulaConstraint, constraint: c}
}

// AndFormula builds a (possibly empty, i.e. true) conjunction.
func AndFormula(parts ...Formula) Formula {
	return Formula{kind: formulaAnd, parts: parts}
}

// OrFormula builds a (possibly empty, i.e. false) disjunction.
func OrFormula(parts ...Formula) Formula {
	return Formula{kind: formulaOr, parts: parts}
}

// ExistsFormula builds an existentially quantified formula.
func ExistsFormula(qvar string, body Formula) Formula {
	return Formula{kind: formulaExists, qvar: qvar, body: &body}
}

// ForallFormula builds a universally quantified formula.
func ForallFormula(qvar string, body Formula) Formula {
	return Formula{kind: formulaForall, qvar: qvar, body: &body}
}

// Negate returns the De Morgan negation of f: equalities split into the
// two opposing strict inequalities, >= flips to its strict complement,
// And/Or swap with their parts negated, and Exists/Forall swap with
// their body negated.
func Negate(f Formula) Formula {
	switch f.kind {
	case formulaConstraint:
		c := f.constraint
		switch c.Op {
		case CompEq:
			pos := Constraint{Expr: c.Expr, Op: CompGeq}
			pos.Expr = pos.Expr.Sub(ConstAffine(1))
			neg := Constraint{Expr: c.Expr.Negate(), Op: CompGeq}
			neg.Expr = neg.Expr.Sub(ConstAffine(1))
			return OrFormula(ConstraintFormula(pos), ConstraintFormula(neg))
		default: // CompGeq
			neg := Constraint{Expr: c.Expr.Negate().Sub(ConstAffine(1)), Op: CompGeq}
			return ConstraintFormula(neg)
		}
	case formulaAnd:
		negated := make([]Formula, len(f.parts))
		for i, p := range f.parts {
			negated[i] = Negate(p)
		}
		return OrFormula(negated...)
	case formulaOr:
		negated := make([]Formula, len(f.parts))
		for i, p := range f.parts {
			negated[i] = Negate(p)
		}
		return AndFormula(negated...)
	case formulaExists:
		return ForallFormula(f.qvar, Negate(*f.body))
	default: // formulaForall
		return ExistsFormula(f.qvar, Negate(*f.body))
	}
}

// String renders f using the same ASCII infix style as the rest of this
// module's algebraic types (presburger.QuantifiedSet, kleene.Regex).
func (f Formula) String() string {
	switch f.kind {
	case formulaConstraint:
		return f.constraint.String()
	case formulaAnd:
		if len(f.parts) == 0 {
			return "true"
		}
		return "(" + joinFormulas(f.parts, " and ") + ")"
	case formulaOr:
		if len(f.parts) == 0 {
			return "false"
		}
		return "(" + joinFormulas(f.parts, " or ") + ")"
	case formulaExists:
		return "exists " + f.qvar + ". " + f.body.String()
	default:
		return "forall " + f.qvar + ". " + f.body.String()
	}
}

func joinFormulas(parts []Formula, sep string) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(p.String())
	}
	return b.String()
}

// ProofInvariant is the certificate extracted from a cert function: its
// declared parameters (in declaration order) and its body formula.
type ProofInvariant struct {
	Variables []string
	Formula   Formula
}
