package proof

import (
	"fmt"
	"sort"
	"strings"
)

// AffineExpr is a sum of coefficient*variable terms plus a constant,
// maintained as a sorted map so that two structurally different
// derivations of the same expression compare and render identically.
type AffineExpr struct {
	terms    map[string]int64
	constant int64
}

// NewAffineExpr returns the zero expression.
func NewAffineExpr() AffineExpr {
	return AffineExpr{terms: map[string]int64{}}
}

// ConstAffine returns the constant expression c.
func ConstAffine(c int64) AffineExpr {
	return AffineExpr{terms: map[string]int64{}, constant: c}
}

// VarAffine returns the expression equal to the single variable name
// (coefficient 1).
func VarAffine(name string) AffineExpr {
	return AffineExpr{terms: map[string]int64{name: 1}}
}

// Add returns e+o.
func (e AffineExpr) Add(o AffineExpr) AffineExpr {
	out := e.clone()
	out.constant += o.constant
	for v, c := range o.terms {
		out.terms[v] += c
	}
	out.dropZeros()
	return out
}

// Sub returns e-o.
func (e AffineExpr) Sub(o AffineExpr) AffineExpr {
	return e.Add(o.Negate())
}

// Negate returns -e.
func (e AffineExpr) Negate() AffineExpr {
	return e.MulConst(-1)
}

// MulConst returns e scaled by c.
func (e AffineExpr) MulConst(c int64) AffineExpr {
	if c == 0 {
		return NewAffineExpr()
	}
	out := NewAffineExpr()
	out.constant = e.constant * c
	for v, coef := range e.terms {
		out.terms[v] = coef * c
	}
	return out
}

// IsConstant reports whether e has no variables.
func (e AffineExpr) IsConstant() bool { return len(e.terms) == 0 }

// Constant returns e's constant term.
func (e AffineExpr) Constant() int64 { return e.constant }

// Coefficient returns the coefficient of name in e, or 0 if absent.
func (e AffineExpr) Coefficient(name string) int64 { return e.terms[name] }

// Variables returns e's variables in sorted order.
func (e AffineExpr) Variables() []string {
	out := make([]string, 0, len(e.terms))
	for v := range e.terms {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (e AffineExpr) clone() AffineExpr {
	terms := make(map[string]int64, len(e.terms))
	for v, c := range e.terms {
		terms[v] = c
	}
	return AffineExpr{terms: terms, constant: e.constant}
}

func (e *AffineExpr) dropZeros() {
	for v, c := range e.terms {
		if c == 0 {
			delete(e.terms, v)
		}
	}
}

// String renders e in sorted-variable order, matching AffineExpr's
// Display in the certificate it was parsed from.
func (e AffineExpr) String() string {
	vars := e.Variables()
	if len(vars) == 0 && e.constant == 0 {
		return "0"
	}
	var parts []string
	for _, v := range vars {
		c := e.terms[v]
		switch c {
		case 1:
			parts = append(parts, v)
		case -1:
			parts = append(parts, "-"+v)
		default:
			parts = append(parts, fmt.Sprintf("%d*%s", c, v))
		}
	}
	if e.constant != 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d", e.constant))
	}

	var b strings.Builder
	for i, p := range parts {
		switch {
		case i == 0:
			b.WriteString(p)
		case strings.HasPrefix(p, "-"):
			b.WriteString(" - ")
			b.WriteString(p[1:])
		default:
			b.WriteString(" + ")
			b.WriteString(p)
		}
	}
	return b.String()
}
