package proof_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/serialcheck/proof"
)

func TestParse_SimpleEquality(t *testing.T) {
	script := `(set-logic QF_LIA)
(define-fun cert ((x Int) (y Int)) Bool (= x y))
`
	inv, err := proof.Parse(script)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, inv.Variables)
	assert.Equal(t, "x - y = 0", inv.Formula.String())
}

func TestParse_AndOrNotImplies(t *testing.T) {
	script := `(define-fun cert ((x Int)) Bool
  (and (>= x 0) (not (> x 10)) (=> (>= x 1) (<= x 100))))`
	inv, err := proof.Parse(script)
	require.NoError(t, err)
	// (not (> x 10)) negates to (<= x 10) i.e. -x + 10 >= 0.
	assert.Contains(t, inv.Formula.String(), "-x + 10 >= 0")
}

func TestParse_ExistsForall(t *testing.T) {
	script := `(define-fun cert ((x Int)) Bool (exists ((y Int)) (= x y)))`
	inv, err := proof.Parse(script)
	require.NoError(t, err)
	assert.Contains(t, inv.Formula.String(), "exists y.")
}

func TestParse_SkipsUnrelatedForms(t *testing.T) {
	script := `(set-info :status unknown)
(declare-fun p0 () Int)
(define-fun helper ((z Int)) Bool (>= z 0))
(define-fun cert ((p0 Int) (p1 Int)) Bool (>= p0 p1))
(check-sat)`
	inv, err := proof.Parse(script)
	require.NoError(t, err)
	assert.Equal(t, []string{"p0", "p1"}, inv.Variables)
}

func TestParse_MissingCert(t *testing.T) {
	script := `(set-logic QF_LIA)
(declare-fun x () Int)
(check-sat)`
	_, err := proof.Parse(script)
	assert.ErrorIs(t, err, proof.ErrCertNotFound)
}

func TestNegate_Equality(t *testing.T) {
	c := proof.Constraint{Expr: proof.VarAffine("x"), Op: proof.CompEq}
	f := proof.ConstraintFormula(c)
	neg := proof.Negate(f)
	// not(x = 0) == (x - 1 >= 0) or (-x - 1 >= 0)
	assert.Equal(t, "(x - 1 >= 0 or -x - 1 >= 0)", neg.String())
}

func TestNegate_DoubleNegationRoundTrips(t *testing.T) {
	c := proof.Constraint{Expr: proof.VarAffine("x").Sub(proof.ConstAffine(3)), Op: proof.CompGeq}
	f := proof.ConstraintFormula(c)
	again := proof.Negate(proof.Negate(f))
	assert.Equal(t, f.String(), again.String())
}

func TestToPresburgerSet_ConjunctionIsNotEmpty(t *testing.T) {
	script := `(define-fun cert ((x Int)) Bool (and (>= x 0) (>= x 0)))`
	inv, err := proof.Parse(script)
	require.NoError(t, err)

	set, err := proof.ToPresburgerSet(inv.Formula)
	require.NoError(t, err)
	assert.Len(t, set.Disjuncts(), 1)
}

func TestToPresburgerSet_Disjunction(t *testing.T) {
	script := `(define-fun cert ((x Int)) Bool (or (= x 0) (= x 1)))`
	inv, err := proof.Parse(script)
	require.NoError(t, err)

	set, err := proof.ToPresburgerSet(inv.Formula)
	require.NoError(t, err)
	assert.Len(t, set.Disjuncts(), 2)
}

func TestParse_UndeclaredVariable(t *testing.T) {
	script := `(define-fun cert ((x Int)) Bool (= x y))`
	_, err := proof.Parse(script)
	require.Error(t, err)
}

func TestParse_AtSuffixTolerated(t *testing.T) {
	script := `(define-fun cert ((x Int)) Bool (>= x@0 0))`
	inv, err := proof.Parse(script)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, inv.Variables)
}
