// Package proof parses the SMT-LIB-shaped proof certificates the
// external reachability checker emits: a script containing a single
// `(define-fun cert ((x Int) ...) Bool <formula>)` whose body is an
// inductive invariant over the checker's own place variables.
//
// Only the cert function is extracted; every other top-level form
// (set-logic, declare-fun, ...) is skipped. Comparisons are normalized to
// = and >= during parsing (> is lowered by adjusting the constant, <= and
// < by negation), and not/=> are eliminated via De Morgan so that the
// parsed Formula only ever contains Constraint, And, Or, Exists, Forall.
package proof
