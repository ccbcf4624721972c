package reachability

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/serialcheck/petri"
	"github.com/katalvlaran/serialcheck/presburger"
)

// ConstraintsToXML renders constraints as a reachability-query property
// file in the external checker's schema: "does there exist a reachable
// marking satisfying every constraint" — an empty constraint list is
// rendered as a tautology, matching smpt.rs's presburger_constraints_to_xml.
func ConstraintsToXML[Place comparable](constraints []presburger.Constraint[Place], id string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "<?xml version='1.0' encoding='utf-8'?>\n")
	b.WriteString("<property-set>\n  <property>\n")
	fmt.Fprintf(&b, "    <id>%s</id>\n", id)
	b.WriteString("    <description>Generated from presburger constraints</description>\n")
	b.WriteString("    <formula>\n      <exists-path>\n        <finally>\n          <conjunction>\n")

	if len(constraints) == 0 {
		b.WriteString("            <integer-eq>\n")
		b.WriteString("              <integer-constant>0</integer-constant>\n")
		b.WriteString("              <integer-constant>0</integer-constant>\n")
		b.WriteString("            </integer-eq>\n")
	} else {
		for _, c := range constraints {
			rendered, err := ConstraintToXML(c)
			if err != nil {
				return "", err
			}
			for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
				b.WriteString("            ")
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}

	b.WriteString("          </conjunction>\n        </finally>\n      </exists-path>\n    </formula>\n  </property>\n</property-set>")
	return b.String(), nil
}

// ConstraintToXML renders one quantifier-free constraint as the
// checker's "sum of coefficient*place tokens, compared to -constant" XML
// fragment.
func ConstraintToXML[Place comparable](c presburger.Constraint[Place]) (string, error) {
	var op string
	switch c.Kind {
	case presburger.NonNegative:
		op = "integer-ge"
	case presburger.EqualToZero:
		op = "integer-eq"
	default:
		return "", ErrUnsupportedConstraint
	}

	var lhs strings.Builder
	lhs.WriteString("<integer-sum>\n")
	for _, t := range c.Terms {
		if t.Var.IsExistential() {
			return "", reachabilityErrorf("ConstraintToXML", "constraint still has an existential variable: %s", c.String())
		}
		name := placeTokenXML(t.Coef, petri.PNetName(t.Var.OriginalLabel()))
		lhs.WriteString(name)
	}
	lhs.WriteString("</integer-sum>")

	var b strings.Builder
	fmt.Fprintf(&b, "<%s>\n%s\n<integer-constant>%d</integer-constant>\n</%s>\n", op, lhs.String(), -c.Const, op)
	return b.String(), nil
}

func placeTokenXML(coef int, placeName string) string {
	if coef == 1 {
		return fmt.Sprintf("<tokens-count><place>%s</place></tokens-count>\n", placeName)
	}
	return fmt.Sprintf("<integer-product>\n<integer-constant>%d</integer-constant>\n<tokens-count><place>%s</place></tokens-count>\n</integer-product>\n", coef, placeName)
}
