package numeric

import "regexp"

// zero is the canonical marker every collapsed fragment is rewritten to.
const zero = "0"

var (
	// reNumeric matches anything that looks like a signed decimal number.
	reNumeric = regexp.MustCompile(`[+-]?(?:\d+|\.\d+|\d+\.\d*)`)

	// reNumericList matches whitespace separated zeroes, optionally followed by a unit.
	reNumericList = regexp.MustCompile(`(?i)\s*(?:0[%a-z]*\s*)+`)

	// reBinaryOperator matches "0+0", "0-0", "0/0" and "0*0".
	reBinaryOperator = regexp.MustCompile(`0[-+/*]0`)

	// reBraces matches "(0)", "calc(0)" and "-vendor-prefix-calc(0)".
	reBraces = regexp.MustCompile(`(?i)((\B-\w[a-z-]*-|\b)?calc)?\(0\)`)
)

// pass is a single rewrite step of a normalization round.
type pass struct {
	name string
	re   *regexp.Regexp
}

// passes run in this order on every round.
var passes = [...]pass{
	{name: "numeric-literal", re: reNumeric},
	{name: "zero-list", re: reNumericList},
	{name: "binary-operator", re: reBinaryOperator},
	{name: "wrapped-zero", re: reBraces},
}

// PassNames returns the names of the rewrite steps in application order.
func PassNames() []string {
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.name
	}
	return names
}
