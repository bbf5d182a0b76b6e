package numeric

// Round records the intermediate results of one normalization round.
type Round struct {
	Input string
	// Steps holds the string produced by each pass, in PassNames order.
	Steps [len(passes)]string
}

// Output returns the string produced by the last pass of the round.
func (r Round) Output() string {
	return r.Steps[len(r.Steps)-1]
}

// IsNumericConstant reports whether value reduces to a single "0" once every
// plain number, unit-suffixed zero, zero-only arithmetic and zero-only calc()
// wrapping has been collapsed.
func IsNumericConstant(value string) bool {
	result, _ := Normalize(value)
	return result == zero
}

// Normalize applies rewrite rounds until the string stops changing or
// collapses to "0". It returns the final string and the number of rounds
// that changed their input.
//
// Every pass replaces a match with "0", which is never longer than the
// match, and after the first round no digit other than 0 is left, so each
// further changing round strictly shortens the string.
func Normalize(value string) (string, int) {
	rounds := 0
	for {
		next := rewrite(value)
		if next != value {
			rounds++
		}
		if next == zero || next == value {
			return next, rounds
		}
		value = next
	}
}

// Trace is like Normalize but keeps every round, including the final one
// that left the string unchanged.
func Trace(value string) []Round {
	var rounds []Round
	for {
		r := Round{Input: value}
		current := value
		for i, p := range passes {
			current = p.re.ReplaceAllLiteralString(current, zero)
			r.Steps[i] = current
		}
		rounds = append(rounds, r)
		if current == zero || current == value {
			return rounds
		}
		value = current
	}
}

func rewrite(value string) string {
	for _, p := range passes {
		value = p.re.ReplaceAllLiteralString(value, zero)
	}
	return value
}
