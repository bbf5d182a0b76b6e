package numeric

import "strings"

// FindReportOffset returns the byte offset of the first numeric literal that
// follows the property/value separator in declaration.
//
// The search for ':' starts at searchStartHint, normally the length of the
// property name, so that a colon inside the name is not mistaken for the
// separator. It returns 0 when there is no separator or no number after it.
func FindReportOffset(declaration string, searchStartHint int) int {
	if searchStartHint < 0 {
		searchStartHint = 0
	}
	if searchStartHint > len(declaration) {
		return 0
	}

	colon := strings.IndexByte(declaration[searchStartHint:], ':')
	if colon == -1 {
		return 0
	}
	colon += searchStartHint

	loc := reNumeric.FindStringIndex(declaration[colon:])
	if loc == nil {
		return 0
	}
	return colon + loc[0]
}
