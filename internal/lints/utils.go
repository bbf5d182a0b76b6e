package lints

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var reVendorPrefix = regexp.MustCompile(`^-\w+-`)

// NormalizeProperty strips a vendor prefix such as "-webkit-" and lower-cases
// the property name.
func NormalizeProperty(prop string) string {
	return strings.ToLower(reVendorPrefix.ReplaceAllLiteralString(prop, ""))
}

// CoerceNumber reads value the way a plain numeric conversion of a string
// does: surrounding whitespace is ignored, an empty string is 0, decimal and
// exponent forms, 0x/0o/0b integers and signed Infinity are accepted.
// Anything else is not a number.
func CoerceNumber(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, true
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			if strings.Contains(s, "_") {
				return 0, false
			}
			n, err := strconv.ParseUint(s, 0, 64)
			if err != nil {
				return 0, false
			}
			return float64(n), true
		}
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch < '0' || ch > '9') && ch != '.' && ch != '+' && ch != '-' && ch != 'e' && ch != 'E' {
			return 0, false
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}
