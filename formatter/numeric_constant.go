package formatter

import (
	"fmt"

	"github.com/gnolang/cslint/internal/numeric"
)

// NumericConstantFormatter extends the general layout with the number of
// rewrite rounds the offending value needed to collapse to zero.
type NumericConstantFormatter struct{}

func (f *NumericConstantFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn}}
{{- snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding}}
{{- underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}
{{- reduction .Padding .Value}}
{{- note .Note}}
`
}

func reduction(padding string, value string) string {
	if value == "" {
		return ""
	}

	_, rounds := numeric.Normalize(value)
	var info string
	switch rounds {
	case 0:
		info = "value is already a bare zero"
	case 1:
		info = "value collapses to 0 in 1 rewrite round"
	default:
		info = fmt.Sprintf("value collapses to 0 in %d rewrite rounds", rounds)
	}

	return lineStyle.Sprintf("%s= ", padding) + messageStyle.Sprintf("%s\n", info)
}
