package nolint

import (
	"go/token"
	"testing"

	"github.com/gnolang/cslint/internal/stylesheet"
)

func TestParseNolintRules(t *testing.T) {
	t.Parallel()
	input := "rule1,rule2,rule3"
	expected := []string{"rule1", "rule2", "rule3"}
	result := parseIgnoreRuleNames(input)
	if len(result) != len(expected) {
		t.Errorf("Expected %d rules, got %d", len(expected), len(result))
	}
	for _, rule := range expected {
		if _, exists := result[rule]; !exists {
			t.Errorf("Expected rule %s not found", rule)
		}
	}
}

func TestParseNolintComments(t *testing.T) {
	t.Parallel()
	src := `/* nolint:rule1,rule2 */
a {
  margin: 0;
}
`

	sheet, err := stylesheet.Parse("test.css", []byte(src))
	if err != nil {
		t.Fatalf("Failed to parse sheet: %v", err)
	}

	manager := ParseComments(sheet)
	if manager == nil {
		t.Fatal("Expected Manager, got nil")
	}

	if !manager.IsNolint(positionAtLine(3), "rule1") {
		t.Errorf("Expected position to be nolinted for rule1")
	}
	if manager.IsNolint(positionAtLine(3), "rule3") {
		t.Errorf("Expected position not to be nolinted for rule3")
	}
}

func TestIsNolint(t *testing.T) {
	t.Parallel()
	source := `a {
  /* nolint */
  margin: 0;
  padding: 0;
  top: 0; /* nolint:rule1 */
  /* nolint:rule2 */
  z-index: 1;
  /* nolint */
}
`

	sheet, err := stylesheet.Parse("test.css", []byte(source))
	if err != nil {
		t.Fatalf("Failed to parse source: %v", err)
	}

	manager := ParseComments(sheet)

	tests := []struct {
		rule     string
		line     int
		expected bool
	}{
		{"anyrule", 3, true},  // Line 3 is covered by nolint without rules
		{"anyrule", 4, false}, // Line 4 is not covered
		{"rule1", 5, true},    // Line 5 is covered by nolint:rule1
		{"rule2", 5, false},   // Line 5 is not covered for rule2
		{"rule2", 7, true},    // Line 7 is covered by nolint:rule2
		{"rule3", 7, false},   // Line 7 is not covered for rule3
		{"anyrule", 8, true},  // Trailing comment covers only its own line
		{"anyrule", 9, false},
	}

	for _, test := range tests {
		pos := positionAtLine(test.line)
		result := manager.IsNolint(pos, test.rule)
		if result != test.expected {
			t.Errorf("IsNolint at line %d for rule '%s': expected %v, got %v", test.line, test.rule, test.expected, result)
		}
	}
}

func TestInvalidNolintComments(t *testing.T) {
	t.Parallel()
	source := `a {
  /* nolint: */
  margin: 0;
  /* nolintrule */
  padding: 0;
  /* just a comment */
  top: 0;
}
`

	sheet, err := stylesheet.Parse("test.css", []byte(source))
	if err != nil {
		t.Fatalf("Failed to parse source: %v", err)
	}

	manager := ParseComments(sheet)
	for _, line := range []int{3, 5, 7} {
		if manager.IsNolint(positionAtLine(line), "anyrule") {
			t.Errorf("Expected line %d not to be nolinted", line)
		}
	}
}

func TestIsNolintOtherFile(t *testing.T) {
	t.Parallel()
	sheet, err := stylesheet.Parse("test.css", []byte("/* nolint */\na { top: 0 }"))
	if err != nil {
		t.Fatalf("Failed to parse source: %v", err)
	}

	manager := ParseComments(sheet)
	if !manager.IsNolint(positionAtLine(2), "anyrule") {
		t.Errorf("Expected file-level nolint to cover line 2")
	}
	pos := token.Position{Filename: "other.css", Line: 2}
	if manager.IsNolint(pos, "anyrule") {
		t.Errorf("Expected other file not to be nolinted")
	}
}

func positionAtLine(line int) token.Position {
	return token.Position{
		Filename: "test.css",
		Line:     line,
		Column:   1,
	}
}
