package nolint

import (
	"fmt"
	"go/token"
	"math"
	"strings"

	"github.com/gnolang/cslint/internal/stylesheet"
)

const nolintPrefix = "nolint"

// Manager manages nolint scopes and checks if a position is nolinted.
type Manager struct {
	// scopes maps filename to a slice of nolint scopes.
	scopes map[string][]nolintScope
}

// nolintScope represents a range of lines where nolint applies.
type nolintScope struct {
	rules map[string]struct{}
	start token.Position
	end   token.Position
}

// ParseComments parses nolint comments in the given sheet and returns a Manager.
func ParseComments(sheet *stylesheet.Sheet) *Manager {
	manager := Manager{
		scopes: make(map[string][]nolintScope, len(sheet.Comments)),
	}

	for _, comment := range sheet.Comments {
		ns, err := parseComment(comment, sheet)
		if err != nil {
			// ignore invalid nolint comments
			continue
		}
		manager.scopes[sheet.Filename] = append(manager.scopes[sheet.Filename], ns)
	}
	return &manager
}

// parseComment parses a single nolint comment and determines its scope.
func parseComment(comment stylesheet.Comment, sheet *stylesheet.Sheet) (nolintScope, error) {
	var ns nolintScope
	text := comment.Text

	if !strings.HasPrefix(text, nolintPrefix) {
		return ns, fmt.Errorf("invalid nolint comment")
	}

	rest := strings.TrimRightFunc(text[len(nolintPrefix):], isSpace)

	// A nolint comment can either have a list of rules after a colon (:)
	// or if no rules are specified, it applies to all rules
	if len(rest) > 0 && rest[0] != ':' {
		return ns, fmt.Errorf("invalid nolint comment format")
	}

	if len(rest) > 0 && rest[0] == ':' {
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		if rest == "" {
			return ns, fmt.Errorf("invalid nolint comment: no rules specified after colon")
		}
	}
	ns.rules = parseIgnoreRuleNames(rest)
	pos := sheet.Position(comment.Offset)

	// If the comment appears before the first statement, apply it to the entire file
	if sheet.FirstStatement == -1 || comment.Offset < sheet.FirstStatement {
		ns.start = sheet.Position(0)
		ns.end = sheet.Position(math.MaxInt)
		return ns, nil
	}

	// Inline comments apply to the declaration they follow
	if isInlineComment(comment, pos, sheet) {
		ns.start = pos
		ns.end = pos
		return ns, nil
	}

	// For standalone comments, apply from the comment line through
	// the next declaration
	if decl, ok := findDeclAfter(sheet, comment.End); ok {
		ns.start = pos
		ns.end = sheet.Position(decl.Offset + len(decl.Text))
		return ns, nil
	}

	// default behavior:
	// apply only to the comment line
	ns.start = pos
	ns.end = pos
	return ns, nil
}

// parseIgnoreRuleNames parses the rule list from the nolint comment.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	rules := strings.Split(text, ",")
	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// isInlineComment determines if a comment follows a declaration on the same line.
func isInlineComment(comment stylesheet.Comment, pos token.Position, sheet *stylesheet.Sheet) bool {
	for _, decl := range sheet.Decls {
		if decl.Offset >= comment.Offset {
			break
		}
		if sheet.Position(decl.Offset+len(decl.Text)).Line == pos.Line {
			return true
		}
	}
	return false
}

// findDeclAfter finds the first declaration starting after offset.
func findDeclAfter(sheet *stylesheet.Sheet, offset int) (stylesheet.Decl, bool) {
	for _, decl := range sheet.Decls {
		if decl.Offset >= offset {
			return decl, true
		}
	}
	return stylesheet.Decl{}, false
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// IsNolint checks if a given position and rule are nolinted.
func (m *Manager) IsNolint(pos token.Position, ruleName string) bool {
	scopes, exists := m.scopes[pos.Filename]
	if !exists {
		return false
	}
	for _, ns := range scopes {
		if pos.Line < ns.start.Line || pos.Line > ns.end.Line {
			continue
		}
		// If the rules list is empty, nolint applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
