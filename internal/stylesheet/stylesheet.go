// Package stylesheet splits CSS-like source text into declarations.
//
// It does not build a syntax tree and does not look inside values: a
// declaration is any "property: value" statement terminated by ';', '}'
// or the end of input. Selectors, at-rule preludes and nested blocks are
// only tracked far enough to know where statements begin and end.
package stylesheet

import (
	"errors"
	"fmt"
	"go/token"
	"path/filepath"
	"strings"
)

var (
	ErrUnterminatedComment = errors.New("unterminated comment")
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrUnclosedBlock       = errors.New("unclosed block")
	ErrUnexpectedBrace     = errors.New("unexpected '}'")
)

// Decl is a single declaration found in a stylesheet.
type Decl struct {
	Prop      string
	Value     string
	Important bool
	// Text is the declaration as written, from the first byte of the
	// property through the end of the value.
	Text   string
	Offset int
}

// Comment is a block or line comment. Text excludes the delimiters.
type Comment struct {
	Text   string
	Offset int
	End    int
}

// Sheet is the result of scanning one source.
type Sheet struct {
	Filename string
	Decls    []Decl
	Comments []Comment
	// FirstStatement is the offset of the first byte that is neither
	// whitespace nor part of a comment, or -1 for an empty sheet.
	FirstStatement int

	file *token.File
}

// Position converts a byte offset into a line and column.
func (s *Sheet) Position(offset int) token.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > s.file.Size() {
		offset = s.file.Size()
	}
	return s.file.Position(s.file.Pos(offset))
}

// Extensions lists the file extensions treated as stylesheets.
var Extensions = []string{".css", ".scss", ".less", ".pcss"}

// AllowsLineComments reports whether "//" starts a comment in files with
// the given name.
func AllowsLineComments(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".scss", ".less":
		return true
	}
	return false
}

// Parse scans src and returns its declarations and comments.
func Parse(filename string, src []byte) (*Sheet, error) {
	fset := token.NewFileSet()
	file := fset.AddFile(filename, -1, len(src))
	file.SetLinesForContent(src)

	p := &parser{
		src:          string(src),
		lineComments: AllowsLineComments(filename),
		sheet: &Sheet{
			Filename:       filename,
			FirstStatement: -1,
			file:           file,
		},
		start: -1,
	}
	if err := p.run(); err != nil {
		pos := p.sheet.Position(p.errOffset)
		return nil, fmt.Errorf("%s:%d:%d: %w", filename, pos.Line, pos.Column, err)
	}
	return p.sheet, nil
}
