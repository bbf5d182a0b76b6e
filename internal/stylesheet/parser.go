package stylesheet

import "strings"

type parser struct {
	src          string
	lineComments bool
	sheet        *Sheet

	pos   int
	depth int // open '{' blocks
	paren int // open '(' inside the current statement

	// start is the offset of the pending statement, or -1.
	start int
	// comments collects comment spans inside the pending statement.
	comments [][2]int

	errOffset int
}

func (p *parser) run() error {
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		switch {
		case ch == '/' && p.peek(1) == '*':
			if err := p.blockComment(); err != nil {
				return err
			}
			continue
		case ch == '/' && p.peek(1) == '/' && p.lineComments && p.paren == 0:
			p.lineComment()
			continue
		case ch == '"' || ch == '\'':
			p.begin()
			if err := p.quoted(ch); err != nil {
				return err
			}
			continue
		case ch == '(':
			p.begin()
			p.paren++
		case ch == ')':
			if p.paren > 0 {
				p.paren--
			}
		case ch == '{' && p.paren == 0:
			// the pending statement was a selector or at-rule prelude
			p.reset()
			p.depth++
		case ch == '}' && p.paren == 0:
			if p.depth == 0 {
				p.errOffset = p.pos
				return ErrUnexpectedBrace
			}
			p.finish(p.pos)
			p.depth--
		case ch == ';' && p.paren == 0:
			p.finish(p.pos)
		case !isSpace(ch):
			p.begin()
		}
		p.pos++
	}

	if p.depth > 0 {
		p.errOffset = len(p.src)
		return ErrUnclosedBlock
	}
	p.finish(len(p.src))
	return nil
}

func (p *parser) peek(n int) byte {
	if p.pos+n < len(p.src) {
		return p.src[p.pos+n]
	}
	return 0
}

// begin marks the current byte as the start of a statement if none is pending.
func (p *parser) begin() {
	if p.sheet.FirstStatement == -1 {
		p.sheet.FirstStatement = p.pos
	}
	if p.start == -1 {
		p.start = p.pos
	}
}

func (p *parser) reset() {
	p.start = -1
	p.paren = 0
	p.comments = p.comments[:0]
}

func (p *parser) blockComment() error {
	open := p.pos
	end := strings.Index(p.src[open+2:], "*/")
	if end == -1 {
		p.errOffset = open
		return ErrUnterminatedComment
	}
	closeAt := open + 2 + end
	p.addComment(open, closeAt+2, p.src[open+2:closeAt])
	p.pos = closeAt + 2
	return nil
}

func (p *parser) lineComment() {
	open := p.pos
	end := strings.IndexByte(p.src[open:], '\n')
	if end == -1 {
		end = len(p.src)
	} else {
		end += open
	}
	p.addComment(open, end, p.src[open+2:end])
	p.pos = end
}

func (p *parser) addComment(open, end int, text string) {
	p.sheet.Comments = append(p.sheet.Comments, Comment{
		Text:   strings.TrimSpace(text),
		Offset: open,
		End:    end,
	})
	if p.start != -1 {
		p.comments = append(p.comments, [2]int{open, end})
	}
}

func (p *parser) quoted(quote byte) error {
	open := p.pos
	for i := open + 1; i < len(p.src); i++ {
		switch p.src[i] {
		case '\\':
			i++
		case '\n':
			p.errOffset = open
			return ErrUnterminatedString
		case quote:
			p.pos = i + 1
			return nil
		}
	}
	p.errOffset = open
	return ErrUnterminatedString
}

// finish closes the pending statement at end and records it when it is a
// declaration.
func (p *parser) finish(end int) {
	defer p.reset()
	if p.start == -1 {
		return
	}

	raw := strings.TrimRightFunc(p.src[p.start:end], isSpaceRune)
	raw = p.trimTrailingComments(raw)
	if raw == "" || raw[0] == '@' {
		return
	}

	colon := topLevelColon(raw)
	if colon <= 0 {
		return
	}
	prop := strings.TrimSpace(raw[:colon])
	if prop == "" || strings.ContainsAny(prop, " \t\r\n\f") {
		return
	}

	value := p.stripComments(p.start+colon+1, p.start+len(raw))
	value, important := splitImportant(strings.TrimSpace(value))

	p.sheet.Decls = append(p.sheet.Decls, Decl{
		Prop:      prop,
		Value:     value,
		Important: important,
		Text:      raw,
		Offset:    p.start,
	})
}

// trimTrailingComments drops comments that follow the value.
func (p *parser) trimTrailingComments(raw string) string {
	for i := len(p.comments) - 1; i >= 0; i-- {
		c := p.comments[i]
		if c[1] != p.start+len(raw) {
			break
		}
		raw = strings.TrimRightFunc(p.src[p.start:c[0]], isSpaceRune)
	}
	return raw
}

// stripComments returns src[from:to] with every recorded comment removed.
func (p *parser) stripComments(from, to int) string {
	var b strings.Builder
	cursor := from
	for _, c := range p.comments {
		if c[1] <= from || c[0] >= to {
			continue
		}
		if c[0] > cursor {
			b.WriteString(p.src[cursor:c[0]])
		}
		cursor = c[1]
	}
	if cursor < to {
		b.WriteString(p.src[cursor:to])
	}
	return b.String()
}

// topLevelColon returns the index of the first ':' outside parentheses and
// quotes, or -1.
func topLevelColon(s string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '(':
			depth++
		case ch == ')':
			if depth > 0 {
				depth--
			}
		case ch == ':' && depth == 0:
			return i
		}
	}
	return -1
}

func splitImportant(value string) (string, bool) {
	bang := strings.LastIndexByte(value, '!')
	if bang == -1 {
		return value, false
	}
	if !strings.EqualFold(strings.TrimSpace(value[bang+1:]), "important") {
		return value, false
	}
	return strings.TrimSpace(value[:bang]), true
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

func isSpaceRune(r rune) bool {
	return r < 0x80 && isSpace(byte(r))
}
