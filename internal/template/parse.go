package template

import (
	"strings"
	"unicode"
)

// Parse scans src and returns the document node stream. Parsing is total:
// stretches that do not form a recognizable tag or code expression become
// text nodes, and an unterminated construct consumes the remaining source
// rather than failing. Parse never returns an error because a linter must
// survive malformed input.
func Parse(src string) *Document {
	p := &parser{src: []rune(src), line: 1, col: 1}
	doc := &Document{}
	for p.i < len(p.src) {
		if n := p.next(); n != nil {
			doc.Nodes = append(doc.Nodes, n)
		}
	}
	return doc
}

type parser struct {
	src  []rune
	i    int
	line int
	col  int
}

// point is a cursor snapshot used to build spans.
type point struct {
	line, col, off int
}

func (p *parser) next() Node {
	switch {
	case p.lookingAt("<%"):
		return p.code()
	case p.current() == '<' && p.peek() == '!':
		return p.markupDeclaration()
	case p.current() == '<' && (p.peek() == '/' || isNameStart(p.peek())):
		return p.tag()
	default:
		return p.text()
	}
}

// code scans one <% ... %> expression. The indicator is the character
// directly after the opening delimiter; a trim marker before the closing
// delimiter (-%>) is not part of the expression text.
func (p *parser) code() Node {
	start := p.point()
	p.advance() // <
	p.advance() // %

	var indicator byte
	switch p.current() {
	case '=', '-', '#':
		indicator = byte(p.current())
		p.advance()
	}

	textStart := p.i
	for p.i < len(p.src) && !p.lookingAt("%>") {
		p.advance()
	}
	text := string(p.src[textStart:p.i])
	if p.lookingAt("%>") {
		p.advance()
		p.advance()
	}
	text = strings.TrimSuffix(text, "-")

	return CodeNode{Indicator: indicator, Text: text, Span: p.spanFrom(start)}
}

// markupDeclaration consumes comments, doctypes, and CDATA sections as
// opaque text. Comments may legitimately contain '>' so they scan for the
// full comment terminator.
func (p *parser) markupDeclaration() Node {
	start := p.point()
	if p.lookingAt("<!--") {
		for p.i < len(p.src) && !p.lookingAt("-->") {
			p.advance()
		}
		for j := 0; j < len("-->"); j++ {
			p.advance()
		}
	} else {
		for p.i < len(p.src) && p.current() != '>' {
			p.advance()
		}
		p.advance()
	}
	return Text{Value: string(p.src[start.off:p.i]), Span: p.spanFrom(start)}
}

func (p *parser) tag() Node {
	start := p.point()
	p.advance() // <

	closing := false
	if p.current() == '/' {
		closing = true
		p.advance()
	}

	nameStart := p.i
	for isNamePart(p.current()) {
		p.advance()
	}
	name := string(p.src[nameStart:p.i])

	tag := Tag{Name: name, Closing: closing, Attributes: map[string]Attribute{}}

	for p.i < len(p.src) {
		p.skipWhitespace()
		switch {
		case p.current() == '>':
			p.advance()
			tag.Span = p.spanFrom(start)
			return tag
		case p.current() == '/' && p.peek() == '>':
			tag.SelfClosing = true
			p.advance()
			p.advance()
			tag.Span = p.spanFrom(start)
			return tag
		case isAttrNameRune(p.current()):
			attr := p.attribute()
			// Duplicate attribute names keep the first occurrence.
			if _, seen := tag.Attributes[attr.Name]; !seen {
				tag.Attributes[attr.Name] = attr
			}
		default:
			// Stray rune inside the tag; skip it to keep making progress.
			p.advance()
		}
	}

	// Unterminated tag: keep what was parsed so far.
	tag.Span = p.spanFrom(start)
	return tag
}

func (p *parser) attribute() Attribute {
	nameStart := p.point()
	for isAttrNameRune(p.current()) {
		p.advance()
	}
	attr := Attribute{
		Name:     string(p.src[nameStart.off:p.i]),
		NameSpan: p.spanFrom(nameStart),
	}

	p.skipWhitespace()
	if p.current() != '=' {
		return attr
	}
	p.advance()
	p.skipWhitespace()

	if q := p.current(); q == '"' || q == '\'' {
		p.advance()
		valStart := p.point()
		for p.i < len(p.src) && p.current() != q {
			p.advance()
		}
		attr.Value = string(p.src[valStart.off:p.i])
		attr.ValueSpan = p.spanFrom(valStart)
		p.advance() // closing quote
		return attr
	}

	valStart := p.point()
	for p.i < len(p.src) && !unicode.IsSpace(p.current()) && p.current() != '>' {
		p.advance()
	}
	attr.Value = string(p.src[valStart.off:p.i])
	attr.ValueSpan = p.spanFrom(valStart)
	return attr
}

func (p *parser) text() Node {
	start := p.point()
	for p.i < len(p.src) {
		if p.lookingAt("<%") {
			break
		}
		if p.current() == '<' && (p.peek() == '/' || p.peek() == '!' || isNameStart(p.peek())) {
			break
		}
		p.advance()
	}
	if p.i == start.off {
		// Lone trailing '<' or similar; consume it so the loop terminates.
		p.advance()
	}
	return Text{Value: string(p.src[start.off:p.i]), Span: p.spanFrom(start)}
}

func (p *parser) current() rune {
	if p.i < len(p.src) {
		return p.src[p.i]
	}
	return 0
}

func (p *parser) peek() rune {
	if p.i+1 < len(p.src) {
		return p.src[p.i+1]
	}
	return 0
}

func (p *parser) advance() {
	if p.i >= len(p.src) {
		return
	}
	if p.src[p.i] == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	p.i++
}

func (p *parser) lookingAt(s string) bool {
	runes := []rune(s)
	if p.i+len(runes) > len(p.src) {
		return false
	}
	for j, r := range runes {
		if p.src[p.i+j] != r {
			return false
		}
	}
	return true
}

func (p *parser) skipWhitespace() {
	for unicode.IsSpace(p.current()) {
		p.advance()
	}
}

func (p *parser) point() point {
	return point{line: p.line, col: p.col, off: p.i}
}

func (p *parser) spanFrom(from point) Span {
	return Span{Line: from.line, Column: from.col, Start: from.off, End: p.i}
}

func isNameStart(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

func isNamePart(r rune) bool {
	return isNameStart(r) || r >= '0' && r <= '9' || r == '-' || r == ':'
}

func isAttrNameRune(r rune) bool {
	return r != 0 && r != '=' && r != '>' && r != '/' && r != '"' && r != '\'' && !unicode.IsSpace(r)
}
