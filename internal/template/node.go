// Package template provides the parsed document model for HTML templates
// with embedded code expressions, plus the parser that produces it.
package template

import "fmt"

// Span identifies a contiguous region of source text. Start and End are
// rune offsets into the source (half-open); Line and Column are the
// 1-based position of the first rune.
type Span struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Start  int `json:"start"`
	End    int `json:"end"`
}

// String renders the span's position as "line:column".
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Node is one parsed element of a document: a Tag, a CodeNode, or a Text
// run. Nodes appear in Document.Nodes in source order.
type Node interface {
	Pos() Span
}

// Attribute is a single tag attribute. Name and Value keep the exact case
// and spelling from the source. ValueSpan covers the value content only,
// excluding any surrounding quotes.
type Attribute struct {
	Name      string
	Value     string
	NameSpan  Span
	ValueSpan Span
}

// Tag is one markup tag. Closing marks end tags (</div>); attributes are
// keyed literally by name as written, first occurrence winning.
type Tag struct {
	Name        string
	Closing     bool
	SelfClosing bool
	Attributes  map[string]Attribute
	Span        Span
}

// Pos returns the span covering the whole tag.
func (t Tag) Pos() Span { return t.Span }

// CodeNode is one embedded code expression (<% ... %>). Indicator is the
// character following the opening delimiter ('=' for output expressions,
// '-' for trimmed blocks, '#' for comments) or zero when absent. Text is
// the raw inner source, which may be empty for malformed expressions.
type CodeNode struct {
	Indicator byte
	Text      string
	Span      Span
}

// Pos returns the span covering the whole expression, delimiters included.
func (c CodeNode) Pos() Span { return c.Span }

// Text is a run of plain markup text between tags and code expressions.
type Text struct {
	Value string
	Span  Span
}

// Pos returns the span covering the text run.
func (t Text) Pos() Span { return t.Span }

// Document is a parsed template: the full node stream in source order.
type Document struct {
	Nodes []Node
}

// Tags returns the document's tag nodes in source order.
func (d *Document) Tags() []Tag {
	var tags []Tag
	for _, n := range d.Nodes {
		if t, ok := n.(Tag); ok {
			tags = append(tags, t)
		}
	}
	return tags
}

// CodeNodes returns the document's embedded code nodes in source order.
func (d *Document) CodeNodes() []CodeNode {
	var nodes []CodeNode
	for _, n := range d.Nodes {
		if c, ok := n.(CodeNode); ok {
			nodes = append(nodes, c)
		}
	}
	return nodes
}
