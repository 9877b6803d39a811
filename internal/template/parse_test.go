package template

import (
	"strings"
	"testing"
)

// TestParse_StartTagAttributes verifies tag names, attribute values, and
// value spans survive parsing with source case intact.
func TestParse_StartTagAttributes(t *testing.T) {
	t.Parallel()

	src := `<input type="text" onChange="foo()">`
	doc := Parse(src)

	tags := doc.Tags()
	if len(tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(tags))
	}

	tag := tags[0]
	if tag.Name != "input" || tag.Closing {
		t.Errorf("expected opening input tag, got %+v", tag)
	}

	attr, ok := tag.Attributes["onChange"]
	if !ok {
		t.Fatalf("expected attribute keyed literally as onChange, have %v", tag.Attributes)
	}
	if attr.Value != "foo()" {
		t.Errorf("expected value foo(), got %q", attr.Value)
	}

	wantStart := strings.Index(src, "foo()")
	if attr.ValueSpan.Start != wantStart || attr.ValueSpan.End != wantStart+len("foo()") {
		t.Errorf("expected value span over foo(), got %+v", attr.ValueSpan)
	}
	if attr.ValueSpan.Column != wantStart+1 {
		t.Errorf("expected column %d, got %d", wantStart+1, attr.ValueSpan.Column)
	}
}

// TestParse_ClosingTagWithAttributes verifies attributes written on a
// closing tag are kept on the node with the closing flag set.
func TestParse_ClosingTagWithAttributes(t *testing.T) {
	t.Parallel()

	tags := Parse(`</div onclick="x">`).Tags()
	if len(tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(tags))
	}
	if !tags[0].Closing {
		t.Error("expected closing flag")
	}
	if _, ok := tags[0].Attributes["onclick"]; !ok {
		t.Error("expected onclick attribute to be kept")
	}
}

// TestParse_SelfClosingTag verifies /> terminates a tag.
func TestParse_SelfClosingTag(t *testing.T) {
	t.Parallel()

	tags := Parse(`<br/>`).Tags()
	if len(tags) != 1 || !tags[0].SelfClosing {
		t.Fatalf("expected one self-closing tag, got %+v", tags)
	}
}

// TestParse_CodeNode verifies indicator, text, and span extraction for an
// output expression.
func TestParse_CodeNode(t *testing.T) {
	t.Parallel()

	src := `<%= link_to "x" %>`
	nodes := Parse(src).CodeNodes()
	if len(nodes) != 1 {
		t.Fatalf("expected 1 code node, got %d", len(nodes))
	}

	n := nodes[0]
	if n.Indicator != '=' {
		t.Errorf("expected indicator '=', got %q", n.Indicator)
	}
	if n.Text != ` link_to "x" ` {
		t.Errorf("expected inner text, got %q", n.Text)
	}
	if n.Span.Start != 0 || n.Span.End != len(src) {
		t.Errorf("expected span covering the whole expression, got %+v", n.Span)
	}
}

// TestParse_CodeNodeTrimMarker verifies -%> trim markers are delimiter
// syntax, not expression text.
func TestParse_CodeNodeTrimMarker(t *testing.T) {
	t.Parallel()

	nodes := Parse(`<%- foo -%>`).CodeNodes()
	if len(nodes) != 1 {
		t.Fatalf("expected 1 code node, got %d", len(nodes))
	}
	if nodes[0].Indicator != '-' {
		t.Errorf("expected indicator '-', got %q", nodes[0].Indicator)
	}
	if nodes[0].Text != " foo " {
		t.Errorf("expected text without trim marker, got %q", nodes[0].Text)
	}
}

// TestParse_CommentOpaque verifies markup inside comments does not become
// tag nodes.
func TestParse_CommentOpaque(t *testing.T) {
	t.Parallel()

	doc := Parse(`<!-- <a onclick="x"> -->`)
	if tags := doc.Tags(); len(tags) != 0 {
		t.Errorf("expected no tags inside a comment, got %d", len(tags))
	}
}

// TestParse_DuplicateAttributeFirstWins verifies duplicate attribute
// names keep the first occurrence.
func TestParse_DuplicateAttributeFirstWins(t *testing.T) {
	t.Parallel()

	tags := Parse(`<a href="/one" href="/two">`).Tags()
	if len(tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(tags))
	}
	if got := tags[0].Attributes["href"].Value; got != "/one" {
		t.Errorf("expected first href to win, got %q", got)
	}
}

// TestParse_LineColumnTracking verifies spans carry 1-based line and
// column positions across newlines.
func TestParse_LineColumnTracking(t *testing.T) {
	t.Parallel()

	src := "<p>\n  text\n  <a onclick=\"go()\">x</a>\n</p>"
	tags := Parse(src).Tags()

	var anchor *Tag
	for i := range tags {
		if tags[i].Name == "a" && !tags[i].Closing {
			anchor = &tags[i]
		}
	}
	if anchor == nil {
		t.Fatal("expected an anchor tag")
	}

	span := anchor.Attributes["onclick"].ValueSpan
	if span.Line != 3 {
		t.Errorf("expected line 3, got %d", span.Line)
	}
	wantStart := strings.Index(src, "go()")
	if span.Start != wantStart {
		t.Errorf("expected start %d, got %d", wantStart, span.Start)
	}
}

// TestParse_NodeOrder verifies the node stream preserves source order
// across text, tags, and code expressions.
func TestParse_NodeOrder(t *testing.T) {
	t.Parallel()

	doc := Parse(`<div>a</div><% b %><span>c</span>`)

	prev := -1
	for _, n := range doc.Nodes {
		if n.Pos().Start < prev {
			t.Fatalf("expected nodes in source order, got %+v", doc.Nodes)
		}
		prev = n.Pos().Start
	}

	if len(doc.Tags()) != 4 {
		t.Errorf("expected 4 tags, got %d", len(doc.Tags()))
	}
	if len(doc.CodeNodes()) != 1 {
		t.Errorf("expected 1 code node, got %d", len(doc.CodeNodes()))
	}
}

// TestParse_MalformedInputIsTotal verifies parsing never fails: nasty
// inputs still produce a document.
func TestParse_MalformedInputIsTotal(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"<",
		"<a",
		`<a onclick="unterminated`,
		"<% unterminated",
		"<%",
		"<>",
		"< a>",
		"<a ====>",
		"text < more text",
		"<!doctype html",
	}

	for _, src := range inputs {
		doc := Parse(src)
		if doc == nil {
			t.Errorf("Parse(%q) returned nil document", src)
		}
	}
}

// TestParse_UnterminatedTagKeepsAttributes verifies an unterminated tag
// still exposes what was parsed before EOF.
func TestParse_UnterminatedTagKeepsAttributes(t *testing.T) {
	t.Parallel()

	tags := Parse(`<a onclick="x"`).Tags()
	if len(tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(tags))
	}
	if got := tags[0].Attributes["onclick"].Value; got != "x" {
		t.Errorf("expected onclick value x, got %q", got)
	}
}

// TestParse_UnquotedAttributeValue verifies unquoted values terminate at
// whitespace or the tag end.
func TestParse_UnquotedAttributeValue(t *testing.T) {
	t.Parallel()

	tags := Parse(`<a href=javascript:go() onclick=x>`).Tags()
	if len(tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(tags))
	}
	if got := tags[0].Attributes["href"].Value; got != "javascript:go()" {
		t.Errorf("expected unquoted href value, got %q", got)
	}
	if got := tags[0].Attributes["onclick"].Value; got != "x" {
		t.Errorf("expected unquoted onclick value, got %q", got)
	}
}
