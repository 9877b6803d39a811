package engine

import (
	"github.com/markguard/markguard/internal/template"
)

// Rule is the host-facing adapter over the scanners. A host hands it a
// parsed document and gets back the ordered offense list; it has no
// dependency on how the host discovers or enables rules.
type Rule struct {
	// CustomMessage, when set, is prefixed verbatim to every message
	// produced by this rule.
	CustomMessage string
}

// Name returns the rule's identifier.
func (r Rule) Name() string { return "csp_approved_html_attributes" }

// Run scans the document's node stream in source order, so tag and code
// offenses interleave exactly as the document dictates. It always returns
// a (possibly empty) offense list for any well-formed document.
func (r Rule) Run(doc *template.Document) []Offense {
	if doc == nil {
		return nil
	}

	tags := TagScanner{CustomMessage: r.CustomMessage}
	code := CodeScanner{CustomMessage: r.CustomMessage}

	var offenses []Offense
	for _, node := range doc.Nodes {
		switch n := node.(type) {
		case template.Tag:
			offenses = append(offenses, tags.scanTag(n)...)
		case template.CodeNode:
			if o, ok := code.scanNode(n); ok {
				offenses = append(offenses, o)
			}
		}
	}
	return offenses
}

// Autocorrect is a guaranteed no-op: this rule only reports and never
// rewrites the document. It exists so hosts with fix pipelines can call
// it unconditionally.
func (r Rule) Autocorrect(doc *template.Document, o Offense) {}
