package engine

import (
	"strings"

	"github.com/markguard/markguard/internal/events"
	"github.com/markguard/markguard/internal/template"
)

// CodeScanner checks embedded code expressions for event-handler names in
// their raw source text. Both output and non-output expressions are
// scanned identically; the expression's indicator is not consulted.
type CodeScanner struct {
	CustomMessage string
}

// Scan walks code nodes in order and returns all offenses they produce.
// A node produces at most one offense, listing every matched event name.
func (s CodeScanner) Scan(nodes []template.CodeNode) []Offense {
	var offenses []Offense
	for _, n := range nodes {
		if o, ok := s.scanNode(n); ok {
			offenses = append(offenses, o)
		}
	}
	return offenses
}

// scanNode checks one expression. Nodes with absent text are skipped
// without error so a malformed expression never aborts the scan.
func (s CodeScanner) scanNode(n template.CodeNode) (Offense, bool) {
	if n.Text == "" {
		return Offense{}, false
	}
	matched := events.FindAll(n.Text)
	if len(matched) == 0 {
		return Offense{}, false
	}

	quoted := make([]string, len(matched))
	for i, name := range matched {
		quoted[i] = "'" + name + "'"
	}
	return Report(n.Span, KindHelperCode, strings.Join(quoted, ", "), s.CustomMessage), true
}
