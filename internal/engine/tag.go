package engine

import (
	"regexp"

	"github.com/markguard/markguard/internal/events"
	"github.com/markguard/markguard/internal/template"
)

// javascriptHref matches href values carrying a script-executing scheme.
// The match is case-sensitive and not anchored, mirroring the loose
// substring semantics the rule has always had.
var javascriptHref = regexp.MustCompile(`javascript.*`)

// TagScanner checks opening tags for inline event-handler attributes and
// anchors for script-scheme hrefs. Each scan is a pure function of its
// input; no state survives between tags.
type TagScanner struct {
	CustomMessage string
}

// Scan walks tags in order and returns all offenses they produce.
func (s TagScanner) Scan(tags []template.Tag) []Offense {
	var offenses []Offense
	for _, t := range tags {
		offenses = append(offenses, s.scanTag(t)...)
	}
	return offenses
}

// scanTag checks a single tag. Closing tags never offend, regardless of
// any attributes written on them.
func (s TagScanner) scanTag(t template.Tag) []Offense {
	if t.Closing {
		return nil
	}

	var offenses []Offense
	for _, name := range events.Names() {
		// Attribute keys are looked up literally, exactly as written in
		// source; the lookup is not case-folded.
		attr, ok := t.Attributes[name]
		if !ok || attr.Value == "" {
			continue
		}
		offenses = append(offenses, Report(attr.ValueSpan, KindEventAttribute, name, s.CustomMessage))
	}

	// The href check applies to lowercase "a" tags only.
	if t.Name == "a" {
		if href, ok := t.Attributes["href"]; ok && href.Value != "" && javascriptHref.MatchString(href.Value) {
			offenses = append(offenses, Report(href.ValueSpan, KindJavascriptHref, href.Value, s.CustomMessage))
		}
	}

	return offenses
}
