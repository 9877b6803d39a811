// Package engine implements the content-security lint rule for parsed
// templates: inline event-handler attributes, script-scheme anchor hrefs,
// and event-handler names surfacing from embedded helper code.
package engine

import (
	"fmt"

	"github.com/markguard/markguard/internal/template"
)

// Offense is one reported violation: where it is and how to fix it.
// Offenses never carry an automatic fix.
type Offense struct {
	Span    template.Span `json:"span"`
	Message string        `json:"message"`
}

// Kind identifies which rule a violation broke.
type Kind int

const (
	// KindEventAttribute flags an inline event-handler attribute on a tag.
	KindEventAttribute Kind = iota
	// KindJavascriptHref flags an anchor whose href uses a script scheme.
	KindJavascriptHref
	// KindHelperCode flags event-handler names inside embedded helper code.
	KindHelperCode
)

// Report builds a finalized offense. It is a pure function: the custom
// prefix (followed by a line break when non-empty) is concatenated with
// the kind's fixed template filled with detail. It never fails for any
// well-formed input.
func Report(span template.Span, kind Kind, detail, customPrefix string) Offense {
	msg := message(kind, detail)
	if customPrefix != "" {
		msg = customPrefix + "\n" + msg
	}
	return Offense{Span: span, Message: msg}
}

func message(kind Kind, detail string) string {
	switch kind {
	case KindEventAttribute:
		return fmt.Sprintf("Avoid inline `%s` event handlers. Remove the attribute and register the handler from a separate `<script>` tag instead.", detail)
	case KindJavascriptHref:
		return fmt.Sprintf("Avoid `href=\"%s\"`. Use `href=\"#\"` and move the behavior into a `<script>` tag instead.", detail)
	case KindHelperCode:
		return fmt.Sprintf("Avoid passing inline event handlers (%s) to helpers. Remove them from the helper call and use a page-level `<script>` block instead.", detail)
	default:
		return detail
	}
}
