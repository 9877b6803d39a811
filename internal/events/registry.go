// Package events holds the fixed catalogue of DOM event-handler attribute
// names and the matcher used to find them in source text. The catalogue is
// process-wide, immutable, and safe for concurrent readers.
package events

import (
	"regexp"
	"slices"
	"strings"
	"sync"
)

// names is the full registry in its fixed order. It is never mutated after
// process start.
var names = []string{
	"onabort",
	"onafterprint",
	"onauxclick",
	"onbeforeinput",
	"onbeforeprint",
	"onbeforeunload",
	"onblur",
	"oncanplay",
	"oncanplaythrough",
	"onchange",
	"onclick",
	"oncontextmenu",
	"oncopy",
	"oncuechange",
	"oncut",
	"ondblclick",
	"ondrag",
	"ondragend",
	"ondragenter",
	"ondragleave",
	"ondragover",
	"ondragstart",
	"ondrop",
	"ondurationchange",
	"onemptied",
	"onended",
	"onerror",
	"onfocus",
	"onfocusin",
	"onfocusout",
	"onhashchange",
	"oninput",
	"oninvalid",
	"onkeydown",
	"onkeypress",
	"onkeyup",
	"onload",
	"onloadeddata",
	"onloadedmetadata",
	"onloadstart",
	"onmessage",
	"onmousedown",
	"onmouseenter",
	"onmouseleave",
	"onmousemove",
	"onmouseout",
	"onmouseover",
	"onmouseup",
	"onmousewheel",
	"onoffline",
	"ononline",
	"onpagehide",
	"onpageshow",
	"onpaste",
	"onpause",
	"onplay",
	"onplaying",
	"onpointercancel",
	"onpointerdown",
	"onpointerenter",
	"onpointerleave",
	"onpointermove",
	"onpointerout",
	"onpointerover",
	"onpointerup",
	"onpopstate",
	"onprogress",
	"onratechange",
	"onreset",
	"onresize",
	"onscroll",
	"onsearch",
	"onseeked",
	"onseeking",
	"onselect",
	"onstalled",
	"onstorage",
	"onsubmit",
	"onsuspend",
	"ontimeupdate",
	"ontoggle",
	"ontouchcancel",
	"ontouchend",
	"ontouchmove",
	"ontouchstart",
	"onunload",
	"onvolumechange",
	"onwaiting",
	"onwheel",
}

var (
	matcherOnce sync.Once
	matcher     *regexp.Regexp
)

// Names returns the registry in its fixed order. The caller receives a
// copy; the catalogue itself is read-only.
func Names() []string {
	return slices.Clone(names)
}

// Matcher returns the compiled case-insensitive alternation of every
// registry name. It is built on first use and immutable afterwards, so
// concurrent scans may share it freely.
func Matcher() *regexp.Regexp {
	matcherOnce.Do(func() {
		alternation := make([]string, len(names))
		for i, n := range names {
			alternation[i] = regexp.QuoteMeta(n)
		}
		matcher = regexp.MustCompile(`(?im)` + strings.Join(alternation, "|"))
	})
	return matcher
}

// FindAll returns every registry name occurring anywhere in text as a
// contiguous case-insensitive substring, deduplicated and in registry
// order. Matching is deliberately not anchored to token boundaries: a name
// embedded inside a longer identifier still matches.
func FindAll(text string) []string {
	if text == "" || !Matcher().MatchString(text) {
		return nil
	}
	lower := strings.ToLower(text)
	var found []string
	for _, n := range names {
		if strings.Contains(lower, n) {
			found = append(found, n)
		}
	}
	return found
}
