// Package htmlsanitize cleans user-supplied text before it is stored.
//
// Rich-text fields (survey and standard descriptions) keep a safe subset of
// HTML. Short free-text fields (names, labels, leader jabatan) have every
// tag removed.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicy  = newRichPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "mark")
	p.AllowAttrs("class").OnElements("table", "tr", "td", "th")
	return p
}

// Sanitize returns s with unsafe markup (scripts, event handlers,
// javascript: URLs, iframes, forms) removed.
func Sanitize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return strings.TrimSpace(richPolicy.Sanitize(s))
}

// PlainText strips every tag from s, keeping only the text content.
// Entities are decoded so "A &amp; B" is stored as "A & B".
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(s)))
}

// IsPlainText reports whether s contains no tag-like markup.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}
