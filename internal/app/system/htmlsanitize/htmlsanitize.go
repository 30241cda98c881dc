// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize cleans text that arrives from the upstream API before
// it is shown to users.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// PlainText strips every tag from s and decodes entities, leaving text fit
// for a flash message. Templates escape the result again on output.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Message returns PlainText(s), or fallback when nothing readable remains.
func Message(s, fallback string) string {
	if clean := PlainText(s); clean != "" {
		return clean
	}
	return fallback
}
