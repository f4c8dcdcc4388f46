package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup from user supplied free text. Entities
// escaped by the policy are decoded again since the result is stored as
// plain text, never rendered as HTML.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
