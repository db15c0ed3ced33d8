package domain

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML approximates a plain-text rendering of an HTML body: tags
// removed, basic entities unescaped, whitespace collapsed.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}

	text := tagPattern.ReplaceAllString(html, " ")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&quot;", "\"")

	return strings.Join(strings.Fields(text), " ")
}

// Snippet derives the bounded preview text stored on a snapshot
func Snippet(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
