package ingest

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespace = regexp.MustCompile(`\s+`)

// CleanText strips HTML markup from a feed item body and collapses
// whitespace, so stored results carry plain text only. Input that does not
// parse as HTML is returned trimmed as-is.
func CleanText(html string) string {
	trimmed := strings.TrimSpace(html)
	if trimmed == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return whitespace.ReplaceAllString(trimmed, " ")
	}

	doc.Find("script, style, noscript").Remove()
	text := doc.Text()

	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}
