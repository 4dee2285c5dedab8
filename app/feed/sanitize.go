package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// MaxDescriptionLength bounds descriptions derived from full content.
const MaxDescriptionLength = 500

// StripHTML reduces an HTML fragment to its collapsed text content.
func StripHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseWhitespace(fragment)
	}
	return collapseWhitespace(doc.Text())
}

// DescriptionFromContent derives a plain-text description from a full
// content body, truncated to MaxDescriptionLength.
func DescriptionFromContent(content string) string {
	article, err := readability.FromReader(strings.NewReader(content), nil)
	if err != nil || article.TextContent == "" {
		return Truncate(StripHTML(content), MaxDescriptionLength)
	}
	return Truncate(collapseWhitespace(article.TextContent), MaxDescriptionLength)
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
