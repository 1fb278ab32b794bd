// Package parse turns raw listing markup into a queryable document.
package parse

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse parses markup permissively. Malformed input yields whatever the
// HTML5 parser recovers, possibly an empty document, never an error.
func Parse(markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Empty()
	}
	return doc
}

// Empty returns a document with no content.
func Empty() *goquery.Document {
	return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
}
