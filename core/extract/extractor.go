// Package extract implements the Extractor interface.
// A dictionary card is any element with the puzzle-card class carrying a
// data-word attribute; its data-translation attribute is read alongside.
package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/dictexport/core"
)

const (
	wordAttr        = "data-word"
	translationAttr = "data-translation"
)

var cardSelector = cascadia.MustCompile(".puzzle-card[data-word]")

// CardExtractor reads dictionary cards from a listing page.
type CardExtractor struct{}

// New creates a CardExtractor.
func New() *CardExtractor {
	return &CardExtractor{}
}

// Extract returns the records of every card in document order.
// An empty word still qualifies; only its presence is required.
// A missing translation is exported as an empty string.
func (e *CardExtractor) Extract(doc *goquery.Document) []core.Record {
	cards := doc.FindMatcher(cardSelector)
	records := make([]core.Record, 0, cards.Length())

	cards.Each(func(_ int, s *goquery.Selection) {
		word, ok := s.Attr(wordAttr)
		if !ok {
			return
		}
		records = append(records, core.Record{
			Word:        word,
			Translation: s.AttrOr(translationAttr, ""),
		})
	})
	return records
}
