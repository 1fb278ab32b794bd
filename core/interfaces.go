// Package core defines the pipeline interfaces for dictexport.
// Each stage of the export is a small, testable interface.
package core

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// Record is a single dictionary entry as found on a card.
type Record struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// LoadedPage is the listing page the export starts from.
// Its records are read in place; it is never fetched again by the pipeline.
type LoadedPage struct {
	URL *url.URL
	Doc *goquery.Document
}

// PageSource provides the already-loaded starting page.
type PageSource interface {
	Load(ctx context.Context) (*LoadedPage, error)
}

// PageFetcher retrieves the raw markup of a numbered listing page.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) (string, error)
}

// Extractor pulls dictionary records out of a parsed page, in document order.
type Extractor interface {
	Extract(doc *goquery.Document) []Record
}

// Renderer converts records into a final output format.
type Renderer interface {
	Render(records []Record) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".json", ".txt").
	Extension() string
}

// FileSink stores a finished export under the given file name.
type FileSink interface {
	Save(name string, data []byte) (string, error)
}
