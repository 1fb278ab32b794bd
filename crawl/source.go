package crawl

import (
	"context"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/dictexport/core"
	"github.com/gaurav-prasanna/dictexport/core/parse"
)

// URLFetcher retrieves an arbitrary URL with the fetcher's retry policy.
type URLFetcher interface {
	FetchURL(ctx context.Context, rawURL string, page int) (string, error)
}

// HTTPSource loads the starting page over the network.
type HTTPSource struct {
	URL     string
	Fetcher URLFetcher
}

// Load fetches and parses the start URL.
func (s *HTTPSource) Load(ctx context.Context) (*core.LoadedPage, error) {
	u, err := ParseListingURL(s.URL)
	if err != nil {
		return nil, err
	}
	markup, err := s.Fetcher.FetchURL(ctx, u.String(), CurrentPage(u))
	if err != nil {
		return nil, fmt.Errorf("loading starting page: %w", err)
	}
	return &core.LoadedPage{URL: u, Doc: parse.Parse(markup)}, nil
}

// FileSource reads a page saved from the browser. URL still supplies the
// query state (current page) and the listing base.
type FileSource struct {
	URL  string
	Path string
}

// Load reads and parses the saved page.
func (s *FileSource) Load(_ context.Context) (*core.LoadedPage, error) {
	u, err := ParseListingURL(s.URL)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading saved page: %w", err)
	}
	return &core.LoadedPage{URL: u, Doc: parse.Parse(string(data))}, nil
}
