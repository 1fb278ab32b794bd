// Package pipeline aggregates dictionary records across a paginated listing.
//
// Pages are walked strictly in ascending order from the current page to the
// last page. The current page is read from the already-loaded document;
// every later page is fetched, parsed and extracted one at a time with a
// fixed pause in between. A page that cannot be fetched aborts the run and
// nothing collected so far is returned.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/dictexport/core"
	"github.com/gaurav-prasanna/dictexport/core/parse"
	"github.com/gaurav-prasanna/dictexport/crawl"
	"github.com/gaurav-prasanna/dictexport/logging"
	"github.com/gaurav-prasanna/dictexport/metrics"
)

// DefaultPageDelay is the pause between two consecutive pages.
const DefaultPageDelay = 1500 * time.Millisecond

// Progress describes a finished page.
type Progress struct {
	Page     int
	LastPage int
	Records  int // records found on this page
	Total    int // records accumulated so far
}

// Pipeline drives the page-by-page export loop.
type Pipeline struct {
	fetcher   core.PageFetcher
	extractor core.Extractor
	logger    zerolog.Logger
	metrics   *metrics.Metrics

	pageDelay time.Duration
	sleep     core.SleepFunc

	// OnPage, when set, is called after each page's records are appended.
	OnPage func(Progress)
}

// New creates a Pipeline.
func New(fetcher core.PageFetcher, extractor core.Extractor, m *metrics.Metrics) *Pipeline {
	if m == nil {
		m = metrics.New()
	}
	return &Pipeline{
		fetcher:   fetcher,
		extractor: extractor,
		logger:    logging.NewLogger("pipeline"),
		metrics:   m,
		pageDelay: DefaultPageDelay,
		sleep:     core.Sleep,
	}
}

// Run collects the records of every page from the loaded page's number to
// the last page announced by its paginator.
func (p *Pipeline) Run(ctx context.Context, loaded *core.LoadedPage) ([]core.Record, error) {
	if loaded == nil || loaded.URL == nil || loaded.Doc == nil {
		return nil, errors.New("pipeline: no loaded page")
	}

	current := crawl.CurrentPage(loaded.URL)
	last := crawl.LastPage(loaded.Doc)
	if last < current {
		// The paginator may omit the page being viewed when it is the last one.
		last = current
	}

	p.logger.Info().
		Int("current_page", current).
		Int("last_page", last).
		Msg("Exporting pages")

	var all []core.Record
	for page := current; page <= last; page++ {
		doc := loaded.Doc
		if page != current {
			p.logger.Info().Int("page", page).Msg("Fetching page")
			markup, err := p.fetcher.FetchPage(ctx, page)
			if err != nil {
				p.logger.Error().Err(err).Int("page", page).Msg("Aborting export")
				return nil, fmt.Errorf("error fetching page %d: %w; aborting export", page, err)
			}
			doc = parse.Parse(markup)
		}

		records := p.extractor.Extract(doc)
		all = append(all, records...)

		p.metrics.PagesProcessed.Inc()
		p.metrics.RecordsExtracted.Add(float64(len(records)))
		p.logger.Info().
			Int("page", page).
			Int("records", len(records)).
			Msg("Found words on page")
		if p.OnPage != nil {
			p.OnPage(Progress{Page: page, LastPage: last, Records: len(records), Total: len(all)})
		}

		if page < last {
			if err := p.sleep(ctx, p.pageDelay); err != nil {
				return nil, fmt.Errorf("waiting before page %d: %w; aborting export", page+1, err)
			}
		}
	}

	p.logger.Info().Int("records", len(all)).Msg("Collected words from all pages")
	return all, nil
}

// Current returns only the loaded page's records. It never fetches.
func (p *Pipeline) Current(loaded *core.LoadedPage) []core.Record {
	if loaded == nil || loaded.Doc == nil {
		return nil
	}
	records := p.extractor.Extract(loaded.Doc)
	p.metrics.PagesProcessed.Inc()
	p.metrics.RecordsExtracted.Add(float64(len(records)))
	return records
}
