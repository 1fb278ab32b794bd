// Package fetch implements the PageFetcher interface.
// It retrieves listing pages over HTTP with the user's session cookies,
// retrying failed attempts with exponential backoff.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/dictexport/core"
	"github.com/gaurav-prasanna/dictexport/logging"
	"github.com/gaurav-prasanna/dictexport/metrics"
)

const (
	// DefaultMaxRetries is the number of retries after the first failed attempt.
	DefaultMaxRetries = 3
	// DefaultInitialDelay is the wait before the first retry; it doubles each time.
	DefaultInitialDelay = 1500 * time.Millisecond

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36"
)

// Config holds the fetcher configuration.
type Config struct {
	// BaseURL is the listing address without query, e.g. https://puzzle-english.com/dictionary.
	BaseURL string
	// Cookie is a raw Cookie header copied from a logged-in browser session.
	Cookie    string
	UserAgent string
	Timeout   time.Duration
}

// HTTPFetcher fetches listing pages via HTTP.
type HTTPFetcher struct {
	base    string
	client  *resty.Client
	logger  zerolog.Logger
	metrics *metrics.Metrics

	maxRetries   int
	initialDelay time.Duration
	sleep        core.SleepFunc
}

// New creates an HTTPFetcher sharing one cookie jar across all requests.
func New(cfg Config, m *metrics.Metrics) (*HTTPFetcher, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("fetch: base URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if m == nil {
		m = metrics.New()
	}

	jar, err := NewSessionJar(cfg.BaseURL, cfg.Cookie)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger("fetch")

	client := resty.New()
	client.SetLogger(restyLogger{logger})
	client.SetCookieJar(jar)
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("User-Agent", cfg.UserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml")

	return &HTTPFetcher{
		base:         cfg.BaseURL,
		client:       client,
		logger:       logger,
		metrics:      m,
		maxRetries:   DefaultMaxRetries,
		initialDelay: DefaultInitialDelay,
		sleep:        core.Sleep,
	}, nil
}

// PageURL embeds a page number into the paginated listing URL.
func PageURL(base string, page int) string {
	return fmt.Sprintf("%s?noredirect=&view=cards&page=%d", base, page)
}

// FetchPage retrieves the markup of listing page number page.
func (f *HTTPFetcher) FetchPage(ctx context.Context, page int) (string, error) {
	return f.FetchURL(ctx, PageURL(f.base, page), page)
}

// FetchURL retrieves rawURL, attributing failures to page.
// A failed attempt waits for the current delay, doubles it, and tries again
// until maxRetries retries have been spent.
func (f *HTTPFetcher) FetchURL(ctx context.Context, rawURL string, page int) (string, error) {
	attempt := 0
	delay := f.initialDelay

	for {
		body, err := f.get(ctx, rawURL)
		if err == nil {
			f.metrics.FetchAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
			return body, nil
		}
		f.metrics.FetchAttempts.WithLabelValues(metrics.OutcomeFailure).Inc()

		if ctx.Err() != nil {
			return "", fmt.Errorf("fetching page %d: %w", page, ctx.Err())
		}

		attempt++
		if attempt > f.maxRetries {
			f.metrics.FetchRetryExhausted.Inc()
			f.logger.Error().
				Err(err).
				Int("page", page).
				Int("max_retries", f.maxRetries).
				Msg("Retry attempts exhausted")
			return "", &core.PageFetchError{Page: page, Retries: f.maxRetries, Err: err}
		}

		f.metrics.FetchRetries.Inc()
		f.metrics.FetchBackoffSeconds.Observe(delay.Seconds())
		f.logger.Warn().
			Err(err).
			Int("page", page).
			Int("attempt", attempt).
			Int("max_retries", f.maxRetries).
			Dur("delay", delay).
			Msg("Error fetching page, retrying")

		if err := f.sleep(ctx, delay); err != nil {
			return "", fmt.Errorf("fetching page %d: %w", page, err)
		}
		delay *= 2
	}
}

// get performs one GET; any non-2xx status counts as a failure.
func (f *HTTPFetcher) get(ctx context.Context, rawURL string) (string, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("HTTP error! status: %d %s", res.StatusCode(), http.StatusText(res.StatusCode()))
	}
	return res.String(), nil
}

// restyLogger routes resty's internal messages through zerolog.
type restyLogger struct {
	zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.Debug().Msgf(format, v...) }
