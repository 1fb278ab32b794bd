// Package metrics holds the Prometheus collectors for one export run.
// A CLI run has no scrape endpoint, so collectors live on a private
// registry that can be dumped in text format when the run ends.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for FetchAttempts.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics groups the collectors updated by the fetcher and the pipeline.
type Metrics struct {
	Registry *prometheus.Registry

	FetchAttempts       *prometheus.CounterVec
	FetchRetries        prometheus.Counter
	FetchRetryExhausted prometheus.Counter
	FetchBackoffSeconds prometheus.Histogram
	PagesProcessed      prometheus.Counter
	RecordsExtracted    prometheus.Counter
}

// New registers a fresh set of collectors on a new registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		FetchAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dictexport_fetch_attempts_total",
			Help: "Page fetch attempts by outcome",
		}, []string{"outcome"}),
		FetchRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "dictexport_fetch_retries_total",
			Help: "Page fetch retries scheduled after a failed attempt",
		}),
		FetchRetryExhausted: factory.NewCounter(prometheus.CounterOpts{
			Name: "dictexport_fetch_retry_exhausted_total",
			Help: "Pages whose retry budget was exhausted",
		}),
		FetchBackoffSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dictexport_fetch_backoff_seconds",
			Help:    "Backoff waited before a page fetch retry",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		}),
		PagesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "dictexport_pages_processed_total",
			Help: "Listing pages whose records were extracted",
		}),
		RecordsExtracted: factory.NewCounter(prometheus.CounterOpts{
			Name: "dictexport_records_extracted_total",
			Help: "Dictionary records extracted across all pages",
		}),
	}
}

// WriteTextfile dumps every collector in Prometheus text format to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
