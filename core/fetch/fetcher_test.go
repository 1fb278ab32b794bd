package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/dictexport/core"
	"github.com/gaurav-prasanna/dictexport/metrics"
)

// newTestFetcher points a fetcher at srv and records requested sleeps.
func newTestFetcher(t *testing.T, srv *httptest.Server, cookie string) (*HTTPFetcher, *[]time.Duration, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	f, err := New(Config{BaseURL: srv.URL + "/dictionary", Cookie: cookie}, m)
	require.NoError(t, err)

	var slept []time.Duration
	f.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return f, &slept, m
}

func TestPageURL(t *testing.T) {
	require.Equal(t,
		"https://puzzle-english.com/dictionary?noredirect=&view=cards&page=7",
		PageURL("https://puzzle-english.com/dictionary", 7))
}

func TestFetchPageSuccess(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		q := r.URL.Query()
		if r.URL.Path != "/dictionary" || q.Get("view") != "cards" || q.Get("page") != "2" || !q.Has("noredirect") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		c, err := r.Cookie("session")
		if err != nil || c.Value != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte("<html>page two</html>"))
	}))
	defer srv.Close()

	f, slept, m := newTestFetcher(t, srv, "session=abc; theme=dark")
	body, err := f.FetchPage(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "<html>page two</html>", body)
	require.Equal(t, int32(1), hits.Load())
	require.Empty(t, *slept)
	require.Equal(t, 1.0, testutil.ToFloat64(m.FetchAttempts.WithLabelValues(metrics.OutcomeSuccess)))
}

func TestFetchPageRecoversAfterFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f, slept, m := newTestFetcher(t, srv, "")
	body, err := f.FetchPage(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "ok", body)
	require.Equal(t, int32(3), hits.Load())
	require.Equal(t, []time.Duration{1500 * time.Millisecond, 3000 * time.Millisecond}, *slept)
	require.Equal(t, 2.0, testutil.ToFloat64(m.FetchRetries))
}

func TestFetchPageRetryExhausted(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f, slept, m := newTestFetcher(t, srv, "")
	_, err := f.FetchPage(context.Background(), 2)
	require.Error(t, err)

	// One initial attempt plus three retries, no wait after the last one.
	require.Equal(t, int32(4), hits.Load())
	require.Equal(t, []time.Duration{
		1500 * time.Millisecond,
		3000 * time.Millisecond,
		6000 * time.Millisecond,
	}, *slept)

	require.ErrorIs(t, err, core.ErrRetryExhausted)
	var pfe *core.PageFetchError
	require.ErrorAs(t, err, &pfe)
	require.Equal(t, 2, pfe.Page)
	require.Equal(t, 3, pfe.Retries)
	require.Contains(t, err.Error(), "page 2")
	require.Contains(t, err.Error(), "3 retries")
	require.Contains(t, err.Error(), "404")
	require.Equal(t, 1.0, testutil.ToFloat64(m.FetchRetryExhausted))
}

func TestFetchPageTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	f, slept, _ := newTestFetcher(t, srv, "")
	srv.Close()

	f.maxRetries = 1
	_, err := f.FetchPage(context.Background(), 5)
	require.ErrorIs(t, err, core.ErrRetryExhausted)
	require.Len(t, *slept, 1)
}

func TestFetchPageCancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f, _, _ := newTestFetcher(t, srv, "")
	f.sleep = func(context.Context, time.Duration) error { return context.Canceled }

	_, err := f.FetchPage(context.Background(), 2)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, errors.Is(err, core.ErrRetryExhausted))
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{}, nil)
	require.Error(t, err)

	_, err = New(Config{BaseURL: "not a url"}, nil)
	require.Error(t, err)
}
