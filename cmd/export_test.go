package cmd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/dictexport/core"
	"github.com/gaurav-prasanna/dictexport/core/render"
)

func resetFlags() {
	flagURL, flagFromFile = "", ""
	flagOnly, flagAll = false, false
	flagJSON, flagTXT, flagMarkdown, flagPDF = false, false, false, false
	flagPDFFont, flagOutputDir, flagCookie, flagUserAgent = "", "", "", ""
	flagTimeout = 30 * time.Second
	flagProgress = false
	flagMetricsFile = ""
	flagLogLevel, flagLogPretty = "error", false
}

func TestValidateFlags(t *testing.T) {
	cases := []struct {
		name  string
		setup func()
		ok    bool
	}{
		{"no format", func() {}, false},
		{"json", func() { flagJSON = true }, true},
		{"two formats", func() { flagJSON, flagTXT = true, true }, false},
		{"only and all", func() { flagTXT, flagOnly, flagAll = true, true, true }, false},
		{"font without pdf", func() { flagTXT, flagPDFFont = true, "font.ttf" }, false},
		{"pdf with font", func() { flagPDF, flagPDFFont = true, "font.ttf" }, true},
		{"bad timeout", func() { flagJSON, flagTimeout = true, 0 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resetFlags()
			tc.setup()
			err := validateFlags()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestSelectRenderer(t *testing.T) {
	resetFlags()
	flagTXT = true
	r, err := selectRenderer()
	require.NoError(t, err)
	require.IsType(t, &render.TextRenderer{}, r)

	resetFlags()
	flagPDF = true
	r, err = selectRenderer()
	require.NoError(t, err)
	require.Equal(t, ".pdf", r.Extension())
}

// dictionaryServer serves a three-page listing that requires the session cookie.
func dictionaryServer(t *testing.T, perPage int) (*httptest.Server, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var requested []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("PHPSESSID"); err != nil || c.Value != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		page := r.URL.Query().Get("page")
		if page == "" {
			page = "1"
		}
		mu.Lock()
		requested = append(requested, page)
		mu.Unlock()

		var b strings.Builder
		for i := 1; i <= perPage; i++ {
			fmt.Fprintf(&b, `<div class="puzzle-card" data-word="p%s-%d" data-translation="t%s-%d"></div>`, page, i, page, i)
		}
		b.WriteString(`<ul class="paginator-style-2__list"><li><a data-page="1">1</a></li><li><a data-page="2">2</a></li></ul>`)
		w.Write([]byte(b.String()))
	}))
	t.Cleanup(srv.Close)
	return srv, &requested
}

func TestExportAllPagesTXT(t *testing.T) {
	resetFlags()
	srv, requested := dictionaryServer(t, 3)
	dir := t.TempDir()

	rootCmd.SetArgs([]string{
		"export", "--all", "--txt",
		"--url", srv.URL + "/dictionary?noredirect=&view=cards",
		"--cookie", "PHPSESSID=secret",
		"--output_dir", dir,
		"--log-level", "error",
	})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "dictionary_all.txt"))
	require.NoError(t, err)
	require.Equal(t, "p1-1=t1-1\np1-2=t1-2\np1-3=t1-3\np2-1=t2-1\np2-2=t2-2\np2-3=t2-3", string(data))
	require.Equal(t, []string{"1", "2"}, *requested)
}

func TestExportCurrentPageJSONWithMetrics(t *testing.T) {
	resetFlags()
	srv, requested := dictionaryServer(t, 2)
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "run.prom")

	rootCmd.SetArgs([]string{
		"export", "--json",
		"--url", srv.URL + "/dictionary?noredirect=&view=cards&page=2",
		"--cookie", "PHPSESSID=secret",
		"--output_dir", dir,
		"--metrics-file", metricsPath,
		"--log-level", "error",
	})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "dictionary.json"))
	require.NoError(t, err)
	require.Contains(t, string(data), `"word": "p2-1"`)
	require.Equal(t, []string{"2"}, *requested)

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	require.Contains(t, string(prom), "dictexport_records_extracted_total 2")
}

func TestExportEmptyPageRefused(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	saved := filepath.Join(dir, "saved.html")
	require.NoError(t, os.WriteFile(saved, []byte("<html><body><p>log in first</p></body></html>"), 0644))

	out := filepath.Join(dir, "out")
	rootCmd.SetArgs([]string{
		"export", "--txt",
		"--url", "https://puzzle-english.com/dictionary?noredirect=&view=cards",
		"--from-file", saved,
		"--output_dir", out,
		"--log-level", "error",
	})
	err := rootCmd.Execute()
	require.ErrorIs(t, err, core.ErrNoRecords)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Empty(t, entries)
}
