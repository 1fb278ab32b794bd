// Export command.
// This is the main command that wires the export:
// load starting page → aggregate pages → render → write.
//
// It handles flag validation, renderer selection, and the --only / --all modes.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/dictexport/core"
	"github.com/gaurav-prasanna/dictexport/core/extract"
	"github.com/gaurav-prasanna/dictexport/core/fetch"
	"github.com/gaurav-prasanna/dictexport/core/output"
	"github.com/gaurav-prasanna/dictexport/core/pipeline"
	"github.com/gaurav-prasanna/dictexport/core/render"
	"github.com/gaurav-prasanna/dictexport/crawl"
	"github.com/gaurav-prasanna/dictexport/metrics"
)

const cookieEnv = "DICTEXPORT_COOKIE"

// Flag variables.
var (
	flagURL       string
	flagFromFile  string
	flagOnly      bool
	flagAll       bool
	flagJSON      bool
	flagTXT       bool
	flagMarkdown  bool
	flagPDF       bool
	flagPDFFont   string
	flagOutputDir string
	flagCookie    string
	flagUserAgent string
	flagTimeout   time.Duration
	flagProgress  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current page or all pages of the dictionary",
	Long: `Export reads the dictionary cards of the listing page given by --url and
saves them in the chosen format.

With --only (the default) only that page is exported, to dictionary.<ext>.
With --all every page from that one up to the last page in the paginator is
fetched in order, with a pause between pages, and saved to dictionary_all.<ext>.
If any page cannot be fetched after retrying, nothing is written.

The session cookie is taken from --cookie or the ` + cookieEnv + ` environment variable.

Examples:
  dictexport export --url "https://puzzle-english.com/dictionary?noredirect=&view=cards" --json
  dictexport export --url "https://puzzle-english.com/dictionary?noredirect=&view=cards&page=3" --all --txt
  dictexport export --url "https://puzzle-english.com/dictionary?noredirect=&view=cards" --from-file saved.html --txt`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&flagURL, "url", "", "Listing page URL the export starts from (required)")
	exportCmd.Flags().StringVar(&flagFromFile, "from-file", "", "Read the starting page from a saved HTML file instead of fetching --url")

	// Mode flags.
	exportCmd.Flags().BoolVar(&flagOnly, "only", false, "Export only the current page (default)")
	exportCmd.Flags().BoolVar(&flagAll, "all", false, "Export the current page and every following page")

	// Output format flags (mutually exclusive).
	exportCmd.Flags().BoolVar(&flagJSON, "json", false, "Output JSON")
	exportCmd.Flags().BoolVar(&flagTXT, "txt", false, "Output word=translation lines")
	exportCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	exportCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	exportCmd.Flags().StringVar(&flagPDFFont, "pdf-font", "", "UTF-8 TrueType font for PDF output (needed for non-Latin text)")

	exportCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	exportCmd.Flags().StringVar(&flagCookie, "cookie", os.Getenv(cookieEnv), "Cookie header of a logged-in session (default: $"+cookieEnv+")")
	exportCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "User-Agent header for page requests")
	exportCmd.Flags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "Timeout for a single page request")
	exportCmd.Flags().BoolVar(&flagProgress, "progress", false, "Show a progress spinner while exporting all pages")

	_ = exportCmd.MarkFlagRequired("url")
}

func runExport(cmd *cobra.Command, args []string) error {
	// --- Validate flags ---
	if err := validateFlags(); err != nil {
		return err
	}

	start, err := crawl.ParseListingURL(flagURL)
	if err != nil {
		return err
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	m := metrics.New()
	if flagMetricsFile != "" {
		defer func() {
			if werr := m.WriteTextfile(flagMetricsFile); werr != nil {
				log.Warn().Err(werr).Str("path", flagMetricsFile).Msg("Writing metrics failed")
			}
		}()
	}

	// Initialize pipeline components.
	fetcher, err := fetch.New(fetch.Config{
		BaseURL:   crawl.ListingBase(start),
		Cookie:    flagCookie,
		UserAgent: flagUserAgent,
		Timeout:   flagTimeout,
	}, m)
	if err != nil {
		return fmt.Errorf("initializing fetcher: %w", err)
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	exporter := output.NewExporter(writer)
	p := pipeline.New(fetcher, extract.New(), m)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	loaded, err := selectSource(fetcher).Load(ctx)
	if err != nil {
		return err
	}

	if flagAll {
		return runAll(ctx, cmd, p, exporter, renderer, loaded)
	}
	return runOnly(p, exporter, renderer, loaded)
}

// runOnly exports the records of the loaded page without any fetch.
func runOnly(p *pipeline.Pipeline, exporter *output.Exporter, renderer core.Renderer, loaded *core.LoadedPage) error {
	records := p.Current(loaded)
	path, err := exporter.Export(records, renderer, output.CurrentPage)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written %d words: %s\n", len(records), path)
	return nil
}

// runAll walks every page from the current one to the last and exports the
// combined records, or nothing if any page fails.
func runAll(
	ctx context.Context,
	cmd *cobra.Command,
	p *pipeline.Pipeline,
	exporter *output.Exporter,
	renderer core.Renderer,
	loaded *core.LoadedPage,
) error {
	if flagProgress {
		if !cmd.Flags().Changed("log-level") {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		}
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " loading pages..."
		s.Start()
		defer s.Stop()

		p.OnPage = func(pr pipeline.Progress) {
			s.Lock()
			s.Suffix = fmt.Sprintf(" page %d/%d (%d words)", pr.Page, pr.LastPage, pr.Total)
			s.Unlock()
		}
	}

	records, err := p.Run(ctx, loaded)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("export interrupted: %w", err)
		}
		return err
	}

	path, err := exporter.Export(records, renderer, output.AllPages)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written %d words: %s\n", len(records), path)
	return nil
}

// selectSource picks where the starting page comes from.
func selectSource(fetcher *fetch.HTTPFetcher) core.PageSource {
	if flagFromFile != "" {
		return &crawl.FileSource{URL: flagURL, Path: flagFromFile}
	}
	return &crawl.HTTPSource{URL: flagURL, Fetcher: fetcher}
}

// validateFlags checks that exactly one output format is chosen and
// that --only and --all are not both specified.
func validateFlags() error {
	if flagOnly && flagAll {
		return fmt.Errorf("--only and --all are mutually exclusive")
	}

	formatCount := 0
	for _, set := range []bool{flagJSON, flagTXT, flagMarkdown, flagPDF} {
		if set {
			formatCount++
		}
	}
	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --json, --txt, --markdown, or --pdf")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	if flagPDFFont != "" && !flagPDF {
		return fmt.Errorf("--pdf-font is only valid with --pdf")
	}
	if flagTimeout <= 0 {
		return fmt.Errorf("--timeout must be positive")
	}

	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagTXT:
		return render.NewTextRenderer(), nil
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(flagPDFFont), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
