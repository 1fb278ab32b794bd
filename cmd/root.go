// Package cmd implements the CLI commands for dictexport using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/dictexport/logging"
)

// Persistent flag variables.
var (
	flagLogLevel    string
	flagLogPretty   bool
	flagMetricsFile string
)

var rootCmd = &cobra.Command{
	Use:   "dictexport",
	Short: "Export dictionary cards to JSON or text files",
	Long: `dictexport reads the word/translation cards of a paginated dictionary
listing, using your existing logged-in browser session, and saves them as
JSON, word=translation text, Markdown or PDF.

Usage:
  dictexport export --url <listing-url> [flags]`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logging.Config{
			Level:  logging.LogLevel(flagLogLevel),
			Pretty: flagLogPretty,
			Output: os.Stderr,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagLogPretty, "log-pretty", true, "Human-readable log output instead of JSON lines")
	rootCmd.PersistentFlags().StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus metrics for the run to this file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
