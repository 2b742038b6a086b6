// Package cli implements the treegrid command-line interface.
//
// This package provides commands for flattening leveled JSON or TOML
// documents into spreadsheet tables, rebuilding documents from tables,
// verifying the round trip, rendering structure diagrams, and browsing
// tables interactively. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
//   - flatten: Convert a document into an xlsx workbook or sqlite database
//   - nest: Rebuild the JSON document from a table artifact
//   - verify: Round-trip a document and compare the result
//   - graph: Render the document structure as a diagram
//   - view: Browse a document or table in the terminal
//   - history: Inspect the conversion journal
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so every command sees the same one.
package cli

import (
	"context"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/treegrid/treegrid/pkg/buildinfo"
	"github.com/treegrid/treegrid/pkg/history"
	"github.com/treegrid/treegrid/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "treegrid"

// Execute runs the treegrid CLI. This is the main entry point for the
// application; ctx carries cancellation from the signal handler in main.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Args[1:]).ExecuteContext(ctx)
}

// newRootCmd builds the root command with all subcommands registered.
// Configuration file values become flag defaults, so flags always win.
// The --config flag is pre-scanned from the raw args because the file has
// to be read before cobra parses anything.
func newRootCmd(args []string) *cobra.Command {
	var (
		verbose   bool
		noHistory bool
	)
	cfg := loadConfig(configFlagFromArgs(args))

	root := &cobra.Command{
		Use:   appName,
		Short: "Treegrid converts leveled documents to spreadsheets and back",
		Long: `Treegrid is a CLI tool for converting uniformly nested JSON or TOML
documents into leveled spreadsheet tables and rebuilding the documents
from those tables, without losing the document's key order.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints the error once
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVar(&noHistory, "no-history", cfg.NoHistory, "do not record this run in the history journal")
	root.PersistentFlags().String("config", "", "config file (default ~/.config/treegrid/config.toml)")

	root.AddCommand(newFlattenCmd(cfg, &noHistory))
	root.AddCommand(newNestCmd(cfg, &noHistory))
	root.AddCommand(newVerifyCmd(cfg, &noHistory))
	root.AddCommand(newGraphCmd(&noHistory))
	root.AddCommand(newViewCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// newRunner creates a pipeline runner for CLI use. The history journal is
// best-effort: when it cannot be opened the runner simply runs without one.
func newRunner(ctx context.Context, noHistory bool) *pipeline.Runner {
	logger := loggerFromContext(ctx)

	var hist *history.Log
	if !noHistory {
		var err error
		hist, err = history.Open(historyPath())
		if err != nil {
			logger.Debugf("History journal unavailable: %v", err)
			hist = nil
		}
	}
	return pipeline.NewRunner(logger, hist)
}

// parseFormats parses a comma-separated format string into a slice.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
