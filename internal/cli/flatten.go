package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treegrid/treegrid/pkg/pipeline"
)

// flattenOpts holds the command-line flags for the flatten command.
type flattenOpts struct {
	output     string // output file path; derived from the input when empty
	fromFormat string // source format override: "json" or "toml"
	toFormat   string // artifact format override: "xlsx" or "sqlite"
	sheet      string // worksheet name
	noMerge    bool   // write carried values literally instead of merging runs
	noHistory  *bool  // shared root flag
}

// newFlattenCmd creates the flatten command for converting a document into
// a leveled table.
func newFlattenCmd(cfg Config, noHistory *bool) *cobra.Command {
	opts := flattenOpts{noHistory: noHistory}

	cmd := &cobra.Command{
		Use:   "flatten [file]",
		Short: "Convert a document into a leveled table",
		Long: `Convert a uniformly nested JSON or TOML document into a leveled table.

Each root-to-leaf value becomes one row, one column per nesting level.
Values repeated from the row above are written once and merged across
the run, so the table reads like an outline.

The artifact format follows the output extension: .xlsx writes a
workbook, .db (or .sqlite) writes a sqlite database.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlatten(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the artifact extension)")
	cmd.Flags().StringVar(&opts.fromFormat, "from", "", "source format: json, toml (default: by extension)")
	cmd.Flags().StringVar(&opts.toFormat, "to", "", "artifact format: xlsx, sqlite (default: by extension)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", cfg.SheetName, "worksheet name")
	cmd.Flags().BoolVar(&opts.noMerge, "no-merge", cfg.NoMerge, "repeat carried values instead of merging cells")

	return cmd
}

// runFlatten resolves the destination and executes the pipeline.
func runFlatten(ctx context.Context, input string, opts *flattenOpts) error {
	output := opts.output
	if output == "" {
		format := opts.toFormat
		if format == "" {
			format = pipeline.FormatXLSX
		}
		output = derivedDest(input, pipeline.ArtifactExt(format))
	}

	runner := newRunner(ctx, *opts.noHistory)
	defer runner.Close()

	result, err := runner.Flatten(ctx, pipeline.Options{
		Source:       input,
		Dest:         output,
		SourceFormat: opts.fromFormat,
		DestFormat:   opts.toFormat,
		SheetName:    opts.sheet,
		NoMerge:      opts.noMerge,
	})
	if err != nil {
		return err
	}

	printSuccess("Flattened %s", input)
	printStats(result.Stats.Rows, result.Stats.Columns, result.Stats.MergedRuns)
	printFile(result.Dest)
	printNextStep("Rebuild the document", fmt.Sprintf("%s nest %s", appName, result.Dest))
	return nil
}
