package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/treegrid/treegrid/pkg/pipeline"
)

// nestOpts holds the command-line flags for the nest command.
type nestOpts struct {
	output     string // output file path; derived from the input when empty
	fromFormat string // artifact format override: "xlsx" or "sqlite"
	indent     int    // spaces per JSON indentation level
	compact    bool   // write single-line JSON
	noHistory  *bool  // shared root flag
}

// newNestCmd creates the nest command for rebuilding a document from a
// table artifact.
func newNestCmd(cfg Config, noHistory *bool) *cobra.Command {
	opts := nestOpts{noHistory: noHistory}

	cmd := &cobra.Command{
		Use:   "nest [file]",
		Short: "Rebuild the JSON document from a leveled table",
		Long: `Rebuild the nested JSON document from an xlsx workbook or sqlite
database written by flatten.

Merged and blank cells carry the value above them, rows sharing a key
path fold back into one branch, and duplicate leaf values collapse to
their first appearance. Key order follows the rows top to bottom.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNest(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with .json)")
	cmd.Flags().StringVar(&opts.fromFormat, "from", "", "artifact format: xlsx, sqlite (default: by extension)")
	cmd.Flags().IntVar(&opts.indent, "indent", cfg.Indent, "spaces per indentation level")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "write single-line JSON")

	return cmd
}

// runNest resolves the destination and executes the pipeline.
func runNest(ctx context.Context, input string, opts *nestOpts) error {
	output := opts.output
	if output == "" {
		output = derivedDest(input, ".json")
	}

	runner := newRunner(ctx, *opts.noHistory)
	defer runner.Close()

	result, err := runner.Nest(ctx, pipeline.Options{
		Source:       input,
		Dest:         output,
		SourceFormat: opts.fromFormat,
		Indent:       opts.indent,
		Compact:      opts.compact,
	})
	if err != nil {
		return err
	}

	printSuccess("Rebuilt %s", output)
	printStats(result.Stats.Rows, result.Stats.Columns, 0)
	printFile(result.Dest)
	return nil
}
