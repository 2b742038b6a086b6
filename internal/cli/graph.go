package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treegrid/treegrid/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output     string  // output file (single format) or base path (multiple)
	fromFormat string  // source format override: "json" or "toml"
	detailed   bool    // annotate containers with child counts
	scale      float64 // pixel scale for PNG output
	noHistory  *bool   // shared root flag
}

// newGraphCmd creates the graph command for rendering document structure
// diagrams.
func newGraphCmd(noHistory *bool) *cobra.Command {
	var formatsStr string
	opts := graphOpts{noHistory: noHistory}

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Render the document structure as a diagram",
		Long: `Render the document as a left-to-right node-link diagram: maps become
boxes, leaf values become ellipses, reading order matches the document.

SVG rendering runs in-process via Graphviz. PNG and PDF additionally
require rsvg-convert on PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateGraphFormats(formats); err != nil {
				return err
			}
			return runGraph(cmd.Context(), args[0], formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.fromFormat, "from", "", "source format: json, toml (default: by extension)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "annotate containers with child counts")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "pixel scale for PNG output")

	return cmd
}

// runGraph renders the requested formats and writes one file per format.
func runGraph(ctx context.Context, input string, formats []string, opts *graphOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner := newRunner(ctx, *opts.noHistory)
	defer runner.Close()

	result, err := runner.Graph(ctx, pipeline.Options{
		Source:       input,
		SourceFormat: opts.fromFormat,
		Formats:      formats,
		Scale:        opts.scale,
		Detailed:     opts.detailed,
	})
	if err != nil {
		return err
	}

	base := graphBasePath(opts.output, input)
	printSuccess("Rendered %s", input)
	for _, format := range formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debugf("Generated %s: %d bytes", format, len(result.Artifacts[format]))
		printFile(path)
	}
	prog.done(fmt.Sprintf("Rendered %d diagram file(s)", len(formats)))
	return nil
}

// graphBasePath derives the base output path from the output and input
// file paths. If output is empty, it strips the extension from input; if
// output carries a format extension (.svg, .png, ...), that is stripped so
// each requested format lands next to it.
func graphBasePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidGraphFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
