package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/treegrid/treegrid/pkg/errors"
	"github.com/treegrid/treegrid/pkg/grid"
	"github.com/treegrid/treegrid/pkg/history"
	"github.com/treegrid/treegrid/pkg/observability"
	"github.com/treegrid/treegrid/pkg/render"
	"github.com/treegrid/treegrid/pkg/sheet"
	"github.com/treegrid/treegrid/pkg/tree"
)

// Runner executes conversions and records them in the history journal.
//
// The Runner is stateless except for the logger and journal - it doesn't
// store conversion results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Logger  *log.Logger
	History *history.Log
}

// NewRunner creates a runner with the given logger and history journal.
// If logger is nil, the default logger is used.
// If hist is nil, runs are not recorded.
func NewRunner(logger *log.Logger, hist *history.Log) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Logger:  logger,
		History: hist,
	}
}

// Flatten runs the complete tree → table pipeline: read the document,
// validate uniform depth, flatten to rows, and write the artifact.
func (r *Runner) Flatten(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForFlatten(); err != nil {
		return nil, err
	}

	rec := history.New("flatten")
	rec.Source, rec.Dest = opts.Source, opts.Dest
	result, err := r.runFlatten(ctx, opts)
	if result != nil {
		rec.Rows, rec.Depth = result.Stats.Rows, result.Stats.Depth
	}
	rec.Finish(err)
	r.record(rec)
	return result, err
}

func (r *Runner) runFlatten(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{Dest: opts.Dest}

	// Stage 1: Read
	readStart := time.Now()
	root, err := r.readTree(ctx, opts.Source, opts.SourceFormat)
	if err != nil {
		return nil, err
	}
	result.Tree = root
	result.Stats.ReadTime = time.Since(readStart)

	// Stage 2+3: Validate depth, then flatten.
	// Validation is strict: a mixed-depth document produces no artifact.
	convertStart := time.Now()
	observability.Pipeline().OnConvertStart(ctx, "flatten", root.Len())
	g, err := flattenTree(root)
	observability.Pipeline().OnConvertComplete(ctx, "flatten", time.Since(convertStart), err)
	if err != nil {
		return nil, err
	}
	result.Grid = g
	result.Stats.ConvertTime = time.Since(convertStart)
	result.Stats.Rows = g.RowCount()
	result.Stats.Columns = g.Columns()
	result.Stats.Depth = tree.MaxDepth(root)

	r.Logger.Info("flattened document",
		"rows", result.Stats.Rows,
		"columns", result.Stats.Columns,
		"duration", result.Stats.ConvertTime)

	// Stage 4: Write
	writeStart := time.Now()
	spans, err := r.writeGrid(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Spans = spans
	result.Stats.MergedRuns = len(spans)
	result.Stats.WriteTime = time.Since(writeStart)

	r.Logger.Info("wrote table",
		"dest", opts.Dest,
		"format", opts.DestFormat,
		"merged_runs", result.Stats.MergedRuns,
		"duration", result.Stats.WriteTime)

	return result, nil
}

// Nest runs the complete table → tree pipeline: read the artifact with
// carry-forward expansion, validate row depth, rebuild the tree, and
// export ordered JSON.
func (r *Runner) Nest(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForNest(); err != nil {
		return nil, err
	}

	rec := history.New("nest")
	rec.Source, rec.Dest = opts.Source, opts.Dest
	result, err := r.runNest(ctx, opts)
	if result != nil {
		rec.Rows, rec.Depth = result.Stats.Rows, result.Stats.Depth
	}
	rec.Finish(err)
	r.record(rec)
	return result, err
}

func (r *Runner) runNest(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{Dest: opts.Dest}

	// Stage 1: Read
	readStart := time.Now()
	g, err := r.readGrid(ctx, opts.Source, opts.SourceFormat)
	if err != nil {
		return nil, err
	}
	result.Grid = g
	result.Stats.ReadTime = time.Since(readStart)
	result.Stats.Rows = g.RowCount()
	result.Stats.Columns = g.Columns()

	// Stage 2+3: Validate row depth, then nest.
	convertStart := time.Now()
	observability.Pipeline().OnConvertStart(ctx, "nest", g.RowCount())
	root, err := nestRows(g)
	observability.Pipeline().OnConvertComplete(ctx, "nest", time.Since(convertStart), err)
	if err != nil {
		return nil, err
	}
	result.Tree = root
	result.Stats.ConvertTime = time.Since(convertStart)
	if g.Columns() > 0 {
		result.Stats.Depth = g.Columns() - 1
	}

	r.Logger.Info("rebuilt document",
		"rows", result.Stats.Rows,
		"keys", root.Len(),
		"duration", result.Stats.ConvertTime)

	// Stage 4: Write
	writeStart := time.Now()
	if err := r.writeTree(ctx, root, opts); err != nil {
		return nil, err
	}
	result.Stats.WriteTime = time.Since(writeStart)

	r.Logger.Info("wrote document",
		"dest", opts.Dest,
		"duration", result.Stats.WriteTime)

	return result, nil
}

// Verify runs the full round trip through a real temporary artifact and
// compares the rebuilt document against the source. A mismatch is a valid
// outcome, reported on the result, not an error.
func (r *Runner) Verify(ctx context.Context, opts Options) (*VerifyResult, error) {
	if err := opts.ValidateForVerify(); err != nil {
		return nil, err
	}

	rec := history.New("verify")
	rec.Source = opts.Source
	result, err := r.runVerify(ctx, opts)
	if result != nil {
		rec.Rows, rec.Depth = result.Stats.Rows, result.Stats.Depth
	}
	switch {
	case err != nil:
		rec.Finish(err)
	case !result.Match:
		rec.Finish(apperrors.New(apperrors.ErrCodeVerifyMismatch, "round trip changed the document"))
	default:
		rec.Finish(nil)
	}
	r.record(rec)
	return result, err
}

func (r *Runner) runVerify(ctx context.Context, opts Options) (*VerifyResult, error) {
	result := &VerifyResult{}

	readStart := time.Now()
	original, err := r.readTree(ctx, opts.Source, opts.SourceFormat)
	if err != nil {
		return nil, err
	}
	result.Original = original
	result.Stats.ReadTime = time.Since(readStart)

	convertStart := time.Now()
	g, err := flattenTree(original)
	if err != nil {
		return nil, err
	}
	result.Stats.Rows = g.RowCount()
	result.Stats.Columns = g.Columns()
	result.Stats.Depth = tree.MaxDepth(original)

	dir, err := os.MkdirTemp("", "treegrid-verify-")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeWriteFailed, err, "create temp dir")
	}
	defer os.RemoveAll(dir)

	// The artifact is discarded after the read-back, so skip the
	// cosmetic column fitting.
	opts.Dest = filepath.Join(dir, "roundtrip"+ArtifactExt(opts.DestFormat))
	spans, err := r.writeGrid(ctx, g, opts, sheet.WithoutAutoWidth())
	if err != nil {
		return nil, err
	}
	result.Stats.MergedRuns = len(spans)

	back, err := r.readGrid(ctx, opts.Dest, opts.DestFormat)
	if err != nil {
		return nil, err
	}
	rebuilt, err := nestRows(back)
	if err != nil {
		return nil, err
	}
	result.Rebuilt = rebuilt
	result.Match = tree.Equal(original, rebuilt)
	result.Stats.ConvertTime = time.Since(convertStart)

	r.Logger.Info("verified round trip",
		"rows", result.Stats.Rows,
		"match", result.Match,
		"duration", result.Stats.ConvertTime)

	return result, nil
}

// Graph renders the document as a node-link diagram in each requested
// format. Artifacts are returned in memory; the caller decides where they
// land.
func (r *Runner) Graph(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForGraph(); err != nil {
		return nil, err
	}

	rec := history.New("graph")
	rec.Source = opts.Source
	result, err := r.runGraph(ctx, opts)
	if result != nil {
		rec.Depth = result.Stats.Depth
	}
	rec.Finish(err)
	r.record(rec)
	return result, err
}

func (r *Runner) runGraph(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{Artifacts: make(map[string][]byte)}

	readStart := time.Now()
	root, err := r.readTree(ctx, opts.Source, opts.SourceFormat)
	if err != nil {
		return nil, err
	}
	result.Tree = root
	result.Stats.ReadTime = time.Since(readStart)
	result.Stats.Depth = tree.MaxDepth(root)

	renderStart := time.Now()
	dot := render.ToDOT(root, render.Options{Detailed: opts.Detailed})
	for _, format := range opts.Formats {
		start := time.Now()
		observability.Render().OnRenderStart(ctx, format)
		data, err := renderGraph(dot, format, opts.Scale)
		observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render %s", format)
		}
		result.Artifacts[format] = data
	}
	result.Stats.ConvertTime = time.Since(renderStart)

	r.Logger.Info("rendered diagram",
		"formats", opts.Formats,
		"duration", result.Stats.ConvertTime)

	return result, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error { return nil }

// flattenTree validates depth and flattens, in that order, so a
// mixed-depth tree never reaches the writer.
func flattenTree(root *tree.Node) (*grid.Grid, error) {
	if err := tree.ValidateDepth(root); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDepth, err, "document depth is not uniform")
	}
	return grid.FromRows(grid.Flatten(root)), nil
}

// nestRows validates row depth and rebuilds the tree, in that order, so a
// ragged table never reaches the exporter.
func nestRows(g *grid.Grid) (*tree.Node, error) {
	if err := grid.ValidateRowDepth(g); err != nil {
		if errors.Is(err, grid.ErrNoRows) {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidTable, err, "table has no data rows")
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDepth, err, "table depth is not uniform")
	}
	root, err := grid.Nest(g)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidTable, err, "rebuild document")
	}
	return root, nil
}

func renderGraph(dot, format string, scale float64) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return render.SVG(dot)
	case FormatPNG:
		return render.PNG(dot, scale)
	case FormatPDF:
		return render.PDF(dot)
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported graph format: %q", format)
}

// record appends the run to the history journal. Recording is best-effort:
// a journal failure is logged and never fails the conversion.
func (r *Runner) record(rec *history.Record) {
	if r.History == nil {
		return
	}
	if err := r.History.Append(rec); err != nil {
		r.Logger.Debug("history append failed", "err", err)
	}
}
