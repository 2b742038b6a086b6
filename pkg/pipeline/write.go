package pipeline

import (
	"context"
	"os"
	"strings"
	"time"

	apperrors "github.com/treegrid/treegrid/pkg/errors"
	"github.com/treegrid/treegrid/pkg/grid"
	pkgio "github.com/treegrid/treegrid/pkg/io"
	"github.com/treegrid/treegrid/pkg/observability"
	"github.com/treegrid/treegrid/pkg/sheet"
	"github.com/treegrid/treegrid/pkg/sqlitegrid"
	"github.com/treegrid/treegrid/pkg/tree"
)

// writeGrid persists rows to the destination artifact. For xlsx the grid
// is carry-forward encoded and contiguous runs become merged cells; the
// sqlite store keeps the expanded rows. Returns the merged spans written,
// if any.
func (r *Runner) writeGrid(ctx context.Context, g *grid.Grid, opts Options, sheetOpts ...sheet.WriteOption) ([]grid.Span, error) {
	observability.Pipeline().OnWriteStart(ctx, opts.DestFormat, opts.Dest)
	start := time.Now()

	spans, err := r.writeGridFile(ctx, g, opts, sheetOpts)

	observability.Pipeline().OnWriteComplete(ctx, opts.DestFormat, opts.Dest, time.Since(start), err)
	return spans, err
}

func (r *Runner) writeGridFile(ctx context.Context, g *grid.Grid, opts Options, sheetOpts []sheet.WriteOption) ([]grid.Span, error) {
	switch opts.DestFormat {
	case FormatXLSX:
		enc, spans := grid.Encode(g)
		if opts.NoMerge {
			enc, spans = g, nil
		}
		wopts := append([]sheet.WriteOption{sheet.WithSheetName(opts.SheetName)}, sheetOpts...)
		err := sheet.WriteFile(enc, spans, opts.Dest, wopts...)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeWriteFailed, err, "write %s", opts.Dest)
		}
		return spans, nil

	case FormatSQLite:
		store, err := sqlitegrid.Open(opts.Dest)
		if err != nil {
			observability.Store().OnStoreError(ctx, "open", opts.Dest, err)
			return nil, apperrors.Wrap(apperrors.ErrCodeWriteFailed, err, "open %s", opts.Dest)
		}
		defer store.Close()

		if err := store.Write(ctx, g); err != nil {
			observability.Store().OnStoreError(ctx, "write", opts.Dest, err)
			return nil, apperrors.Wrap(apperrors.ErrCodeWriteFailed, err, "write %s", opts.Dest)
		}
		observability.Store().OnStoreWrite(ctx, opts.Dest, g.RowCount())
		return nil, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported table format: %q", opts.DestFormat)
}

// writeTree exports the document as ordered JSON, indented per the options.
func (r *Runner) writeTree(ctx context.Context, root *tree.Node, opts Options) error {
	observability.Pipeline().OnWriteStart(ctx, opts.DestFormat, opts.Dest)
	start := time.Now()

	err := writeTreeFile(root, opts)

	observability.Pipeline().OnWriteComplete(ctx, opts.DestFormat, opts.Dest, time.Since(start), err)
	return err
}

func writeTreeFile(root *tree.Node, opts Options) error {
	f, err := os.Create(opts.Dest)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWriteFailed, err, "create %s", opts.Dest)
	}

	indent := strings.Repeat(" ", opts.Indent)
	if opts.Compact {
		indent = ""
	}
	if err := pkgio.WriteJSONIndent(root, f, indent); err != nil {
		f.Close()
		return apperrors.Wrap(apperrors.ErrCodeWriteFailed, err, "write %s", opts.Dest)
	}
	if err := f.Close(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeWriteFailed, err, "write %s", opts.Dest)
	}
	return nil
}
