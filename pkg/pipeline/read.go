package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	apperrors "github.com/treegrid/treegrid/pkg/errors"
	"github.com/treegrid/treegrid/pkg/grid"
	pkgio "github.com/treegrid/treegrid/pkg/io"
	"github.com/treegrid/treegrid/pkg/observability"
	"github.com/treegrid/treegrid/pkg/sheet"
	"github.com/treegrid/treegrid/pkg/sqlitegrid"
	"github.com/treegrid/treegrid/pkg/tree"
)

// readTree parses the source document into an ordered tree, dispatching on
// format.
func (r *Runner) readTree(ctx context.Context, path, format string) (*tree.Node, error) {
	observability.Pipeline().OnReadStart(ctx, format, path)
	start := time.Now()

	root, err := readTreeFile(path, format)

	keys := 0
	if root != nil {
		keys = root.Len()
	}
	observability.Pipeline().OnReadComplete(ctx, format, path, keys, time.Since(start), err)
	return root, err
}

func readTreeFile(path, format string) (*tree.Node, error) {
	var root *tree.Node
	var err error
	switch format {
	case FormatJSON:
		root, err = pkgio.ImportJSON(path)
	case FormatTOML:
		root, err = pkgio.ImportTOML(path)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported document format: %q", format)
	}
	if err != nil {
		return nil, codeReadError(err, path)
	}
	return root, nil
}

// readGrid loads the tabular artifact as logical rows. The xlsx reader
// yields the carry-forward form and is expanded here; the sqlite store
// already holds expanded rows.
func (r *Runner) readGrid(ctx context.Context, path, format string) (*grid.Grid, error) {
	observability.Pipeline().OnReadStart(ctx, format, path)
	start := time.Now()

	g, err := r.readGridFile(ctx, path, format)

	rows := 0
	if g != nil {
		rows = g.RowCount()
	}
	observability.Pipeline().OnReadComplete(ctx, format, path, rows, time.Since(start), err)
	return g, err
}

func (r *Runner) readGridFile(ctx context.Context, path, format string) (*grid.Grid, error) {
	switch format {
	case FormatXLSX:
		enc, err := sheet.ReadFile(path)
		if err != nil {
			return nil, codeTableError(err, path)
		}
		return grid.Decode(enc), nil

	case FormatSQLite:
		// The sqlite driver creates missing database files on open, so a
		// bad path has to be rejected up front.
		if _, err := os.Stat(path); err != nil {
			return nil, codeReadError(err, path)
		}
		store, err := sqlitegrid.Open(path)
		if err != nil {
			observability.Store().OnStoreError(ctx, "open", path, err)
			return nil, apperrors.Wrap(apperrors.ErrCodeReadFailed, err, "open %s", path)
		}
		defer store.Close()

		g, err := store.Read(ctx)
		if err != nil {
			observability.Store().OnStoreError(ctx, "read", path, err)
			return nil, codeTableError(err, path)
		}
		observability.Store().OnStoreRead(ctx, path, g.RowCount())
		return g, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported table format: %q", format)
}

// codeReadError classifies a document read failure: a missing file, an I/O
// failure, or malformed content.
func codeReadError(err error, path string) error {
	if errors.Is(err, os.ErrNotExist) {
		return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "%s does not exist", path)
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return apperrors.Wrap(apperrors.ErrCodeReadFailed, err, "read %s", path)
	}
	return apperrors.Wrap(apperrors.ErrCodeInvalidDocument, err, "parse %s", path)
}

// codeTableError classifies a table read failure the same way.
func codeTableError(err error, path string) error {
	if errors.Is(err, os.ErrNotExist) {
		return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "%s does not exist", path)
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return apperrors.Wrap(apperrors.ErrCodeReadFailed, err, "read %s", path)
	}
	return apperrors.Wrap(apperrors.ErrCodeInvalidTable, err, "read %s", path)
}
