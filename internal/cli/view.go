package cli

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperrors "github.com/treegrid/treegrid/pkg/errors"
	"github.com/treegrid/treegrid/pkg/grid"
	pkgio "github.com/treegrid/treegrid/pkg/io"
	"github.com/treegrid/treegrid/pkg/pipeline"
	"github.com/treegrid/treegrid/pkg/sheet"
	"github.com/treegrid/treegrid/pkg/sqlitegrid"
	"github.com/treegrid/treegrid/pkg/tree"
)

// newViewCmd creates the view command for browsing tables interactively.
func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a document or table in the terminal",
		Long: `Browse the leveled table for any supported input interactively.

Documents (.json, .toml) are flattened in memory; table artifacts
(.xlsx, .db) are read directly. The browser starts in the merged view,
where cells carried from the row above show as "·"; press m to expand
them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), args[0])
		},
	}
}

// runView loads the rows and starts the browser.
func runView(ctx context.Context, input string) error {
	g, err := loadGrid(ctx, input)
	if err != nil {
		return err
	}
	if g.RowCount() == 0 {
		printInfo("Table is empty")
		return nil
	}

	p := tea.NewProgram(NewGridModel(filepath.Base(input), g))
	_, err = p.Run()
	return err
}

// loadGrid reads any supported input into expanded rows.
func loadGrid(ctx context.Context, input string) (*grid.Grid, error) {
	// The sqlite driver creates missing database files on open, so the
	// existence check runs up front for every format.
	if _, err := os.Stat(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "%s does not exist", input)
	}

	switch pipeline.DetectFormat(input) {
	case pipeline.FormatJSON, pipeline.FormatTOML:
		root, err := pkgio.Import(input)
		if err != nil {
			return nil, err
		}
		if err := tree.ValidateDepth(root); err != nil {
			return nil, err
		}
		return grid.FromRows(grid.Flatten(root)), nil

	case pipeline.FormatXLSX:
		enc, err := sheet.ReadFile(input)
		if err != nil {
			return nil, err
		}
		return grid.Decode(enc), nil

	case pipeline.FormatSQLite:
		store, err := sqlitegrid.Open(input)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Read(ctx)
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported input: %s (expect .json, .toml, .xlsx, or .db)", input)
}
