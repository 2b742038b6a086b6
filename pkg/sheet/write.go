package sheet

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/treegrid/treegrid/pkg/grid"
	"github.com/treegrid/treegrid/pkg/tree"
)

// DefaultSheetName is the worksheet used when no name is given.
const DefaultSheetName = "Sheet1"

// Column widths in characters. Narrow columns are widened to keep the
// headers readable, very long values are clipped instead of stretching
// the sheet.
const (
	minColWidth = 10
	maxColWidth = 48
)

// WriteOption adjusts how a workbook is written.
type WriteOption func(*writer)

// WithSheetName names the worksheet. Defaults to [DefaultSheetName].
func WithSheetName(name string) WriteOption {
	return func(w *writer) { w.sheetName = name }
}

// WithoutAutoWidth disables fitting column widths to their content.
func WithoutAutoWidth() WriteOption {
	return func(w *writer) { w.autoWidth = false }
}

type writer struct {
	sheetName string
	autoWidth bool
}

// Write renders a carry-forward grid as an xlsx workbook on w. Row 1 holds
// the "Level N" headers, data rows follow, and each span becomes a vertical
// cell merge. Spans must come from encoding the same grid (see
// [grid.Encode]).
func Write(g *grid.Grid, spans []grid.Span, w io.Writer, opts ...WriteOption) error {
	f, err := build(g, spans, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile is [Write] to the file at path.
func WriteFile(g *grid.Grid, spans []grid.Span, path string, opts ...WriteOption) error {
	f, err := build(g, spans, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func build(g *grid.Grid, spans []grid.Span, opts []WriteOption) (*excelize.File, error) {
	cfg := writer{sheetName: DefaultSheetName, autoWidth: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	f := excelize.NewFile()
	if cfg.sheetName != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, cfg.sheetName); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", cfg.sheetName, err)
		}
	}

	if err := fill(f, cfg, g, spans); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fill(f *excelize.File, cfg writer, g *grid.Grid, spans []grid.Span) error {
	if err := writeHeader(f, cfg.sheetName, g); err != nil {
		return err
	}
	if err := writeRows(f, cfg.sheetName, g); err != nil {
		return err
	}
	if err := mergeSpans(f, cfg.sheetName, spans); err != nil {
		return err
	}
	if cfg.autoWidth {
		return fitColumns(f, cfg.sheetName, g)
	}
	return nil
}

func writeHeader(f *excelize.File, sheetName string, g *grid.Grid) error {
	headers := g.Headers()
	if len(headers) == 0 {
		return nil
	}
	for col, label := range headers {
		addr, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, addr, label); err != nil {
			return fmt.Errorf("header %s: %w", addr, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, style); err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheetName string, g *grid.Grid) error {
	for r, row := range g.Rows() {
		for c, cell := range row {
			if cell.IsNull() {
				continue
			}
			addr, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, addr, cellValue(cell)); err != nil {
				return fmt.Errorf("cell %s: %w", addr, err)
			}
		}
	}
	return nil
}

// cellValue maps a scalar to the Go value excelize stores natively, so
// numbers and booleans land as typed cells rather than text.
func cellValue(s tree.Scalar) any {
	switch s.Kind {
	case tree.ScalarNumber:
		if i, err := s.Num.Int64(); err == nil {
			return i
		}
		if v, err := s.Num.Float64(); err == nil {
			return v
		}
		return s.Num.String()
	case tree.ScalarBool:
		return s.Bool
	}
	return s.Str
}

func mergeSpans(f *excelize.File, sheetName string, spans []grid.Span) error {
	if len(spans) == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("merge style: %w", err)
	}

	for _, s := range spans {
		top, err := excelize.CoordinatesToCellName(s.Col+1, s.Start+2)
		if err != nil {
			return err
		}
		bottom, err := excelize.CoordinatesToCellName(s.Col+1, s.End+2)
		if err != nil {
			return err
		}
		if err := f.MergeCell(sheetName, top, bottom); err != nil {
			return fmt.Errorf("merge %s:%s: %w", top, bottom, err)
		}
		if err := f.SetCellStyle(sheetName, top, bottom, style); err != nil {
			return fmt.Errorf("merge style %s:%s: %w", top, bottom, err)
		}
	}
	return nil
}

func fitColumns(f *excelize.File, sheetName string, g *grid.Grid) error {
	widths := make([]int, g.Columns())
	for i, label := range g.Headers() {
		widths[i] = utf8.RuneCountInString(label)
	}
	for _, row := range g.Rows() {
		for c, cell := range row {
			if cell.IsNull() {
				continue
			}
			if n := utf8.RuneCountInString(cell.String()); n > widths[c] {
				widths[c] = n
			}
		}
	}

	for c, chars := range widths {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		width := float64(chars + 2)
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return fmt.Errorf("column %s width: %w", name, err)
		}
	}
	return nil
}
