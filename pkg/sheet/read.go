package sheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/treegrid/treegrid/pkg/grid"
	"github.com/treegrid/treegrid/pkg/tree"
)

// ErrNoSheets reports a workbook without any worksheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// Read decodes the first worksheet of an xlsx workbook from r into a
// carry-forward grid. The header row is dropped; remaining rows become data
// rows padded to the table width. Empty cells, including cells hidden under
// a vertical merge, read as absent.
//
// Cell types are recovered from the workbook: boolean cells become
// booleans, numeric content becomes numbers with the formatted text as the
// literal, everything else stays text. Read does not close r.
func Read(r io.Reader) (*grid.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return readFirstSheet(f)
}

// ReadFile is [Read] for the xlsx file at path.
func ReadFile(path string) (*grid.Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := readFirstSheet(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return g, nil
}

func readFirstSheet(f *excelize.File) (*grid.Grid, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	sheetName := sheets[0]

	raw, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
	}
	if len(raw) == 0 {
		return grid.FromRows(nil), nil
	}

	// GetRows trims trailing empty cells per row; the header fixes the
	// minimum table width.
	width := len(raw[0])
	for _, cells := range raw[1:] {
		if len(cells) > width {
			width = len(cells)
		}
	}

	rows := make([]grid.Row, len(raw)-1)
	for i, cells := range raw[1:] {
		row := make(grid.Row, width)
		for c, value := range cells {
			v, err := cellScalar(f, sheetName, c+1, i+2, value)
			if err != nil {
				return nil, err
			}
			row[c] = v
		}
		rows[i] = row
	}
	return grid.FromRows(rows), nil
}

// cellScalar recovers a typed scalar from the formatted cell value. Numeric
// cells carry no explicit type attribute in the sheet, so anything not
// typed as a string or boolean goes through a number parse first.
func cellScalar(f *excelize.File, sheetName string, col, row int, value string) (tree.Scalar, error) {
	if value == "" {
		return tree.NullVal(), nil
	}
	addr, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return tree.Scalar{}, err
	}
	ct, err := f.GetCellType(sheetName, addr)
	if err != nil {
		return tree.Scalar{}, fmt.Errorf("cell %s: %w", addr, err)
	}

	switch ct {
	case excelize.CellTypeBool:
		return tree.BoolVal(strings.EqualFold(value, "TRUE")), nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return tree.StringVal(value), nil
	}
	if isNumeric(value) {
		return tree.NumberVal(json.Number(value)), nil
	}
	return tree.StringVal(value), nil
}

// isNumeric reports whether s is a plain decimal literal, the only numeric
// form that survives as a JSON number.
func isNumeric(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
		case c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E':
		default:
			return false
		}
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
