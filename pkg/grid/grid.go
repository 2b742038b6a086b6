package grid

import (
	"errors"
	"fmt"

	"github.com/treegrid/treegrid/pkg/tree"
)

var (
	// ErrNoRows is returned by [ValidateRowDepth] for a table without data
	// rows. An empty table has no well-defined depth and cannot be nested.
	ErrNoRows = errors.New("table has no data rows")

	// ErrRowDepthMismatch is the sentinel matched by errors.Is for any row
	// depth validation failure. The concrete error is a [RowDepthError].
	ErrRowDepthMismatch = errors.New("table row depth is not uniform")

	// ErrTooFewColumns is returned by [Nest] when the table is too narrow
	// to hold a terminal key and value pair.
	ErrTooFewColumns = errors.New("table needs at least two columns")
)

// RowDepthError reports a row whose depth deviates from the first row's.
type RowDepthError struct {
	Row  int // zero-based data row index
	Want int // depth of the first row
	Got  int // depth of this row
}

// Error implements the error interface.
func (e *RowDepthError) Error() string {
	return fmt.Sprintf("row %d has depth %d, expected %d", e.Row, e.Got, e.Want)
}

// Is reports a match against [ErrRowDepthMismatch] for errors.Is.
func (e *RowDepthError) Is(target error) bool { return target == ErrRowDepthMismatch }

// Row is one table row. Cells hold scalar values; a null cell is an absent
// position (a carried-forward gap or padding).
type Row []tree.Scalar

// Grid is an ordered sequence of rows sharing one column count.
// Use [FromRows] to construct one; the zero value is an empty table.
type Grid struct {
	cols int
	rows []Row
}

// FromRows builds a rectangular grid from rows of possibly differing
// lengths. The column count is the longest row's length; shorter rows are
// padded with absent cells on the right. Input rows are copied.
func FromRows(rows []Row) *Grid {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	padded := make([]Row, len(rows))
	for i, r := range rows {
		row := make(Row, cols)
		copy(row, r)
		padded[i] = row
	}
	return &Grid{cols: cols, rows: padded}
}

// Columns returns the column count.
func (g *Grid) Columns() int { return g.cols }

// RowCount returns the number of data rows.
func (g *Grid) RowCount() int { return len(g.rows) }

// Rows returns the data rows in order. The returned slice is the grid's
// internal storage and must not be modified.
func (g *Grid) Rows() []Row { return g.rows }

// Headers returns the generated column labels "Level 1".."Level C".
func (g *Grid) Headers() []string {
	labels := make([]string, g.cols)
	for i := range labels {
		labels[i] = fmt.Sprintf("Level %d", i+1)
	}
	return labels
}

// RowDepth returns the depth of a row: the count of non-absent cells.
func RowDepth(row Row) int {
	depth := 0
	for _, cell := range row {
		if !cell.IsNull() {
			depth++
		}
	}
	return depth
}

// ValidateRowDepth verifies that every row has the same depth, taking the
// first row as reference. Rows must already be decoded (see [Decode]):
// carried-forward blanks would otherwise count as absent. An empty table
// fails with [ErrNoRows].
func ValidateRowDepth(g *Grid) error {
	if g.RowCount() == 0 {
		return ErrNoRows
	}
	want := RowDepth(g.rows[0])
	for i, row := range g.rows[1:] {
		if got := RowDepth(row); got != want {
			return &RowDepthError{Row: i + 1, Want: want, Got: got}
		}
	}
	return nil
}
