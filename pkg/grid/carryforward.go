package grid

import (
	"slices"

	"github.com/treegrid/treegrid/pkg/tree"
)

// Span marks a vertical run of identical values in one column, using
// zero-based inclusive data-row indexes. Writers merge the spanned cell
// range so the value renders once; spans never cover fewer than two rows.
type Span struct {
	Col   int
	Start int
	End   int
}

// Rows returns the number of rows the span covers.
func (s Span) Rows() int { return s.End - s.Start + 1 }

// Encode converts a logical grid into its carry-forward representation:
// within each column, a cell equal to the cell above is blanked, and every
// maximal run of two or more equal non-absent values yields a [Span].
// Runs of absent cells are left alone - they carry no value to repeat.
// The input grid is not modified.
func Encode(g *Grid) (*Grid, []Span) {
	rows := g.rows
	enc := make([]Row, len(rows))
	for i, row := range rows {
		enc[i] = slices.Clone(row)
	}

	var spans []Span
	for col := 0; col < g.cols; col++ {
		start := 0
		for r := 1; r <= len(rows); r++ {
			if r < len(rows) && !rows[r][col].IsNull() && rows[r][col].Equal(rows[start][col]) {
				enc[r][col] = tree.NullVal()
				continue
			}
			if r-start >= 2 && !rows[start][col].IsNull() {
				spans = append(spans, Span{Col: col, Start: start, End: r - 1})
			}
			start = r
		}
	}
	return &Grid{cols: g.cols, rows: enc}, spans
}

// Decode expands a carry-forward grid back into logical rows by filling
// each blank cell with the nearest non-blank value above it in the same
// column. Blanks with no value above stay absent. The input grid is not
// modified.
func Decode(g *Grid) *Grid {
	dec := make([]Row, len(g.rows))
	for i, row := range g.rows {
		dec[i] = slices.Clone(row)
	}

	for col := 0; col < g.cols; col++ {
		last := tree.NullVal()
		for r := range dec {
			if dec[r][col].IsNull() {
				dec[r][col] = last
			} else {
				last = dec[r][col]
			}
		}
	}
	return &Grid{cols: g.cols, rows: dec}
}
