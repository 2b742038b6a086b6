// Package grid models the rectangular leveled table that mirrors a
// uniform-depth tree, and the two transforms between them.
//
// # Overview
//
// A [Grid] is an ordered sequence of fixed-width rows. Each row is one full
// root-to-leaf path through a tree: the leading cells are the key path, the
// second-to-last cell is the terminal key, and the last cell is the leaf
// value. Columns are positional and carry only generated "Level N" labels.
// Cells are [tree.Scalar] values; a null cell marks an absent position.
//
// [Flatten] walks a tree depth-first in insertion order and emits one row
// per leaf value. [Nest] rebuilds a tree from rows, merging rows that share
// a key-path prefix back into one subtree. Every rebuilt leaf is a list,
// deduplicated in first-seen order.
//
// # Carry-Forward Encoding
//
// Spreadsheets render repeated parent keys by merging the repeated cells
// vertically, leaving the value only in the first cell of the run. [Encode]
// produces that representation: contiguous equal values in a column become
// one leading value followed by blanks, plus a [Span] per run of length two
// or more so writers can merge the cell range. [Decode] inverts it by
// filling each blank with the nearest value above in the same column. A
// blank cell in an encoded grid is therefore never data - it always repeats
// the value above it.
//
// # Validation
//
// [ValidateRowDepth] checks the table-side uniformity invariant: the number
// of non-absent cells must be identical across rows. The tree-side check is
// [tree.ValidateDepth]. Conversions run the matching validator before
// producing any output.
package grid
