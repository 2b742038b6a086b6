package grid

import "github.com/treegrid/treegrid/pkg/tree"

// Nest rebuilds a tree from decoded rows. All but the last two cells of a
// row form the key path: the first row to mention a path creates its
// mappings, later rows reuse them, and absent path cells are skipped
// without descending. The second-to-last cell is the terminal key - if
// absent, the row contributes nothing. The last cell is appended to the
// terminal key's list unless it is absent or already present, so rebuilt
// list leaves are duplicate-free in first-seen order.
//
// Every rebuilt leaf is a list: rows cannot record whether the source leaf
// was a bare scalar or a single-element list, so Nest always chooses the
// list form. A terminal key whose every value cell was absent still yields
// an empty list.
//
// Rows are expected to be carry-forward decoded (see [Decode]) and depth
// validated (see [ValidateRowDepth]) beforehand.
func Nest(g *Grid) (*tree.Node, error) {
	if g.cols < 2 {
		return nil, ErrTooFewColumns
	}

	root := tree.NewMap()
	for _, row := range g.rows {
		cur := root
		for _, cell := range row[:len(row)-2] {
			if cell.IsNull() {
				continue
			}
			key := cell.String()
			child, ok := cur.Get(key)
			if !ok || child.Kind() != tree.KindMap {
				child = tree.NewMap()
				cur.Set(key, child)
			}
			cur = child
		}

		terminal := row[len(row)-2]
		if terminal.IsNull() {
			continue
		}
		key := terminal.String()
		leaf, ok := cur.Get(key)
		if !ok || leaf.Kind() != tree.KindList {
			leaf = tree.NewList()
			cur.Set(key, leaf)
		}
		if value := row[len(row)-1]; !value.IsNull() && !leaf.Contains(value) {
			leaf.Append(value)
		}
	}
	return root, nil
}
