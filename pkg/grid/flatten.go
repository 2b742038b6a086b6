package grid

import "github.com/treegrid/treegrid/pkg/tree"

// Flatten converts a tree into root-to-leaf rows, depth-first in insertion
// order. A nested mapping extends the key path; a non-empty list emits one
// row per element (path + terminal key + element); a scalar emits a single
// row. Empty lists and empty mappings emit nothing - an empty multi-valued
// leaf is not representable in the table and is silently dropped, which can
// drop its whole branch.
//
// Depth-first insertion order makes rows sharing a parent path contiguous,
// which the carry-forward encoding relies on. Rows come back unpadded; use
// [FromRows] to build the rectangular grid. For a depth-validated tree all
// rows already share one length: uniform depth + 1.
func Flatten(root *tree.Node) []Row {
	var rows []Row
	flattenNode(root, nil, &rows)
	return rows
}

func flattenNode(n *tree.Node, path []tree.Scalar, rows *[]Row) {
	for _, e := range n.Entries() {
		key := tree.StringVal(e.Key)
		switch e.Child.Kind() {
		case tree.KindMap:
			flattenNode(e.Child, append(path, key), rows)
		case tree.KindList:
			for _, item := range e.Child.Items() {
				*rows = append(*rows, newRow(path, key, item))
			}
		default:
			*rows = append(*rows, newRow(path, key, e.Child.Scalar()))
		}
	}
}

func newRow(path []tree.Scalar, key, value tree.Scalar) Row {
	row := make(Row, 0, len(path)+2)
	row = append(row, path...)
	return append(row, key, value)
}
