// Package tree provides the ordered nested-mapping model that treegrid
// converts to and from leveled tables.
//
// # Overview
//
// A tree is a mapping from string keys to child nodes, where a child is
// either another mapping, a list of scalar leaves, or a single scalar leaf.
// Unlike Go's built-in maps, mapping nodes preserve insertion order: the
// order keys appear in a document is the order branches flatten into table
// rows, and the order keys are written back out.
//
// # Basic Usage
//
// Build trees with [NewMap], [NewList], and [NewScalar], attach children
// with [Node.Set], and read them back with [Node.Get] and [Node.Entries]:
//
//	citrus := tree.NewList(tree.StringVal("orange"), tree.StringVal("lemon"))
//	fruit := tree.NewMap()
//	fruit.Set("citrus", citrus)
//	root := tree.NewMap()
//	root.Set("fruit", fruit)
//
// # Leaf Values
//
// Leaves carry an explicit tagged variant: a bare scalar ([KindScalar]) is
// distinct from a single-element list ([KindList]). The flattening transform
// accepts both, but the reverse transform always rebuilds list leaves, so
// round-trip fidelity is only guaranteed for trees whose leaves are lists.
// [Scalar] values are strings, numbers, booleans, or null; see [StringVal],
// [NumberVal], [BoolVal], and [NullVal].
//
// # Depth
//
// The leveled-table format requires every leaf-bearing branch to terminate
// at the same nesting depth. [MaxDepth] computes the deepest branch (mapping
// nesting adds one level, list elements add none), and [ValidateDepth]
// verifies all branches reach exactly that depth, failing with a
// [DepthError] otherwise. Both transforms run validation before producing
// any output.
//
// # Concurrency
//
// Node instances are not safe for concurrent use. A tree is a transient
// artifact of a single conversion call and is never shared across calls.
package tree
