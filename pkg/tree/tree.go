package tree

import "fmt"

// Kind distinguishes the three node variants of a tree.
type Kind int

const (
	// KindMap is an ordered mapping from string keys to child nodes.
	KindMap Kind = iota
	// KindList is a leaf holding zero or more scalar values.
	KindList
	// KindScalar is a leaf holding exactly one scalar value.
	KindScalar
)

// String returns the kind name for error messages and logs.
func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindList:
		return "list"
	case KindScalar:
		return "scalar"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Entry is one key/child pair of a mapping node.
type Entry struct {
	Key   string
	Child *Node
}

// Node is a tagged tree node: a mapping, a list leaf, or a scalar leaf.
// Use [NewMap], [NewList], or [NewScalar] to construct one; the zero value
// is an empty mapping.
//
// Mapping nodes keep entries in insertion order and index them by key, so
// [Node.Get] stays O(1) while [Node.Entries] preserves document order.
type Node struct {
	kind    Kind
	entries []Entry
	index   map[string]int
	items   []Scalar
	scalar  Scalar
}

// NewMap creates an empty mapping node.
func NewMap() *Node {
	return &Node{kind: KindMap}
}

// NewList creates a list leaf with the given elements.
func NewList(items ...Scalar) *Node {
	return &Node{kind: KindList, items: items}
}

// NewScalar creates a scalar leaf.
func NewScalar(v Scalar) *Node {
	return &Node{kind: KindScalar, scalar: v}
}

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// IsLeaf reports whether the node is a list or scalar leaf.
func (n *Node) IsLeaf() bool { return n.kind != KindMap }

// Len returns the number of entries of a mapping or elements of a list.
// Scalar leaves have length 1.
func (n *Node) Len() int {
	switch n.kind {
	case KindMap:
		return len(n.entries)
	case KindList:
		return len(n.items)
	}
	return 1
}

// Entries returns the mapping entries in insertion order. The returned
// slice is the node's internal storage and must not be modified.
// Entries panics if the node is not a mapping.
func (n *Node) Entries() []Entry {
	n.mustKind(KindMap, "Entries")
	return n.entries
}

// Get returns the child for key and whether it exists.
// Get panics if the node is not a mapping.
func (n *Node) Get(key string) (*Node, bool) {
	n.mustKind(KindMap, "Get")
	i, ok := n.index[key]
	if !ok {
		return nil, false
	}
	return n.entries[i].Child, true
}

// Set attaches child under key, appending a new entry for a first-seen key
// and replacing the child in place for an existing one (the entry keeps its
// original position). Set panics if the node is not a mapping.
func (n *Node) Set(key string, child *Node) {
	n.mustKind(KindMap, "Set")
	if i, ok := n.index[key]; ok {
		n.entries[i].Child = child
		return
	}
	if n.index == nil {
		n.index = make(map[string]int)
	}
	n.index[key] = len(n.entries)
	n.entries = append(n.entries, Entry{Key: key, Child: child})
}

// Items returns the list elements in order. The returned slice is the
// node's internal storage and must not be modified.
// Items panics if the node is not a list.
func (n *Node) Items() []Scalar {
	n.mustKind(KindList, "Items")
	return n.items
}

// Append adds v to the end of a list leaf.
// Append panics if the node is not a list.
func (n *Node) Append(v Scalar) {
	n.mustKind(KindList, "Append")
	n.items = append(n.items, v)
}

// Contains reports whether the list already holds a value equal to v.
// Contains panics if the node is not a list.
func (n *Node) Contains(v Scalar) bool {
	n.mustKind(KindList, "Contains")
	for _, item := range n.items {
		if item.Equal(v) {
			return true
		}
	}
	return false
}

// Scalar returns the value of a scalar leaf.
// Scalar panics if the node is not a scalar.
func (n *Node) Scalar() Scalar {
	n.mustKind(KindScalar, "Scalar")
	return n.scalar
}

func (n *Node) mustKind(want Kind, op string) {
	if n.kind != want {
		panic(fmt.Sprintf("tree: %s called on %s node", op, n.kind))
	}
}

// Equal reports semantic equality of two trees: mappings must hold the same
// key set (order is not significant) with equal children, lists must hold
// equal elements in the same order, and scalars compare per [Scalar.Equal].
// A scalar leaf is never equal to a single-element list leaf.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindMap:
		if len(a.entries) != len(b.entries) {
			return false
		}
		for _, e := range a.entries {
			other, ok := b.Get(e.Key)
			if !ok || !Equal(e.Child, other) {
				return false
			}
		}
		return true
	case KindList:
		if len(a.items) != len(b.items) {
			return false
		}
		for i, item := range a.items {
			if !item.Equal(b.items[i]) {
				return false
			}
		}
		return true
	default:
		return a.scalar.Equal(b.scalar)
	}
}
