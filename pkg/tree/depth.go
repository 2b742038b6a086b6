package tree

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrDepthMismatch is the sentinel matched by errors.Is for any depth
// validation failure. The concrete error is always a [DepthError].
var ErrDepthMismatch = errors.New("tree depth is not uniform")

// DepthError reports a branch that does not reach the uniform depth.
type DepthError struct {
	Path []string // key path to the mismatching branch
	Want int      // depth of the deepest branch
	Got  int      // depth this branch reaches
}

// Error implements the error interface.
func (e *DepthError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("branch reaches depth %d, tree depth is %d", e.Got, e.Want)
	}
	return fmt.Sprintf("branch %q reaches depth %d, tree depth is %d", strings.Join(e.Path, "."), e.Got, e.Want)
}

// Is reports a match against [ErrDepthMismatch] for errors.Is.
func (e *DepthError) Is(target error) bool { return target == ErrDepthMismatch }

// MaxDepth returns the depth of the deepest branch: each mapping level adds
// one, list elements add nothing. An empty mapping or list terminates its
// branch at the depth it sits at, and a bare scalar likewise counts the
// levels above it.
func MaxDepth(n *Node) int {
	return maxDepth(n, 0)
}

func maxDepth(n *Node, depth int) int {
	if n == nil || n.kind != KindMap || len(n.entries) == 0 {
		return depth
	}
	deepest := depth
	for _, e := range n.entries {
		if d := maxDepth(e.Child, depth+1); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// ValidateDepth verifies that every branch of the tree reaches exactly
// [MaxDepth] levels, in two passes: compute the maximum, then check each
// branch against it. It fails fast with a [DepthError] naming the first
// branch that falls short.
//
// The leveled-table format cannot represent mixed depths, so both
// conversion directions run this before producing any output.
func ValidateDepth(root *Node) error {
	want := MaxDepth(root)
	return checkDepth(root, nil, 0, want)
}

func checkDepth(n *Node, path []string, depth, want int) error {
	if n == nil || n.kind != KindMap {
		return nil
	}
	for _, e := range n.entries {
		if got := maxDepth(e.Child, depth+1); got != want {
			return &DepthError{
				Path: append(slices.Clone(path), e.Key),
				Want: want,
				Got:  got,
			}
		}
	}
	for _, e := range n.entries {
		childPath := append(slices.Clone(path), e.Key)
		if err := checkDepth(e.Child, childPath, depth+1, want); err != nil {
			return err
		}
	}
	return nil
}
