package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/treegrid/treegrid/pkg/tree"
)

// WriteJSON encodes a tree as JSON and writes it to w, followed by a
// newline. Mapping keys appear in insertion order and numbers keep their
// original literal, so output can be re-imported with [ReadJSON] for
// round-trip processing. Output is indented with two spaces.
func WriteJSON(root *tree.Node, w io.Writer) error {
	return WriteJSONIndent(root, w, "  ")
}

// WriteJSONIndent is [WriteJSON] with an explicit indent string. An empty
// indent produces compact single-line output.
func WriteJSONIndent(root *tree.Node, w io.Writer, indent string) error {
	buf := appendNode(nil, root, indent, 0)
	buf = append(buf, '\n')
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportJSON writes a tree to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(root *tree.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(root, f); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func appendNode(buf []byte, n *tree.Node, indent string, depth int) []byte {
	if n == nil {
		return append(buf, "null"...)
	}
	switch n.Kind() {
	case tree.KindMap:
		if n.Len() == 0 {
			return append(buf, "{}"...)
		}
		buf = append(buf, '{')
		for i, e := range n.Entries() {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendIndent(buf, indent, depth+1)
			buf = appendString(buf, e.Key)
			buf = append(buf, ':')
			if indent != "" {
				buf = append(buf, ' ')
			}
			buf = appendNode(buf, e.Child, indent, depth+1)
		}
		buf = appendIndent(buf, indent, depth)
		return append(buf, '}')
	case tree.KindList:
		if n.Len() == 0 {
			return append(buf, "[]"...)
		}
		buf = append(buf, '[')
		for i, item := range n.Items() {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendIndent(buf, indent, depth+1)
			buf = appendScalar(buf, item)
		}
		buf = appendIndent(buf, indent, depth)
		return append(buf, ']')
	default:
		return appendScalar(buf, n.Scalar())
	}
}

func appendIndent(buf []byte, indent string, depth int) []byte {
	if indent == "" {
		return buf
	}
	buf = append(buf, '\n')
	for range depth {
		buf = append(buf, indent...)
	}
	return buf
}

func appendScalar(buf []byte, s tree.Scalar) []byte {
	switch s.Kind {
	case tree.ScalarString:
		return appendString(buf, s.Str)
	case tree.ScalarNumber:
		if s.Num == "" {
			return append(buf, '0')
		}
		return append(buf, s.Num...)
	case tree.ScalarBool:
		if s.Bool {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	}
	return append(buf, "null"...)
}

// appendString writes s as a quoted JSON string. Marshaling a string never
// fails, so the error is discarded.
func appendString(buf []byte, s string) []byte {
	b, _ := json.Marshal(s)
	return append(buf, b...)
}
