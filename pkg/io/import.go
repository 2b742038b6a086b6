package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/treegrid/treegrid/pkg/tree"
)

var (
	// ErrRootNotObject reports a document whose top-level value is not an
	// object.
	ErrRootNotObject = errors.New("top-level value must be an object")

	// ErrNestedContainer reports an array element that is itself an object
	// or an array. Arrays hold scalar values only.
	ErrNestedContainer = errors.New("arrays may hold scalar values only")
)

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// DetectFormat infers the document format from the file extension.
// Unrecognized extensions default to JSON.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Import reads a document file at path, detecting the format from the file
// extension via [DetectFormat].
func Import(path string) (*tree.Node, error) {
	if DetectFormat(path) == FormatTOML {
		return ImportTOML(path)
	}
	return ImportJSON(path)
}

// ReadJSON decodes a JSON document from r into a tree.
//
// The top-level value must be an object; mapping keys are preserved in
// document order. Numbers keep their original literal. A duplicate key
// replaces the earlier value but keeps the earlier position.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or truncated
//   - The top-level value is not an object ([ErrRootNotObject])
//   - An array contains an object or array ([ErrNestedContainer])
//   - The document is followed by trailing data
//
// Errors are wrapped with the key under which the problem occurred. The
// returned tree is independent of r and can be modified safely after
// ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*tree.Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrRootNotObject
	}

	root, err := readObject(dec)
	if err != nil {
		return nil, err
	}

	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return nil, fmt.Errorf("trailing data after document: %v", tok)
	}
	return root, nil
}

// ImportJSON reads a JSON file at path and returns the decoded tree.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*tree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	root, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return root, nil
}

// readObject consumes the members of an object after its opening brace,
// including the closing brace.
func readObject(dec *json.Decoder) (*tree.Node, error) {
	m := tree.NewMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decode: object key is %T, not string", tok)
		}
		child, err := readValue(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		m.Set(key, child)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return m, nil
}

// readArray consumes the elements of an array after its opening bracket,
// including the closing bracket. Elements must be scalars.
func readArray(dec *json.Decoder) (*tree.Node, error) {
	l := tree.NewList()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		if _, ok := tok.(json.Delim); ok {
			return nil, ErrNestedContainer
		}
		l.Append(scalarToken(tok))
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return l, nil
}

func readValue(dec *json.Decoder) (*tree.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if d, ok := tok.(json.Delim); ok {
		if d == '{' {
			return readObject(dec)
		}
		return readArray(dec)
	}
	return tree.NewScalar(scalarToken(tok)), nil
}

// scalarToken converts a non-delimiter decoder token. With UseNumber active
// the token is a string, json.Number, bool, or nil; no other case exists.
func scalarToken(tok json.Token) tree.Scalar {
	switch v := tok.(type) {
	case string:
		return tree.StringVal(v)
	case json.Number:
		return tree.NumberVal(v)
	case bool:
		return tree.BoolVal(v)
	}
	return tree.NullVal()
}
