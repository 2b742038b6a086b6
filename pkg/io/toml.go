package io

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/treegrid/treegrid/pkg/tree"
)

// keySep joins key path segments for order lookups. TOML keys cannot
// contain NUL, so joined paths never collide.
const keySep = "\x00"

// ReadTOML decodes a TOML document from r into a tree.
//
// Tables become mappings, arrays become list leaves, and everything else
// becomes a scalar leaf. Integers and floats keep exact literals, datetimes
// are converted to RFC 3339 strings. Mapping keys are ordered as they appear
// in the document.
//
// Arrays of tables and nested arrays have no tree representation and are
// rejected with [ErrNestedContainer].
func ReadTOML(r io.Reader) (*tree.Node, error) {
	var raw map[string]any
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return tomlTable(raw, childOrder(md.Keys()), "")
}

// ImportTOML reads a TOML file at path and returns the decoded tree.
func ImportTOML(path string) (*tree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	root, err := ReadTOML(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return root, nil
}

// childOrder indexes document key order by parent path: order[prefix] lists
// the child keys of that table in first-appearance order. Every ancestor
// along a listed key counts as an appearance - the metadata records a
// dotted key like outer.inner as one entry without a separate one for the
// implicit outer table.
func childOrder(keys []toml.Key) map[string][]string {
	order := make(map[string][]string, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		for i, part := range k {
			prefix := strings.Join(k[:i], keySep)
			full := strings.Join(k[:i+1], keySep)
			if seen[full] {
				continue
			}
			seen[full] = true
			order[prefix] = append(order[prefix], part)
		}
	}
	return order
}

func tomlTable(m map[string]any, order map[string][]string, prefix string) (*tree.Node, error) {
	node := tree.NewMap()
	for _, key := range orderedKeys(m, order[prefix]) {
		childPrefix := key
		if prefix != "" {
			childPrefix = prefix + keySep + key
		}
		child, err := tomlValue(m[key], order, childPrefix)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		node.Set(key, child)
	}
	return node, nil
}

// orderedKeys returns the keys of m in document order. Keys the metadata
// does not list (none in practice) are appended sorted, so the result is
// always complete and deterministic.
func orderedKeys(m map[string]any, listed []string) []string {
	keys := make([]string, 0, len(m))
	for _, k := range listed {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == len(m) {
		return keys
	}
	have := make(map[string]bool, len(keys))
	for _, k := range keys {
		have[k] = true
	}
	rest := make([]string, 0, len(m)-len(keys))
	for k := range m {
		if !have[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}

func tomlValue(v any, order map[string][]string, prefix string) (*tree.Node, error) {
	switch v := v.(type) {
	case map[string]any:
		return tomlTable(v, order, prefix)
	case []map[string]any: // array of tables
		return nil, ErrNestedContainer
	case []any:
		l := tree.NewList()
		for _, item := range v {
			s, err := tomlScalar(item)
			if err != nil {
				return nil, err
			}
			l.Append(s)
		}
		return l, nil
	default:
		s, err := tomlScalar(v)
		if err != nil {
			return nil, err
		}
		return tree.NewScalar(s), nil
	}
}

func tomlScalar(v any) (tree.Scalar, error) {
	switch v := v.(type) {
	case string:
		return tree.StringVal(v), nil
	case int64:
		return tree.IntVal(v), nil
	case float64:
		return tree.FloatVal(v), nil
	case bool:
		return tree.BoolVal(v), nil
	case time.Time:
		return tree.StringVal(v.Format(time.RFC3339)), nil
	case map[string]any, []map[string]any, []any:
		return tree.Scalar{}, ErrNestedContainer
	}
	return tree.Scalar{}, fmt.Errorf("unsupported TOML value %T", v)
}
