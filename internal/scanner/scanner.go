// Package scanner walks arbitrarily nested JSON-decoded trees and yields
// every string leaf together with a handle that can overwrite it in place.
// It knows nothing about timestamps; it operates purely on structural shape.
package scanner

import "sort"

// Location is a non-owning back-reference to a string leaf: the enclosing
// container (map or slice) plus its key or index. It stays valid as long as
// the tree is not restructured between scan and write-back.
type Location struct {
	object map[string]any
	array  []any
	key    string
	index  int
}

// Value returns the current value at the location.
func (l Location) Value() any {
	if l.object != nil {
		return l.object[l.key]
	}
	return l.array[l.index]
}

// SetString overwrites the leaf at the location.
func (l Location) SetString(s string) {
	if l.object != nil {
		l.object[l.key] = s
		return
	}
	l.array[l.index] = s
}

// StringNode pairs a string leaf with its location in the tree.
type StringNode struct {
	Loc   Location
	Value string
}

// Strings collects every string-valued leaf of root in depth-first order.
// Sequences are visited in index order; map keys are visited sorted, so the
// traversal is deterministic for a given tree. Non-string scalars (numbers,
// booleans, null) are skipped without error.
func Strings(root any) []StringNode {
	var nodes []StringNode
	walk(root, &nodes)
	return nodes
}

func walk(value any, nodes *[]StringNode) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := v[k].(string); ok {
				*nodes = append(*nodes, StringNode{Loc: Location{object: v, key: k}, Value: s})
			} else {
				walk(v[k], nodes)
			}
		}
	case []any:
		for i, item := range v {
			if s, ok := item.(string); ok {
				*nodes = append(*nodes, StringNode{Loc: Location{array: v, index: i}, Value: s})
			} else {
				walk(item, nodes)
			}
		}
	}
}
