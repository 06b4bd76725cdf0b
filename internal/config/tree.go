// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Tree is one immutable configuration snapshot. It is frozen at construction
// by deep-copying its input, and every accessor that returns a mutable shape
// copies again on the way out, so no caller can alter the snapshot another
// caller observes.
type Tree struct {
	root map[string]any
}

// NewTree freezes root into a Tree.
func NewTree(root map[string]any) *Tree {
	return &Tree{root: deepCopy(root).(map[string]any)}
}

// Get looks up a dot-path (e.g. "server.http.port") and reports whether the
// path resolved to a value.
func (t *Tree) Get(path string) (any, bool) {
	value, ok := lookupPath(t.root, path)
	if !ok {
		return nil, false
	}
	return deepCopy(value), true
}

// StringAt returns the string at path, or fallback if the path is absent or
// not a string.
func (t *Tree) StringAt(path, fallback string) string {
	value, ok := lookupPath(t.root, path)
	if !ok {
		return fallback
	}
	s, ok := value.(string)
	if !ok {
		return fallback
	}
	return s
}

// BoolAt returns the boolean at path, or fallback.
func (t *Tree) BoolAt(path string, fallback bool) bool {
	value, ok := lookupPath(t.root, path)
	if !ok {
		return fallback
	}
	b, ok := value.(bool)
	if !ok {
		return fallback
	}
	return b
}

// StringsAt returns the list of strings at path. Non-string elements are
// skipped. An absent path yields nil.
func (t *Tree) StringsAt(path string) []string {
	value, ok := lookupPath(t.root, path)
	if !ok {
		return nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, elem := range list {
		if s, ok := elem.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// MapAt returns a copy of the mapping at path, or an empty map if the path
// is absent or not a mapping.
func (t *Tree) MapAt(path string) map[string]any {
	value, ok := lookupPath(t.root, path)
	if !ok {
		return map[string]any{}
	}
	m, ok := value.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return deepCopy(m).(map[string]any)
}

// Root returns a copy of the whole tree.
func (t *Tree) Root() map[string]any {
	return deepCopy(t.root).(map[string]any)
}

// lookupPath resolves a dot-path against a decoded JSON document using a
// JSONPath child expression. Returns the first match.
func lookupPath(root map[string]any, path string) (any, bool) {
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, false
	}
	results := expr.Get(root)
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

// flattenString renders a looked-up value for placeholder substitution.
// Strings pass through; other scalars use their JSON notation; structured
// values are not meaningful in a placeholder position and render empty.
func flattenString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return fmt.Sprintf("%v", v)
	case float64:
		return trimFloat(v)
	case nil:
		return ""
	default:
		return ""
	}
}

// trimFloat renders a JSON number without a trailing ".0" for integral
// values, matching how the numbers were written in the fragments.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
