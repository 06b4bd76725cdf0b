// SPDX-License-Identifier: MPL-2.0

package config

// MergeDeep merges from into into, mutating and returning into.
//
// Plain-map values recurse; if the corresponding key in into is absent or
// not itself a plain map, a fresh map is created first. Every other value
// (scalars, slices, nil) overwrites wholesale — slices are replaced, never
// concatenated. Callers wanting list accumulation must model it at a higher
// key.
//
// There is no cycle detection: a self-referential from does not terminate.
// Order matters: merge fragments lowest-priority first so that the last
// writer wins.
func MergeDeep(into, from map[string]any) map[string]any {
	for key, value := range from {
		if src, ok := value.(map[string]any); ok {
			dst, ok := into[key].(map[string]any)
			if !ok {
				dst = make(map[string]any, len(src))
				into[key] = dst
			}
			MergeDeep(dst, src)
			continue
		}
		into[key] = value
	}
	return into
}

// deepCopy returns a structurally independent copy of a decoded JSON value.
// Maps and slices are copied recursively; scalars are shared (immutable).
func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			out[key] = deepCopy(elem)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = deepCopy(elem)
		}
		return out
	default:
		return v
	}
}
