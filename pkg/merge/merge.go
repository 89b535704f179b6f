// Package merge implements the partial-update algorithm used for document
// patches. Unlike an RFC 7396 merge patch, arrays are not replaced: they are
// unioned, so a patch can append new elements without restating the ones
// already stored.
package merge

import "reflect"

// Apply merges patch into base and returns the merged document.
//
// Per field of the patch:
//   - object onto object: recurse into a copy
//   - array onto array: union, appending patch elements not already present
//     (structural equality) in patch order; duplicates within the patch are
//     added once
//   - anything else, or a type mismatch: overwrite with a deep copy
//
// base is never mutated. Untouched subtrees may be structurally shared with
// base; subtrees taken from the patch are always deep-copied.
func Apply(base, patch map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}

	for k, pv := range patch {
		switch pv := pv.(type) {
		case map[string]any:
			if bv, ok := merged[k].(map[string]any); ok {
				merged[k] = Apply(bv, pv)
			} else {
				merged[k] = deepCopy(pv)
			}
		case []any:
			if bv, ok := merged[k].([]any); ok {
				merged[k] = unionArrays(bv, pv)
			} else {
				merged[k] = deepCopy(pv)
			}
		default:
			merged[k] = pv
		}
	}

	return merged
}

// unionArrays keeps base elements at their original positions and appends
// patch elements that are not already present.
func unionArrays(base, patch []any) []any {
	merged := make([]any, len(base), len(base)+len(patch))
	copy(merged, base)

	for _, item := range patch {
		if !contains(merged, item) {
			merged = append(merged, deepCopy(item))
		}
	}
	return merged
}

// contains reports structural membership. Elements decoded from JSON are
// maps, slices and scalars, all comparable with reflect.DeepEqual.
func contains(arr []any, v any) bool {
	for _, e := range arr {
		if reflect.DeepEqual(e, v) {
			return true
		}
	}
	return false
}

func deepCopy(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}
