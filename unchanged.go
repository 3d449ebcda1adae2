package jsondiff

import (
	"github.com/agentflare-ai/jsonpointer"
)

// ComputeUnchanged returns every location at which source and target hold
// equivalent subtrees, keyed by the location's JSON Pointer string and
// mapped to the target-side value. Recursion stops at the first equivalent
// node: if a subtree is unchanged, none of its descendants are listed
// separately.
//
// The result is an upper bound on common content, used by PatchSink to
// recognize additions that can be factored into copy operations.
func ComputeUnchanged(source, target interface{}) map[string]interface{} {
	ret := map[string]interface{}{}
	computeUnchanged(ret, nil, source, target)
	return ret
}

func computeUnchanged(ret map[string]interface{}, ptr jsonpointer.Pointer, first, second interface{}) {
	if Equivalent(first, second) {
		ret[ptr.String()] = second
		return
	}

	if KindOf(first) != KindOf(second) {
		// nothing in common
		return
	}

	switch KindOf(first) {
	case KindObject:
		computeObjectUnchanged(ret, ptr, first.(map[string]interface{}), second.(map[string]interface{}))
	case KindArray:
		computeArrayUnchanged(ret, ptr, first.([]interface{}), second.([]interface{}))
	}
}

// fields missing from target cannot be unchanged, so only shared names recurse
func computeObjectUnchanged(ret map[string]interface{}, ptr jsonpointer.Pointer, source, target map[string]interface{}) {
	for name, sv := range source {
		tv, ok := target[name]
		if !ok {
			continue
		}
		computeUnchanged(ret, childField(ptr, name), sv, tv)
	}
}

// trailing elements of the longer array have no counterpart at a shared index
func computeArrayUnchanged(ret map[string]interface{}, ptr jsonpointer.Pointer, source, target []interface{}) {
	size := min(len(source), len(target))
	for i := 0; i < size; i++ {
		computeUnchanged(ret, childIndex(ptr, i), source[i], target[i])
	}
}
