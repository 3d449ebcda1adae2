package jsondiff

import (
	"encoding/json"
	"reflect"

	"github.com/agentflare-ai/jsonpointer"
)

// generateKeyedDiffs is the key-aware counterpart of generateDiffs. It adds
// explicit empty-container handling the positional engine leaves implicit:
// transitions between null and an empty container produce no operation, a
// formerly-empty container reports its new content as additions, and an
// emptied array reports each element as an array-scoped removal.
func generateKeyedDiffs(sink Sink, ptr jsonpointer.Pointer, source, target interface{}, table map[string]string) {
	if Equivalent(source, target) {
		return
	}

	sourceKind := KindOf(source)
	targetKind := KindOf(target)
	sourceSize := sizeOf(source)
	targetSize := sizeOf(target)

	switch {
	case sourceSize == 0 && targetSize == 0:
		// Nothing on either side has children. A kind change between two
		// empty values (null -> [], null -> {}) is not worth an operation.
		if sourceKind != targetKind {
			return
		}
	case sourceSize == 0 && targetSize != 0:
		// everything in target is new
		if targetKind == KindArray {
			for _, el := range target.([]interface{}) {
				sink.ValueAdded(ptr, el)
			}
			return
		}
		sink.ValueAdded(ptr, target)
		return
	case sourceSize != 0 && targetSize == 0:
		// an emptied array removes its elements one at a time; anything
		// else falls through to the generic handling below
		if sourceKind == KindArray {
			for i, el := range source.([]interface{}) {
				sink.ArrayElementRemoved(childIndex(ptr, i), el)
			}
			return
		}
	}

	if sourceKind != targetKind {
		sink.ValueReplaced(ptr, source, target)
		return
	}
	if !sourceKind.IsContainer() {
		sink.ValueReplaced(ptr, source, target)
		return
	}

	if sourceKind == KindObject {
		generateKeyedObjectDiffs(sink, ptr, source.(map[string]interface{}), target.(map[string]interface{}), table)
	} else {
		generateKeyedArrayDiffs(sink, ptr, source.([]interface{}), target.([]interface{}), table)
	}
}

// generateKeyedObjectDiffs mirrors generateObjectDiffs' removals, additions,
// recursion order, but flags removed container fields element by element so
// factoring will not pair them with later additions.
func generateKeyedObjectDiffs(sink Sink, ptr jsonpointer.Pointer, source, target map[string]interface{}, table map[string]string) {
	sourceFields := sortedFieldNames(source)
	targetFields := sortedFieldNames(target)

	for _, field := range sourceFields {
		if _, ok := target[field]; ok {
			continue
		}
		value := source[field]
		if sizeOf(value) != 0 {
			fieldPtr := childField(ptr, field)
			for i, el := range containerChildren(value) {
				sink.ArrayElementRemoved(childIndex(fieldPtr, i), el)
			}
		} else {
			sink.ValueRemoved(childField(ptr, field), value)
		}
	}
	for _, field := range targetFields {
		if _, ok := source[field]; !ok {
			sink.ValueAdded(childField(ptr, field), target[field])
		}
	}
	for _, field := range sourceFields {
		if _, ok := target[field]; ok {
			generateKeyedDiffs(sink, childField(ptr, field), source[field], target[field], table)
		}
	}
}

// generateKeyedArrayDiffs reconciles two non-empty arrays. With a key field
// configured for this location, elements match by identity; otherwise they
// match by whole value.
func generateKeyedArrayDiffs(sink Sink, ptr jsonpointer.Pointer, source, target []interface{}, table map[string]string) {
	field, ok := table[ptr.String()]
	if !ok || field == "" {
		generateUnkeyedArrayDiffs(sink, ptr, source, target)
		return
	}
	generateArrayDiffsByKey(sink, ptr, source, target, field)
}

// generateUnkeyedArrayDiffs treats each whole element as its own key. Every
// source element consumes at most one equal target element; leftovers on the
// source side are removals at their own index, leftovers on the target side
// are appends. Matching is by plain equality, so duplicated values can pair
// across positions; that is an accepted limitation of the fallback.
func generateUnkeyedArrayDiffs(sink Sink, ptr jsonpointer.Pointer, source, target []interface{}) {
	remaining := make([]interface{}, len(target))
	copy(remaining, target)

	for i, el := range source {
		if j := indexOfEqual(remaining, el); j != -1 {
			remaining = append(remaining[:j], remaining[j+1:]...)
			continue
		}
		sink.ArrayElementRemoved(childIndex(ptr, i), el)
	}
	for _, el := range remaining {
		sink.ValueAdded(childEnd(ptr), el)
	}
}

// generateArrayDiffsByKey matches elements on the identity of their key
// field. A source element whose key is absent from target is removed whole;
// one whose key matches is diffed field by field against every target
// element sharing the key. Target elements whose key never matched are
// appended. Elements with no identity (non-objects, or objects without the
// key field) fall back to whole-value matching.
func generateArrayDiffsByKey(sink Sink, ptr jsonpointer.Pointer, source, target []interface{}, field string) {
	targetKeys := make([]string, len(target))
	targetHasKey := make([]bool, len(target))
	for j, el := range target {
		targetKeys[j], targetHasKey[j] = keyOf(el, field)
	}

	matched := map[string]bool{}
	consumed := make([]bool, len(target)) // keyless targets claimed by whole-value matches

	for i, el := range source {
		key, ok := keyOf(el, field)
		if !ok {
			if j := indexOfEqualKeyless(target, targetHasKey, consumed, el); j != -1 {
				consumed[j] = true
				continue
			}
			sink.ArrayElementRemoved(childIndex(ptr, i), el)
			continue
		}

		found := false
		for j := range target {
			if targetHasKey[j] && targetKeys[j] == key {
				found = true
				if !reflect.DeepEqual(el, target[j]) {
					generateMatchedElementDiffs(sink, childIndex(ptr, i),
						el.(map[string]interface{}), target[j].(map[string]interface{}))
				}
			}
		}
		if found {
			matched[key] = true
		} else {
			sink.ArrayElementRemoved(childIndex(ptr, i), el)
		}
	}

	for j, el := range target {
		if targetHasKey[j] {
			if !matched[targetKeys[j]] {
				sink.ValueAdded(childEnd(ptr), el)
			}
		} else if !consumed[j] {
			sink.ValueAdded(childEnd(ptr), el)
		}
	}
}

// generateMatchedElementDiffs compares one matched array element field by
// field, emitting replacements scoped to the element. This is one level
// deep by design: nested containers replace wholesale. Comparison here is
// plain equality, not the numeric-aware equivalence used everywhere else,
// so a 1 -> 1.0 representation change inside a matched element is reported.
func generateMatchedElementDiffs(sink Sink, ptr jsonpointer.Pointer, source, target map[string]interface{}) {
	for _, field := range sortedFieldNames(source) {
		tv, ok := target[field]
		if !ok || !reflect.DeepEqual(source[field], tv) {
			sink.ArrayElementReplaced(childField(ptr, field), source, tv)
		}
	}
	for _, field := range sortedFieldNames(target) {
		if _, ok := source[field]; !ok {
			sink.ArrayElementReplaced(childField(ptr, field), source, target[field])
		}
	}
}

// keyOf returns an array element's identity under the given key field: the
// compact JSON encoding of the field's value, so string "1" and number 1
// stay distinct. Non-objects and objects without the field have no identity.
func keyOf(el interface{}, field string) (string, bool) {
	obj, ok := el.(map[string]interface{})
	if !ok {
		return "", false
	}
	v, ok := obj[field]
	if !ok {
		return "", false
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// containerChildren lists a container's values: array elements in order,
// object field values in sorted field order.
func containerChildren(v interface{}) []interface{} {
	switch x := v.(type) {
	case []interface{}:
		return x
	case map[string]interface{}:
		names := sortedFieldNames(x)
		out := make([]interface{}, len(names))
		for i, name := range names {
			out[i] = x[name]
		}
		return out
	}
	return nil
}

func indexOfEqual(list []interface{}, v interface{}) int {
	for i, el := range list {
		if reflect.DeepEqual(el, v) {
			return i
		}
	}
	return -1
}

func indexOfEqualKeyless(target []interface{}, hasKey, consumed []bool, v interface{}) int {
	for j, el := range target {
		if hasKey[j] || consumed[j] {
			continue
		}
		if reflect.DeepEqual(el, v) {
			return j
		}
	}
	return -1
}
