package jsondiff

import (
	"github.com/agentflare-ai/jsonpointer"
)

// Sink receives diff events as the engines walk the two documents. Events
// arrive in a fixed order the caller can rely on: within an object, all
// removals, then all additions, then the results of recursing into shared
// fields. Methods are never called concurrently, and never before input
// validation has succeeded.
//
// ArrayElementRemoved and ArrayElementReplaced signal that a removal or
// replacement originated inside an array during keyed reconciliation; sinks
// that factor removals into moves must not treat these like ordinary field
// removals.
type Sink interface {
	ValueAdded(ptr jsonpointer.Pointer, value interface{})
	ValueRemoved(ptr jsonpointer.Pointer, value interface{})
	ValueReplaced(ptr jsonpointer.Pointer, oldValue, newValue interface{})
	ArrayElementRemoved(ptr jsonpointer.Pointer, value interface{})
	ArrayElementReplaced(ptr jsonpointer.Pointer, element, newValue interface{})
}

// Diff computes a patch that transforms source into target, comparing
// objects field by field and arrays position by position. Removal/addition
// pairs of equivalent values are factored into moves, and additions of
// values present unchanged in source become copies.
//
// There is no guarantee the patch is usable for any source/target pair other
// than the one it was generated from.
func Diff(source, target interface{}) (Patch, error) {
	if source == nil || target == nil {
		return nil, ErrNilDocument
	}
	sink := NewPatchSink(ComputeUnchanged(source, target))
	generateDiffs(sink, nil, source, target)
	return sink.Patch(), nil
}

// DiffKeyed is Diff with key-based array reconciliation: arrays listed in
// keys are matched element by element on the designated key field, and
// matched elements that differ produce field-level replacements scoped to
// the element rather than a whole-element remove and add.
func DiffKeyed(source, target interface{}, keys KeyFields) (Patch, error) {
	if source == nil || target == nil {
		return nil, ErrNilDocument
	}
	table, err := keys.compile()
	if err != nil {
		return nil, err
	}
	sink := NewPatchSink(ComputeUnchanged(source, target))
	generateKeyedDiffs(sink, nil, source, target, table)
	return sink.Patch(), nil
}

// Emit runs the positional diff walk, reporting events to sink. Callers that
// want the finished patch use Diff; Emit exists for custom sinks.
func Emit(sink Sink, source, target interface{}) error {
	if source == nil || target == nil {
		return ErrNilDocument
	}
	generateDiffs(sink, nil, source, target)
	return nil
}

// EmitKeyed runs the key-aware diff walk, reporting events to sink. The key
// table is validated in full before the first event is emitted.
func EmitKeyed(sink Sink, source, target interface{}, keys KeyFields) error {
	if source == nil || target == nil {
		return ErrNilDocument
	}
	table, err := keys.compile()
	if err != nil {
		return err
	}
	generateKeyedDiffs(sink, nil, source, target, table)
	return nil
}

func generateDiffs(sink Sink, ptr jsonpointer.Pointer, source, target interface{}) {
	if Equivalent(source, target) {
		return
	}

	sourceKind := KindOf(source)
	targetKind := KindOf(target)

	// kinds differ: generate a replacement operation
	if sourceKind != targetKind {
		sink.ValueReplaced(ptr, source, target)
		return
	}

	// same kind but not equivalent; scalars can only be replaced
	if !sourceKind.IsContainer() {
		sink.ValueReplaced(ptr, source, target)
		return
	}

	if sourceKind == KindObject {
		generateObjectDiffs(sink, ptr, source.(map[string]interface{}), target.(map[string]interface{}))
	} else {
		generateArrayDiffs(sink, ptr, source.([]interface{}), target.([]interface{}))
	}
}

// generateObjectDiffs emits all removals, then all additions, then recurses
// into shared fields, each group in lexicographic field order. Downstream
// move/copy factoring depends on removals preceding additions.
func generateObjectDiffs(sink Sink, ptr jsonpointer.Pointer, source, target map[string]interface{}) {
	sourceFields := sortedFieldNames(source)
	targetFields := sortedFieldNames(target)

	for _, field := range sourceFields {
		if _, ok := target[field]; !ok {
			sink.ValueRemoved(childField(ptr, field), source[field])
		}
	}
	for _, field := range targetFields {
		if _, ok := source[field]; !ok {
			sink.ValueAdded(childField(ptr, field), target[field])
		}
	}
	for _, field := range sourceFields {
		if _, ok := target[field]; ok {
			generateDiffs(sink, childField(ptr, field), source[field], target[field])
		}
	}
}

func generateArrayDiffs(sink Sink, ptr jsonpointer.Pointer, source, target []interface{}) {
	size := min(len(source), len(target))

	// Source array is larger: the tail is removed. Each removal shifts the
	// elements after it, so every one is addressed at the shrink boundary,
	// not at its original index.
	for i := size; i < len(source); i++ {
		sink.ValueRemoved(childIndex(ptr, size), source[i])
	}

	for i := 0; i < size; i++ {
		generateDiffs(sink, childIndex(ptr, i), source[i], target[i])
	}

	// target array is larger: append the extra elements in order
	for i := size; i < len(target); i++ {
		sink.ValueAdded(childEnd(ptr), target[i])
	}
}
