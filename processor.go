package jsondiff

import (
	"sort"

	"github.com/agentflare-ai/jsonpointer"
)

type opKind int

const (
	opAdd opKind = iota
	opRemove
	opReplace
	opMove
	opCopy
	opArrayRemove
	opArrayReplace
)

// diffOp is a pending operation, kept in richer form than Operation so
// factoring can inspect removed values before serialization.
type diffOp struct {
	kind     opKind
	from     jsonpointer.Pointer
	path     jsonpointer.Pointer
	oldValue interface{}
	value    interface{}
}

// PatchSink collects diff events into an RFC 6902 patch. An addition whose
// value matches a pending removal consumes it and becomes a move; an
// addition whose value is available unchanged in the source becomes a copy.
// Array-scoped removals and replacements never participate in factoring.
type PatchSink struct {
	unchanged     map[string]interface{}
	unchangedKeys []string
	ops           []diffOp
}

// NewPatchSink returns a sink that factors additions against the given
// unchanged-location map, normally the result of ComputeUnchanged. A nil
// map disables copy factoring.
func NewPatchSink(unchanged map[string]interface{}) *PatchSink {
	keys := make([]string, 0, len(unchanged))
	for k := range unchanged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &PatchSink{unchanged: unchanged, unchangedKeys: keys}
}

func (s *PatchSink) ValueRemoved(ptr jsonpointer.Pointer, value interface{}) {
	s.ops = append(s.ops, diffOp{kind: opRemove, path: ptr, oldValue: value})
}

func (s *PatchSink) ValueReplaced(ptr jsonpointer.Pointer, oldValue, newValue interface{}) {
	s.ops = append(s.ops, diffOp{kind: opReplace, path: ptr, oldValue: oldValue, value: newValue})
}

func (s *PatchSink) ArrayElementRemoved(ptr jsonpointer.Pointer, value interface{}) {
	s.ops = append(s.ops, diffOp{kind: opArrayRemove, path: ptr, oldValue: value})
}

func (s *PatchSink) ArrayElementReplaced(ptr jsonpointer.Pointer, element, newValue interface{}) {
	s.ops = append(s.ops, diffOp{kind: opArrayReplace, path: ptr, oldValue: element, value: newValue})
}

func (s *PatchSink) ValueAdded(ptr jsonpointer.Pointer, value interface{}) {
	if i := s.findRemoved(value); i != -1 {
		from := s.ops[i].path
		s.ops = append(s.ops[:i], s.ops[i+1:]...)
		s.ops = append(s.ops, diffOp{kind: opMove, from: from, path: ptr, value: value})
		return
	}
	if from, ok := s.findUnchanged(value); ok {
		s.ops = append(s.ops, diffOp{kind: opCopy, from: from, path: ptr, value: value})
		return
	}
	s.ops = append(s.ops, diffOp{kind: opAdd, path: ptr, value: value})
}

// findRemoved locates the earliest pending plain removal of an equivalent
// value. Array-scoped removals are skipped: removing an array element shifts
// its siblings, so its path is not a stable move source.
func (s *PatchSink) findRemoved(value interface{}) int {
	for i, op := range s.ops {
		if op.kind == opRemove && Equivalent(value, op.oldValue) {
			return i
		}
	}
	return -1
}

// findUnchanged scans unchanged locations in sorted pointer order so the
// chosen copy source is deterministic.
func (s *PatchSink) findUnchanged(value interface{}) (jsonpointer.Pointer, bool) {
	for _, key := range s.unchangedKeys {
		if Equivalent(value, s.unchanged[key]) {
			ptr, err := jsonpointer.New(key)
			if err != nil {
				continue
			}
			return ptr, true
		}
	}
	return nil, false
}

// Patch serializes the collected operations. Array-scoped removals and
// replacements surface as ordinary remove and replace operations; the
// distinction only matters before this point.
func (s *PatchSink) Patch() Patch {
	patch := make(Patch, 0, len(s.ops))
	for _, op := range s.ops {
		patch = append(patch, op.operation())
	}
	return patch
}

func (op diffOp) operation() Operation {
	switch op.kind {
	case opRemove, opArrayRemove:
		return Operation{Op: OpRemove, Path: op.path.String()}
	case opReplace, opArrayReplace:
		return Operation{Op: OpReplace, Path: op.path.String(), Value: op.value}
	case opMove:
		return Operation{Op: OpMove, From: op.from.String(), Path: op.path.String()}
	case opCopy:
		return Operation{Op: OpCopy, From: op.from.String(), Path: op.path.String()}
	default:
		return Operation{Op: OpAdd, Path: op.path.String(), Value: op.value}
	}
}
