package jsondiff

import (
	"encoding/json"
)

// Op enumerates RFC 6902 operation types. Test operations are never
// generated.
type Op string

const (
	// OpAdd inserts a value at Path
	OpAdd = Op("add")
	// OpRemove deletes the value at Path
	OpRemove = Op("remove")
	// OpReplace substitutes the value at Path
	OpReplace = Op("replace")
	// OpMove relocates the value at From to Path
	OpMove = Op("move")
	// OpCopy duplicates the value at From to Path
	OpCopy = Op("copy")
)

// Operation is a single RFC 6902 patch operation. From is set only for move
// and copy; Value only for add and replace.
type Operation struct {
	Op    Op          `json:"op"`
	Path  string      `json:"path"`
	From  string      `json:"from,omitempty"`
	Value interface{} `json:"value,omitempty"`
}

// MarshalJSON always emits the value field for add and replace, even when
// the value is JSON null, which omitempty on an interface would drop.
func (op Operation) MarshalJSON() ([]byte, error) {
	out := struct {
		Op    Op               `json:"op"`
		Path  string           `json:"path"`
		From  string           `json:"from,omitempty"`
		Value *json.RawMessage `json:"value,omitempty"`
	}{Op: op.Op, Path: op.Path, From: op.From}

	if op.Op == OpAdd || op.Op == OpReplace {
		raw, err := json.Marshal(op.Value)
		if err != nil {
			return nil, err
		}
		rm := json.RawMessage(raw)
		out.Value = &rm
	}
	return json.Marshal(out)
}

// Patch is an ordered list of operations. Applying them in order to the
// source document yields the target document.
type Patch []Operation

// MarshalJSON encodes a nil patch as an empty array rather than null, so
// "no differences" serializes to a valid, applicable patch document.
func (p Patch) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Operation(p))
}
