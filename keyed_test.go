package jsondiff

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKeyedArrayDiffing(t *testing.T) {
	cases := []TestCase{
		{
			description: "matched element produces field-level replace",
			src:         `{"items":[{"id":1,"v":"a"}]}`,
			dst:         `{"items":[{"id":1,"v":"b"}]}`,
			keys:        KeyFields{"/items": "id"},
			expect: Patch{
				{Op: OpReplace, Path: "/items/0/v", Value: "b"},
			},
		},
		{
			description: "reordered elements with equal content are unchanged",
			src:         `{"items":[{"id":1,"v":"a"},{"id":2,"v":"b"}]}`,
			dst:         `{"items":[{"id":2,"v":"b"},{"id":1,"v":"a"}]}`,
			keys:        KeyFields{"/items": "id"},
			expect:      Patch{},
		},
		{
			description: "unmatched source element is removed at its own index",
			src:         `{"items":[{"id":1},{"id":2}]}`,
			dst:         `{"items":[{"id":1}]}`,
			keys:        KeyFields{"/items": "id"},
			expect: Patch{
				{Op: OpRemove, Path: "/items/1"},
			},
		},
		{
			description: "unmatched target element is appended",
			src:         `{"items":[{"id":1}]}`,
			dst:         `{"items":[{"id":1},{"id":2}]}`,
			keys:        KeyFields{"/items": "id"},
			expect: Patch{
				{Op: OpAdd, Path: "/items/-", Value: map[string]interface{}{"id": float64(2)}},
			},
		},
		{
			description: "field missing from matched target element replaces with null",
			src:         `{"items":[{"id":1,"x":2}]}`,
			dst:         `{"items":[{"id":1}]}`,
			keys:        KeyFields{"/items": "id"},
			expect: Patch{
				{Op: OpReplace, Path: "/items/0/x", Value: nil},
			},
		},
		{
			description: "field only in matched target element replaces at its path",
			src:         `{"items":[{"id":1}]}`,
			dst:         `{"items":[{"id":1,"y":3}]}`,
			keys:        KeyFields{"/items": "id"},
			expect: Patch{
				{Op: OpReplace, Path: "/items/0/y", Value: float64(3)},
			},
		},
		{
			description: "string and numeric keys are distinct identities",
			src:         `{"items":[{"id":1,"v":"a"}]}`,
			dst:         `{"items":[{"id":"1","v":"a"}]}`,
			keys:        KeyFields{"/items": "id"},
			expect: Patch{
				{Op: OpRemove, Path: "/items/0"},
				{Op: OpAdd, Path: "/items/-", Value: map[string]interface{}{"id": "1", "v": "a"}},
			},
		},
		{
			description: "duplicate target keys each diff against the source element",
			src:         `{"items":[{"id":1,"v":"a"}]}`,
			dst:         `{"items":[{"id":1,"v":"b"},{"id":1,"v":"c"}]}`,
			keys:        KeyFields{"/items": "id"},
			expect: Patch{
				{Op: OpReplace, Path: "/items/0/v", Value: "b"},
				{Op: OpReplace, Path: "/items/0/v", Value: "c"},
			},
		},
		{
			description: "keyless elements fall back to whole-value matching",
			src:         `{"items":[{"id":1},"x"]}`,
			dst:         `{"items":[{"id":1},"y"]}`,
			keys:        KeyFields{"/items": "id"},
			expect: Patch{
				{Op: OpRemove, Path: "/items/1"},
				{Op: OpAdd, Path: "/items/-", Value: "y"},
			},
		},
		{
			description: "arrays without a key entry match whole values",
			src:         `{"tags":["a","b"]}`,
			dst:         `{"tags":["b","c"]}`,
			keys:        KeyFields{"/items": "id"},
			expect: Patch{
				{Op: OpRemove, Path: "/tags/0"},
				{Op: OpAdd, Path: "/tags/-", Value: "c"},
			},
		},
	}

	RunKeyedTestCases(t, cases)
}

func TestKeyedEmptyTransitions(t *testing.T) {
	cases := []TestCase{
		{
			description: "null to empty container produces no operation",
			src:         `{"a":null}`,
			dst:         `{"a":[]}`,
			keys:        KeyFields{},
			expect:      Patch{},
		},
		{
			description: "empty container to null produces no operation",
			src:         `{"a":{}}`,
			dst:         `{"a":null}`,
			keys:        KeyFields{},
			expect:      Patch{},
		},
		{
			description: "empty object to empty array produces no operation",
			src:         `{}`,
			dst:         `[]`,
			keys:        KeyFields{},
			expect:      Patch{},
		},
		{
			description: "empty to populated array adds each element at the array path",
			src:         `{"a":[]}`,
			dst:         `{"a":[1,2]}`,
			keys:        KeyFields{},
			expect: Patch{
				{Op: OpAdd, Path: "/a", Value: float64(1)},
				{Op: OpAdd, Path: "/a", Value: float64(2)},
			},
		},
		{
			description: "empty to populated object adds the whole object",
			src:         `{"a":{}}`,
			dst:         `{"a":{"b":1}}`,
			keys:        KeyFields{},
			expect: Patch{
				{Op: OpAdd, Path: "/a", Value: map[string]interface{}{"b": float64(1)}},
			},
		},
		{
			description: "populated to empty array removes each element at its index",
			src:         `{"a":[1,2]}`,
			dst:         `{"a":[]}`,
			keys:        KeyFields{},
			expect: Patch{
				{Op: OpRemove, Path: "/a/0"},
				{Op: OpRemove, Path: "/a/1"},
			},
		},
		{
			description: "same-kind scalars still replace",
			src:         `{"a":1}`,
			dst:         `{"a":2}`,
			keys:        KeyFields{},
			expect: Patch{
				{Op: OpReplace, Path: "/a", Value: float64(2)},
			},
		},
		{
			description: "scalar kind changes produce no operation",
			src:         `{"a":1}`,
			dst:         `{"a":"1"}`,
			keys:        KeyFields{},
			expect:      Patch{},
		},
		{
			description: "removed container field removes element by element",
			src:         `{"gone":[1,2],"keep":true}`,
			dst:         `{"keep":true}`,
			keys:        KeyFields{},
			expect: Patch{
				{Op: OpRemove, Path: "/gone/0"},
				{Op: OpRemove, Path: "/gone/1"},
			},
		},
		{
			description: "removed scalar field removes normally",
			src:         `{"gone":1,"keep":true}`,
			dst:         `{"keep":true}`,
			keys:        KeyFields{},
			expect: Patch{
				{Op: OpRemove, Path: "/gone"},
			},
		},
	}

	RunKeyedTestCases(t, cases)
}

// decodeNumbers unmarshals with json.Number so numeric representations
// survive decoding instead of collapsing to float64
func decodeNumbers(t *testing.T, data string) interface{} {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestMatchedElementUsesPlainEquality(t *testing.T) {
	// fields inside a matched array element compare by plain equality, not
	// the numeric-aware equivalence the rest of the package uses, so a
	// representation-only change like 1 -> 1.0 is reported there. The
	// documents must differ somewhere by value too: a document pair that is
	// fully equivalent never reaches the element walk at all.
	src := decodeNumbers(t, `{"items":[{"id":1,"v":1,"w":"old"}]}`)
	dst := decodeNumbers(t, `{"items":[{"id":1,"v":1.0,"w":"new"}]}`)

	patch, err := DiffKeyed(src, dst, KeyFields{"/items": "id"})
	if err != nil {
		t.Fatal(err)
	}
	expect := Patch{
		{Op: OpReplace, Path: "/items/0/v", Value: json.Number("1.0")},
		{Op: OpReplace, Path: "/items/0/w", Value: "new"},
	}
	if diff := cmp.Diff(expect, patch); diff != "" {
		t.Errorf("keyed patch mismatch (-want +got):\n%s", diff)
	}

	// the positional engine compares the same field with numeric
	// equivalence and sees only the string change
	positional, err := Diff(src, dst)
	if err != nil {
		t.Fatal(err)
	}
	expect = Patch{
		{Op: OpReplace, Path: "/items/0/w", Value: "new"},
	}
	if diff := cmp.Diff(expect, positional); diff != "" {
		t.Errorf("positional patch mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchedElementEquivalentDocumentsShortCircuit(t *testing.T) {
	// when 1 -> 1.0 is the only difference the documents are equivalent,
	// so neither engine emits anything and the element-level asymmetry is
	// unobservable
	src := decodeNumbers(t, `{"items":[{"id":1,"v":1}]}`)
	dst := decodeNumbers(t, `{"items":[{"id":1,"v":1.0}]}`)

	patch, err := DiffKeyed(src, dst, KeyFields{"/items": "id"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Patch{}, patch); diff != "" {
		t.Errorf("expected empty patch (-want +got):\n%s", diff)
	}
}

func TestKeyedMalformedPointer(t *testing.T) {
	var src, dst interface{}
	if err := json.Unmarshal([]byte(`{"items":[]}`), &src); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(`{"items":[]}`), &dst); err != nil {
		t.Fatal(err)
	}

	_, err := DiffKeyed(src, dst, KeyFields{"items": "id"})
	if !errors.Is(err, ErrMalformedPointer) {
		t.Errorf("expected ErrMalformedPointer, got %v", err)
	}
}
