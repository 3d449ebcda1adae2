package jsondiff

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/agentflare-ai/jsonpointer"
)

// endOfArray is the RFC 6901 token addressing the position past the last
// element of an array; additions emitted there mean "append".
const endOfArray = "-"

// childField returns a new pointer addressing the named field under p.
// Pointers are treated as immutable: append always copies.
func childField(p jsonpointer.Pointer, field string) jsonpointer.Pointer {
	return child(p, field)
}

// childIndex returns a new pointer addressing the i'th element under p.
func childIndex(p jsonpointer.Pointer, i int) jsonpointer.Pointer {
	return child(p, strconv.Itoa(i))
}

// childEnd returns a new pointer addressing the append position under p.
func childEnd(p jsonpointer.Pointer) jsonpointer.Pointer {
	return child(p, endOfArray)
}

func child(p jsonpointer.Pointer, token string) jsonpointer.Pointer {
	out := make(jsonpointer.Pointer, len(p)+1)
	copy(out, p)
	out[len(p)] = token
	return out
}

// KeyFields designates, per array location, the field used to match that
// array's elements by identity across the two documents. Locations are JSON
// Pointer strings addressing the array itself, e.g.
//
//	jsondiff.KeyFields{"/spec/containers": "name"}
//
// An empty field name means no identity key is configured for that array:
// its elements are matched by whole-value equality, the same fallback used
// for arrays with no entry at all.
type KeyFields map[string]string

// compile parses and normalizes the caller's table so lookups during the
// walk compare canonical pointer strings.
func (kf KeyFields) compile() (map[string]string, error) {
	table := make(map[string]string, len(kf))
	for loc, field := range kf {
		ptr, err := jsonpointer.New(loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedPointer, loc, err)
		}
		table[ptr.String()] = field
	}
	return table, nil
}

// sortedFieldNames returns an object's field names in lexicographic order,
// the iteration order every deterministic walk in this package relies on.
func sortedFieldNames(obj map[string]interface{}) []string {
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
