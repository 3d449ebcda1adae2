package jsondiff

import (
	"encoding/json"
	"fmt"
)

// Kind enumerates the JSON variants a document value can take
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	default:
		return "<unknown kind>"
	}
}

// IsContainer reports whether values of this kind have addressable children
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// KindOf maps a decoded document value to its Kind. Values outside the
// JSON-like universe panic, so mistakes surface at the call site rather than
// as silently wrong diffs.
func KindOf(v interface{}) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case string:
		return KindString
	case json.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case []interface{}:
		return KindArray
	case map[string]interface{}:
		return KindObject
	default:
		panic(fmt.Sprintf("jsondiff: unexpected type: %T", v))
	}
}

// sizeOf counts the addressable children of v. Scalars have size 0, matching
// the semantics the keyed engine's empty-container short-circuits depend on.
func sizeOf(v interface{}) int {
	switch x := v.(type) {
	case []interface{}:
		return len(x)
	case map[string]interface{}:
		return len(x)
	default:
		return 0
	}
}
