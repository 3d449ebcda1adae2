package jsondiff

import (
	"encoding/json"
	"math/big"
)

// Equivalent reports whether two document values are structurally equal.
// Containers are compared recursively: arrays must have the same length and
// pairwise-equivalent elements, objects the same field set with equivalent
// values. Numbers are compared by mathematical value, not representation.
//
// Equivalent is the only notion of "unchanged" the diff engines use.
func Equivalent(a, b interface{}) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}

	switch ka {
	case KindNull:
		return true
	case KindBool:
		return a.(bool) == b.(bool)
	case KindString:
		return a.(string) == b.(string)
	case KindNumber:
		return numEqual(a, b)
	case KindArray:
		as, bs := a.([]interface{}), b.([]interface{})
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !Equivalent(as[i], bs[i]) {
				return false
			}
		}
		return true
	case KindObject:
		am, bm := a.(map[string]interface{}), b.(map[string]interface{})
		if len(am) != len(bm) {
			return false
		}
		for name, av := range am {
			bv, ok := bm[name]
			if !ok || !Equivalent(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

func numEqual(a, b interface{}) bool {
	ra, aok := numRat(a)
	rb, bok := numRat(b)
	if !aok || !bok {
		return false
	}
	return ra.Cmp(rb) == 0
}

// numRat normalizes any supported numeric representation to an exact
// rational. json.Number carries its decimal text, which big.Rat parses
// exactly, exponents included.
func numRat(v interface{}) (*big.Rat, bool) {
	switch x := v.(type) {
	case json.Number:
		return new(big.Rat).SetString(x.String())
	case float64:
		return ratFromFloat(x)
	case float32:
		return ratFromFloat(float64(x))
	case int:
		return new(big.Rat).SetInt64(int64(x)), true
	case int8:
		return new(big.Rat).SetInt64(int64(x)), true
	case int16:
		return new(big.Rat).SetInt64(int64(x)), true
	case int32:
		return new(big.Rat).SetInt64(int64(x)), true
	case int64:
		return new(big.Rat).SetInt64(x), true
	case uint:
		return new(big.Rat).SetUint64(uint64(x)), true
	case uint8:
		return new(big.Rat).SetUint64(uint64(x)), true
	case uint16:
		return new(big.Rat).SetUint64(uint64(x)), true
	case uint32:
		return new(big.Rat).SetUint64(uint64(x)), true
	case uint64:
		return new(big.Rat).SetUint64(x), true
	default:
		return nil, false
	}
}

// ratFromFloat guards against NaN and infinities, which SetFloat64 rejects
func ratFromFloat(f float64) (*big.Rat, bool) {
	r := new(big.Rat).SetFloat64(f)
	return r, r != nil
}
