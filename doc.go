// Package jsondiff computes a semantic, ordered sequence of edit operations
// (an RFC 6902 patch) that transforms one JSON-like document into another.
//
// Instead of operating on encoded JSON, jsondiff operates on the go types
// created by unmarshaling JSON into an interface value, which are two complex
// types:
//
//	map[string]interface{}
//	[]interface{}
//
// and the scalar types string, bool, nil and any numeric type, including
// json.Number. Numbers always compare by mathematical value, so 1 and 1.0
// are the same number regardless of representation.
//
// The differ is positional: objects are compared field by field and arrays
// index by index, in the manner of the json-patch diff utilities. It emits
// operations in a fixed order (removals, then additions, then the edits
// found by recursing into shared fields)
// and factors removal/addition pairs into move operations, or copy operations
// when an added value already exists unchanged in the source document.
//
// On top of the positional diff, DiffKeyed reconciles array elements by
// identity rather than by position: callers designate a key field per array
// location, and elements whose key matches on both sides are diffed field by
// field instead of being removed and re-added. See KeyFields for details.
//
// jsondiff generates patches; it does not apply them. Any RFC 6902 applier
// can consume the output.
package jsondiff
