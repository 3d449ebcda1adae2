package jsondiff

import "errors"

var (
	// ErrNilDocument is returned when either top-level input to a diff is a
	// nil interface. JSON null cannot appear as a document root here: a nil
	// interface is indistinguishable from a missing argument.
	ErrNilDocument = errors.New("jsondiff: nil document")

	// ErrMalformedPointer wraps a KeyFields entry whose location cannot be
	// parsed as a JSON Pointer.
	ErrMalformedPointer = errors.New("jsondiff: malformed pointer")
)
