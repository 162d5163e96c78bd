package types

import (
	"errors"
	"fmt"
)

// Model errors.
var (
	ErrSerialization    = errors.New("serialization failed")
	ErrParse            = errors.New("parse failed")
	ErrUnsupportedValue = errors.New("value is not JSON-representable")
	ErrNotObject        = errors.New("json value is not an object")
)

// SerializationError reports a stored value that could not be encoded.
// It unwraps to ErrSerialization and to the encoder's error.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", ErrSerialization, e.Err)
	}
	return fmt.Sprintf("%s: key %q: %v", ErrSerialization, e.Key, e.Err)
}

func (e *SerializationError) Unwrap() []error { return []error{ErrSerialization, e.Err} }

// ParseError reports malformed JSON text. Offset is the byte offset of the
// failure, or -1 when the decoder did not report one.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %v", ErrParse, e.Err)
	}
	return fmt.Sprintf("%s at offset %d: %v", ErrParse, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }
