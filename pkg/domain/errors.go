package domain

import (
	"errors"
	"fmt"
)

// ErrSerialize is returned when a data or config value cannot be encoded to JSON.
var ErrSerialize = errors.New("cannot serialize value")

// ErrUnknownRenderer is returned when an invocation names a renderer outside the supported set.
var ErrUnknownRenderer = errors.New("unknown renderer")

// ErrMalformedScript is returned when a generated payload fails to parse as JavaScript.
var ErrMalformedScript = errors.New("malformed script")

// SerializationError reports which argument of an invocation failed to encode.
type SerializationError struct {
	Renderer RendererName
	Arg      string
	Err      error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s: cannot serialize argument %q: %v", e.Renderer, e.Arg, e.Err)
}

// Unwrap exposes both the sentinel and the encoder's own error.
func (e *SerializationError) Unwrap() []error {
	return []error{ErrSerialize, e.Err}
}
