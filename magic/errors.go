package magic

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when the buffer or stream to classify is nil.
var ErrInvalidInput = errors.New("invalid input")

// ReadError records a failed read of the input at a given offset.
type ReadError struct {
	Op     string
	Offset int64
	Err    error
}

// Error implements the error interface
func (e *ReadError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
}

// Unwrap returns the underlying error
func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsInvalidInput reports whether err indicates a nil input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsReadError reports whether err is a ReadError.
func IsReadError(err error) bool {
	var readErr *ReadError
	return errors.As(err, &readErr)
}
