package filemagic

import (
	"errors"
	"fmt"

	"github.com/gobeaver/filemagic/magic"
)

// Common errors
var (
	ErrInvalidInput     = magic.ErrInvalidInput
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidConfig    = errors.New("invalid config")
	ErrNotAllowed       = errors.New("label not allowed")
)

// SignatureError records a problem with one entry of a signature file.
type SignatureError struct {
	Index int
	Label string
	Err   error
}

// Error implements the error interface
func (e *SignatureError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("signature #%d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("signature #%d (%s): %v", e.Index, e.Label, e.Err)
}

// Unwrap returns the underlying error
func (e *SignatureError) Unwrap() error {
	return e.Err
}

// PolicyError records a label rejected by a LabelFilter.
type PolicyError struct {
	Label  string
	Reason string
}

// Error implements the error interface
func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrNotAllowed, e.Label, e.Reason)
}

// Unwrap returns ErrNotAllowed
func (e *PolicyError) Unwrap() error {
	return ErrNotAllowed
}

// IsInvalidInput reports whether an error indicates a nil buffer or stream
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvalidSignature reports whether an error comes from a malformed signature definition
func IsInvalidSignature(err error) bool {
	return errors.Is(err, ErrInvalidSignature)
}

// IsNotAllowed reports whether an error indicates a label rejected by policy
func IsNotAllowed(err error) bool {
	return errors.Is(err, ErrNotAllowed)
}
