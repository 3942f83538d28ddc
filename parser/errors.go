package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedContent indicates the content is not valid in its claimed format.
	ErrMalformedContent = errors.New("malformed content")

	// ErrMissingField indicates a required field is absent or null.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidNumber indicates a numeric field holds a non-numeric value.
	ErrInvalidNumber = errors.New("invalid numeric value")

	// ErrInvalidEntry indicates an entry is not a review object.
	ErrInvalidEntry = errors.New("invalid entry")
)

// SyntaxError reports structured content that could not be decoded at all.
type SyntaxError struct {
	Hint string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrMalformedContent, e.Hint, e.Err)
}

func (e *SyntaxError) Unwrap() []error {
	return []error{ErrMalformedContent, e.Err}
}

// fieldError names the field that caused an entry to be skipped.
func fieldError(kind error, field string) error {
	return fmt.Errorf("%w: %s", kind, field)
}
