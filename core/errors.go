package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrEmptyProductName indicates the ProductName field is empty.
	ErrEmptyProductName = errors.New("product name cannot be empty")

	// ErrEmptyComment indicates the Comment field is empty.
	ErrEmptyComment = errors.New("review comment cannot be empty")

	// ErrNonFiniteNumber indicates a numeric field holds NaN or an infinity.
	ErrNonFiniteNumber = errors.New("numeric field must be finite")

	// ErrEmptyIdentifier indicates an attempt to assign an empty identifier.
	ErrEmptyIdentifier = errors.New("identifier cannot be empty")

	// ErrIdentifierAssigned indicates the record already carries an identifier.
	ErrIdentifierAssigned = errors.New("identifier already assigned")

	// ErrUnsupportedFormat indicates a file name matches no known format.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
