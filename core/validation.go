package core

import (
	"fmt"
	"math"
)

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - ProductName must not be empty
//   - Comment must not be empty
//   - Price and Rating must be finite numbers
//
// NOT validated:
//   - Identifier (empty until allocation)
//   - Price sign (negative prices are accepted as-is)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.ProductName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyProductName)
	}

	if record.Comment == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyComment)
	}

	if !IsFinite(record.Price) {
		return fmt.Errorf("%w: price: %w", ErrInvalidRecord, ErrNonFiniteNumber)
	}

	if !IsFinite(record.Rating) {
		return fmt.Errorf("%w: rating: %w", ErrInvalidRecord, ErrNonFiniteNumber)
	}

	return nil
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
