package ident

import "errors"

var (
	// ErrCounterRequired is returned when a count-based allocator has no counter.
	ErrCounterRequired = errors.New("record counter required")

	// ErrUnknownScheme is returned for an unrecognized identifier scheme name.
	ErrUnknownScheme = errors.New("unknown identifier scheme")
)
