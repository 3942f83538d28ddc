package ident

import "fmt"

// Identifier scheme names accepted by New.
const (
	SchemeSequential = "sequential"
	SchemeUUID       = "uuid"
)

// New builds the allocator for the named scheme. An empty name selects
// SchemeSequential.
func New(scheme string, counter Counter, opts ...CountOption) (Allocator, error) {
	switch scheme {
	case "", SchemeSequential:
		a, err := NewCountAllocator(counter, opts...)
		if err != nil {
			return nil, err
		}
		return a, nil
	case SchemeUUID:
		return UUIDAllocator{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}
