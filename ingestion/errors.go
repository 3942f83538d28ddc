package ingestion

import "errors"

var (
	// ErrObjectReaderRequired is returned when an object reader is not provided.
	ErrObjectReaderRequired = errors.New("object reader required")

	// ErrRecordStoreRequired is returned when a record store is not provided.
	ErrRecordStoreRequired = errors.New("record store required")

	// ErrAllocatorRequired is returned when an identifier allocator is not provided.
	ErrAllocatorRequired = errors.New("identifier allocator required")

	// ErrNotCreated marks notifications skipped because they are not object creations.
	ErrNotCreated = errors.New("not an object creation event")
)
