package storage

import "errors"

var (
	// ErrNotFound indicates that the requested record or object was not found.
	ErrNotFound = errors.New("not found")

	// ErrWriteFailed indicates that a record could not be written.
	ErrWriteFailed = errors.New("write failed")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidKey indicates an object key that cannot be resolved safely.
	ErrInvalidKey = errors.New("invalid object key")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)
