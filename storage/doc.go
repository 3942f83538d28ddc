// Package storage defines the collaborators the ingestion pipeline reads
// from and writes to.
//
// # Architecture
//
//   - RecordStore: persists review records keyed by identifier and counts them
//   - ObjectReader: fetches uploaded files from an object store
//
// Backends live in sub-packages and are interchangeable:
//
//   - badger: embedded BadgerDB record store (local runs and tests)
//   - dynamo: DynamoDB record store (Identifier partition key)
//   - localfs: object reader over a directory tree, one directory per container
//   - s3objects: object reader over Amazon S3
//
// # Usage
//
// Open an embedded store:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	store := badger.NewRecordRepository(backend)
//
// Use in tests with in-memory storage:
//
//	store, backend, err := badger.NewMemoryRecordStore()
//
// # Storage contract
//
// Records carry the attributes Identifier, ProductName, Price,
// ReviewComment and Rating. The names are shared with data written by
// earlier deployments and must not change.
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines.
package storage
