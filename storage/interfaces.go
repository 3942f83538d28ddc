// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"context"

	"github.com/poiesic/reviewpipe/core"
)

// RecordStore persists review records keyed by their identifier.
// Implementations must be thread-safe and support concurrent access.
type RecordStore interface {
	// PutRecord writes a record under its Identifier, replacing any record
	// already stored under that identifier.
	// Returns an error wrapping ErrWriteFailed if the write is rejected.
	PutRecord(ctx context.Context, record *core.Record) error

	// CountRecords returns the number of persisted records.
	CountRecords(ctx context.Context) (int64, error)

	// GetRecord retrieves a single record by identifier.
	// Returns ErrNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, id string) (*core.Record, error)

	// Close releases the store's resources.
	Close() error
}

// RecordLister is implemented by stores that can enumerate their records.
type RecordLister interface {
	// ListRecords returns every persisted record.
	ListRecords(ctx context.Context) ([]*core.Record, error)
}

// ObjectReader fetches uploaded objects from an object store.
type ObjectReader interface {
	// GetObject returns the full contents of key in container.
	// Returns an error wrapping ErrNotFound if the object doesn't exist.
	GetObject(ctx context.Context, container, key string) ([]byte, error)
}
