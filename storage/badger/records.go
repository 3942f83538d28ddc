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


package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/reviewpipe/core"
	"github.com/poiesic/reviewpipe/storage"
)

// RecordRepository implements storage.RecordStore for BadgerDB.
type RecordRepository struct {
	backend *Backend
}

var (
	_ storage.RecordStore  = (*RecordRepository)(nil)
	_ storage.RecordLister = (*RecordRepository)(nil)
)

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(backend *Backend) *RecordRepository {
	return &RecordRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend is owned and closed by the caller.
func (r *RecordRepository) Close() error {
	return nil
}

// PutRecord stores a record under its identifier.
func (r *RecordRepository) PutRecord(ctx context.Context, record *core.Record) error {
	if record == nil || record.Identifier == "" {
		return fmt.Errorf("%w: %w", storage.ErrWriteFailed, core.ErrEmptyIdentifier)
	}
	if r.backend.IsClosed() {
		return fmt.Errorf("%w: %w", storage.ErrWriteFailed, storage.ErrStorageClosed)
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRecordKey(record.Identifier)
		if err := tx.Set(key, storage.MarshalRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrWriteFailed, err)
	}
	return nil
}

// CountRecords counts stored review records.
func (r *RecordRepository) CountRecords(ctx context.Context) (int64, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}
	return r.backend.CountPrefix(recordKeyPrefix())
}

// GetRecord retrieves a single record by identifier.
func (r *RecordRepository) GetRecord(ctx context.Context, id string) (*core.Record, error) {
	var result *core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRecordKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalRecord(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// ListRecords returns every stored record in key order.
func (r *RecordRepository) ListRecords(ctx context.Context) ([]*core.Record, error) {
	var results []*core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = recordKeyPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.Record
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, record)
		}
		return nil
	}, false)
	return results, err
}
