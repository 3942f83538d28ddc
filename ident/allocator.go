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


// Package ident allocates identifiers for persisted review records.
package ident

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Allocator hands out identifiers for new records.
type Allocator interface {
	// Next returns a fresh identifier. It never fails; allocators with a
	// fallible collaborator degrade to a fallback scheme instead.
	Next(ctx context.Context) string

	// Ordered reports whether identifiers derive from the store's current
	// contents. Callers must then serialize Next with the write that follows.
	Ordered() bool
}

// Counter reports how many records are persisted.
type Counter interface {
	CountRecords(ctx context.Context) (int64, error)
}

// CountAllocator derives identifiers from the persisted record count
// ("count + 1"), matching identifiers written by earlier deployments.
// When counting fails it falls back to the current Unix time in milliseconds,
// bumped so that successive fallback values never repeat.
//
// Concurrent callers racing between Next and the corresponding write can
// observe the same count; see Allocator.Ordered.
type CountAllocator struct {
	counter Counter
	now     func() time.Time
	logger  *slog.Logger

	mu           sync.Mutex
	lastFallback int64
}

var _ Allocator = (*CountAllocator)(nil)

// CountOption configures a CountAllocator.
type CountOption func(*CountAllocator)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) CountOption {
	return func(a *CountAllocator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithClock overrides the time source used by the fallback scheme.
func WithClock(now func() time.Time) CountOption {
	return func(a *CountAllocator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewCountAllocator creates a count-based allocator.
func NewCountAllocator(counter Counter, opts ...CountOption) (*CountAllocator, error) {
	if counter == nil {
		return nil, ErrCounterRequired
	}
	a := &CountAllocator{
		counter: counter,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("allocator", "count")
	return a, nil
}

// Next returns count+1, or a timestamp-derived identifier if counting fails.
func (a *CountAllocator) Next(ctx context.Context) string {
	count, err := a.counter.CountRecords(ctx)
	if err != nil {
		id := a.fallback()
		a.logger.Warn("record count failed, using timestamp identifier", "err", err, "id", id)
		return id
	}
	id := strconv.FormatInt(count+1, 10)
	a.logger.Debug("generated identifier", "id", id)
	return id
}

// Ordered is true: the identifier depends on the current record count.
func (a *CountAllocator) Ordered() bool {
	return true
}

func (a *CountAllocator) fallback() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	ms := a.now().UnixMilli()
	if ms <= a.lastFallback {
		ms = a.lastFallback + 1
	}
	a.lastFallback = ms
	return strconv.FormatInt(ms, 10)
}

// UUIDAllocator issues random version 4 UUIDs. Identifiers do not depend on
// the store, so allocation needs no coordination with writes.
type UUIDAllocator struct{}

var _ Allocator = UUIDAllocator{}

// Next returns a new random UUID string.
func (UUIDAllocator) Next(context.Context) string {
	return uuid.NewString()
}

// Ordered is false for random identifiers.
func (UUIDAllocator) Ordered() bool {
	return false
}
