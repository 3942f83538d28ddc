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


package ingestion

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/reviewpipe/core"
	"github.com/poiesic/reviewpipe/ident"
	"github.com/poiesic/reviewpipe/parser"
	"github.com/poiesic/reviewpipe/storage"
)

// Coordinator dispatches batches of notifications through fetch, parse,
// identifier allocation and persistence. It keeps no state between batches.
type Coordinator struct {
	reader    storage.ObjectReader
	store     storage.RecordStore
	allocator ident.Allocator
	formats   *core.FormatTable
	pool      *ants.Pool // nil when notifications run sequentially
	poolSize  int
	uploadLog io.Writer
	proc      *fileProcessor
	logger    *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator) error

// WithPoolSize sets how many notifications of a batch are processed
// concurrently. Default is 1: notifications run one at a time in batch order.
func WithPoolSize(size int) Option {
	return func(c *Coordinator) error {
		if size < 1 {
			size = 1
		}
		c.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithFormats sets the extension table deciding which files are ingested
// and how they are parsed. Default is core.DefaultFormats().
func WithFormats(formats *core.FormatTable) Option {
	return func(c *Coordinator) error {
		if formats != nil {
			c.formats = formats
		}
		return nil
	}
}

// WithUploadLog appends one line per received notification to w.
func WithUploadLog(w io.Writer) Option {
	return func(c *Coordinator) error {
		c.uploadLog = w
		return nil
	}
}

// NewCoordinator creates a new ingestion coordinator.
func NewCoordinator(
	reader storage.ObjectReader,
	store storage.RecordStore,
	allocator ident.Allocator,
	opts ...Option,
) (*Coordinator, error) {
	if reader == nil {
		return nil, ErrObjectReaderRequired
	}
	if store == nil {
		return nil, ErrRecordStoreRequired
	}
	if allocator == nil {
		return nil, ErrAllocatorRequired
	}

	c := &Coordinator{
		reader:    reader,
		store:     store,
		allocator: allocator,
		formats:   core.DefaultFormats(),
		poolSize:  1,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.poolSize > 1 {
		pool, err := ants.NewPool(c.poolSize)
		if err != nil {
			return nil, err
		}
		c.pool = pool
	}

	// Create the processor after options are applied (so it gets final config)
	c.proc = newFileProcessor(
		reader,
		store,
		allocator,
		parser.New(parser.WithFormats(c.formats), parser.WithLogger(c.logger)),
		newUploadLog(c.uploadLog, c.logger),
		c.logger,
	)

	return c, nil
}

// Handle processes every notification in batch and returns the aggregated
// summary. It always runs the whole batch: per-item failures are recorded in
// the summary, never returned. ctx is passed to the collaborators only.
func (c *Coordinator) Handle(ctx context.Context, batch []core.Notification) *Summary {
	c.logger.Info("processing batch", "notifications", len(batch))

	outcomes := make([]Outcome, len(batch))
	if c.pool == nil || len(batch) < 2 {
		for i, n := range batch {
			outcomes[i] = c.proc.process(ctx, n)
		}
	} else {
		var wg sync.WaitGroup
		for i, n := range batch {
			wg.Add(1)
			err := c.pool.Submit(func() {
				defer wg.Done()
				outcomes[i] = c.proc.process(ctx, n)
			})
			if err != nil {
				wg.Done()
				c.logger.Warn("worker pool rejected notification, processing inline", "key", n.Key, "err", err)
				outcomes[i] = c.proc.process(ctx, n)
			}
		}
		wg.Wait()
	}

	summary := summarize(outcomes)
	c.logger.Info("batch complete",
		"notifications", summary.Notifications,
		"persisted", summary.RecordsPersisted,
		"file_failures", summary.FileFailures,
		"record_failures", summary.RecordFailures,
		"skipped_files", summary.FilesSkipped,
		"skipped_entries", summary.EntriesSkipped)
	return summary
}

// Release releases resources including the worker pool.
// The coordinator should not be used after calling Release.
func (c *Coordinator) Release() {
	if c.pool != nil {
		c.pool.Release()
	}
}
