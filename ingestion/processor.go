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
	"fmt"
	"log/slog"
	"sync"

	"github.com/poiesic/reviewpipe/core"
	"github.com/poiesic/reviewpipe/ident"
	"github.com/poiesic/reviewpipe/parser"
	"github.com/poiesic/reviewpipe/storage"
)

// fileProcessor handles a single notification from fetch to persistence.
type fileProcessor struct {
	reader    storage.ObjectReader
	store     storage.RecordStore
	allocator ident.Allocator
	parser    *parser.Parser
	uploads   *uploadLog
	logger    *slog.Logger

	// allocMu serializes identifier allocation with the write that follows
	// when identifiers derive from the record count.
	allocMu sync.Mutex
}

func newFileProcessor(
	reader storage.ObjectReader,
	store storage.RecordStore,
	allocator ident.Allocator,
	p *parser.Parser,
	uploads *uploadLog,
	logger *slog.Logger,
) *fileProcessor {
	return &fileProcessor{
		reader:    reader,
		store:     store,
		allocator: allocator,
		parser:    p,
		uploads:   uploads,
		logger:    logger.With("processor", "files"),
	}
}

// process runs one notification through the pipeline. It never fails; every
// problem is captured in the returned Outcome.
func (fp *fileProcessor) process(ctx context.Context, n core.Notification) Outcome {
	out := Outcome{Notification: n}
	logger := fp.logger.With("container", n.Container, "key", n.Key)
	logger.Info("processing notification", "kind", n.Kind.String())

	fp.uploads.record(n)

	if n.Kind != core.EventCreated {
		out.Status = StatusSkipped
		out.Err = ErrNotCreated
		logger.Info("skipping non-creation event")
		return out
	}

	if !fp.parser.Formats().Supports(n.Key) {
		out.Status = StatusSkipped
		out.Err = fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, n.Key)
		logger.Info("skipping unsupported file type")
		return out
	}

	content, err := fp.reader.GetObject(ctx, n.Container, n.Key)
	if err != nil {
		out.Status = StatusFetchFailed
		out.Err = err
		logger.Error("error reading object", "err", err)
		return out
	}
	out.Digest = contentDigest(content)

	result, err := fp.parser.Parse(string(content), n.Key)
	if err != nil {
		out.Status = StatusParseFailed
		out.Err = err
		logger.Error("error parsing object", "digest", out.Digest, "err", err)
		return out
	}
	out.Status = StatusProcessed
	out.EntriesSkipped = len(result.Skipped)

	for _, record := range result.Records {
		id, err := fp.persist(ctx, record)
		if err != nil {
			out.RecordFailures++
			logger.Error("error saving record", "id", id, "product", record.ProductName, "err", err)
			continue
		}
		out.Persisted = append(out.Persisted, id)
		logger.Debug("saved record", "id", id, "product", record.ProductName)
	}

	logger.Info("processed file",
		"digest", out.Digest,
		"bytes", len(content),
		"records", len(out.Persisted),
		"record_failures", out.RecordFailures,
		"skipped_entries", out.EntriesSkipped)
	return out
}

// persist allocates an identifier for record and writes it.
func (fp *fileProcessor) persist(ctx context.Context, record *core.Record) (string, error) {
	if fp.allocator.Ordered() {
		fp.allocMu.Lock()
		defer fp.allocMu.Unlock()
	}

	id := fp.allocator.Next(ctx)
	if err := record.AssignIdentifier(id); err != nil {
		return id, err
	}
	if err := fp.store.PutRecord(ctx, record); err != nil {
		return id, err
	}
	return id, nil
}
