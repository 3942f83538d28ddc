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
	"fmt"

	"github.com/poiesic/reviewpipe/core"
)

// Status classifies what happened to one notification.
type Status int

const (
	// StatusProcessed means the file was fetched and parsed; individual
	// records may still have failed or been skipped.
	StatusProcessed Status = iota + 1
	// StatusSkipped means the notification was ignored (not a creation event
	// or an unsupported file type).
	StatusSkipped
	// StatusFetchFailed means the object could not be read.
	StatusFetchFailed
	// StatusParseFailed means the content was not valid in its format.
	StatusParseFailed
)

func (s Status) String() string {
	switch s {
	case StatusProcessed:
		return "processed"
	case StatusSkipped:
		return "skipped"
	case StatusFetchFailed:
		return "fetch failed"
	case StatusParseFailed:
		return "parse failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of handling one notification.
type Outcome struct {
	Notification   core.Notification
	Status         Status
	Digest         string   // BLAKE2b digest of the fetched content
	Persisted      []string // identifiers written, in source order
	EntriesSkipped int      // malformed entries dropped by the parser
	RecordFailures int      // records whose write failed
	Err            error    // skip reason or file-level failure
}

// Failed reports whether the notification failed at the fetch or parse stage.
func (o *Outcome) Failed() bool {
	return o.Status == StatusFetchFailed || o.Status == StatusParseFailed
}

// Summary aggregates the outcomes of one batch.
type Summary struct {
	Notifications    int
	FilesProcessed   int
	FilesSkipped     int
	FileFailures     int
	EntriesSkipped   int
	RecordsPersisted int
	RecordFailures   int
	Outcomes         []Outcome // in batch order
}

func summarize(outcomes []Outcome) *Summary {
	s := &Summary{
		Notifications: len(outcomes),
		Outcomes:      outcomes,
	}
	for i := range outcomes {
		o := &outcomes[i]
		switch {
		case o.Status == StatusProcessed:
			s.FilesProcessed++
		case o.Status == StatusSkipped:
			s.FilesSkipped++
		case o.Failed():
			s.FileFailures++
		}
		s.EntriesSkipped += o.EntriesSkipped
		s.RecordsPersisted += len(o.Persisted)
		s.RecordFailures += o.RecordFailures
	}
	return s
}

// Failed reports whether every notification in a non-empty batch failed at
// the fetch or parse stage. Partial success is not a failure.
func (s *Summary) Failed() bool {
	return s.Notifications > 0 && s.FileFailures == s.Notifications
}

// String renders the status line returned to the invoking host.
func (s *Summary) String() string {
	verdict := "Processing completed"
	if s.Failed() {
		verdict = "Processing failed"
	}
	return fmt.Sprintf("%s: %d notifications, %d records persisted, %d file failures, %d record failures, %d skipped files, %d skipped entries",
		verdict, s.Notifications, s.RecordsPersisted, s.FileFailures, s.RecordFailures, s.FilesSkipped, s.EntriesSkipped)
}
