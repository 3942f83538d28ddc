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


package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/reviewpipe/core"
)

// Field names shared by both layouts.
const (
	FieldProductName = "ProductName"
	FieldPrice       = "Price"
	FieldReview      = "Review"
	FieldRating      = "Rating"
)

// Skip describes one entry or segment that was dropped from a parse.
type Skip struct {
	Index  int   // position of the entry (structured) or segment (delimited)
	Reason error // wraps ErrMissingField, ErrInvalidNumber, ErrInvalidEntry or core.ErrInvalidRecord
}

// Result holds the outcome of parsing one file.
type Result struct {
	Format  core.Format
	Records []*core.Record
	Skipped []Skip
}

// Parser turns raw file contents into review records.
// A Parser is immutable and safe for concurrent use.
type Parser struct {
	formats   *core.FormatTable
	delimited *delimitedParser
	logger    *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithFormats sets the extension table used to pick a layout.
// Default is core.DefaultFormats().
func WithFormats(formats *core.FormatTable) Option {
	return func(p *Parser) {
		if formats != nil {
			p.formats = formats
		}
	}
}

// WithLogger sets the logger that receives skip diagnostics.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		formats:   core.DefaultFormats(),
		delimited: newDelimitedParser(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "parser")
	return p
}

// Formats returns the parser's extension table.
func (p *Parser) Formats() *core.FormatTable {
	return p.formats
}

// Parse converts content into records using the layout selected by hint,
// usually the object key. Malformed entries are skipped and reported in the
// result; the returned error is reserved for an unknown format
// (core.ErrUnsupportedFormat) and undecodable structured content (*SyntaxError).
func (p *Parser) Parse(content, hint string) (*Result, error) {
	format, err := p.formats.Lookup(hint)
	if err != nil {
		return nil, err
	}

	result := &Result{Format: format}
	if strings.TrimSpace(content) == "" {
		p.logger.Debug("empty content", "hint", hint)
		return result, nil
	}

	switch format {
	case core.FormatStructured:
		err = parseStructured(content, hint, result)
	case core.FormatDelimited:
		p.delimited.parse(content, result)
	default:
		err = fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	for _, skip := range result.Skipped {
		p.logger.Warn("skipping malformed review",
			"hint", hint, "format", format.String(), "index", skip.Index, "reason", skip.Reason)
	}
	p.logger.Debug("parsed content",
		"hint", hint, "format", format.String(), "records", len(result.Records), "skipped", len(result.Skipped))

	return result, nil
}

// accept validates a candidate record and appends it or a skip to result.
func (r *Result) accept(index int, record *core.Record) {
	if err := core.ValidateRecord(record); err != nil {
		r.skip(index, err)
		return
	}
	r.Records = append(r.Records, record)
}

func (r *Result) skip(index int, reason error) {
	r.Skipped = append(r.Skipped, Skip{Index: index, Reason: reason})
}
