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


package core

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Format identifies how the contents of an uploaded file are laid out.
type Format int

const (
	// FormatStructured is JSON: one review object or an array of them.
	FormatStructured Format = iota + 1
	// FormatDelimited is plain text with ';' separated "Field: value" segments.
	FormatDelimited
)

func (f Format) String() string {
	switch f {
	case FormatStructured:
		return "structured"
	case FormatDelimited:
		return "delimited"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat converts a format name as used in configuration into a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "structured", "json":
		return FormatStructured, nil
	case "delimited", "text", "txt":
		return FormatDelimited, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatTable maps file extensions to formats. It is immutable after
// construction and safe for concurrent use.
type FormatTable struct {
	byExt map[string]Format
	exts  []string // longest first so ".tar.json" style suffixes win
}

// NewFormatTable builds a table from extension -> format pairs.
// Extensions are matched case-insensitively and may be given with or
// without the leading dot.
func NewFormatTable(entries map[string]Format) (*FormatTable, error) {
	byExt := make(map[string]Format, len(entries))
	for ext, format := range entries {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			return nil, fmt.Errorf("empty extension in format table")
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if format != FormatStructured && format != FormatDelimited {
			return nil, fmt.Errorf("%w: %s for extension %s", ErrUnsupportedFormat, format, ext)
		}
		byExt[ext] = format
	}

	exts := slices.Collect(maps.Keys(byExt))
	slices.SortFunc(exts, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})

	return &FormatTable{byExt: byExt, exts: exts}, nil
}

// DefaultFormats returns the table recognizing ".json" and ".txt".
func DefaultFormats() *FormatTable {
	table, _ := NewFormatTable(map[string]Format{
		".json": FormatStructured,
		".txt":  FormatDelimited,
	})
	return table
}

// Lookup returns the format for a file name or object key.
// Returns ErrUnsupportedFormat if no extension matches.
func (t *FormatTable) Lookup(name string) (Format, error) {
	lower := strings.ToLower(name)
	for _, ext := range t.exts {
		if strings.HasSuffix(lower, ext) {
			return t.byExt[ext], nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// Supports reports whether name has a recognized extension.
func (t *FormatTable) Supports(name string) bool {
	_, err := t.Lookup(name)
	return err == nil
}

// Extensions returns the recognized extensions, longest first.
func (t *FormatTable) Extensions() []string {
	return slices.Clone(t.exts)
}
