package core

import (
	"errors"
	"testing"
)

func TestDefaultFormats_Lookup(t *testing.T) {
	table := DefaultFormats()

	tests := []struct {
		name    string
		key     string
		want    Format
		wantErr bool
	}{
		{name: "json", key: "uploads/reviews.json", want: FormatStructured},
		{name: "upper case json", key: "REVIEWS.JSON", want: FormatStructured},
		{name: "txt", key: "reviews.txt", want: FormatDelimited},
		{name: "csv unsupported", key: "reviews.csv", wantErr: true},
		{name: "no extension", key: "reviews", wantErr: true},
		{name: "extension only in the middle", key: "reviews.json.bak", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Lookup(tt.key)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("Lookup(%q) error = %v, want ErrUnsupportedFormat", tt.key, err)
				}
				if table.Supports(tt.key) {
					t.Errorf("Supports(%q) = true", tt.key)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) unexpected error = %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestNewFormatTable(t *testing.T) {
	t.Run("normalizes extensions", func(t *testing.T) {
		table, err := NewFormatTable(map[string]Format{"JSONL": FormatStructured, ".log": FormatDelimited})
		if err != nil {
			t.Fatalf("NewFormatTable() error = %v", err)
		}
		if f, err := table.Lookup("a.jsonl"); err != nil || f != FormatStructured {
			t.Errorf("Lookup(a.jsonl) = %v, %v", f, err)
		}
		if f, err := table.Lookup("a.LOG"); err != nil || f != FormatDelimited {
			t.Errorf("Lookup(a.LOG) = %v, %v", f, err)
		}
	})

	t.Run("longest suffix wins", func(t *testing.T) {
		table, err := NewFormatTable(map[string]Format{".txt": FormatDelimited, ".json.txt": FormatStructured})
		if err != nil {
			t.Fatalf("NewFormatTable() error = %v", err)
		}
		if f, _ := table.Lookup("dump.json.txt"); f != FormatStructured {
			t.Errorf("Lookup(dump.json.txt) = %v, want structured", f)
		}
		if got := table.Extensions(); got[0] != ".json.txt" {
			t.Errorf("Extensions()[0] = %q", got[0])
		}
	})

	t.Run("rejects empty extension", func(t *testing.T) {
		if _, err := NewFormatTable(map[string]Format{"": FormatDelimited}); err == nil {
			t.Error("expected error for empty extension")
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		_, err := NewFormatTable(map[string]Format{".xml": Format(99)})
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("error = %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("table is not affected by caller map changes", func(t *testing.T) {
		entries := map[string]Format{".json": FormatStructured}
		table, err := NewFormatTable(entries)
		if err != nil {
			t.Fatalf("NewFormatTable() error = %v", err)
		}
		entries[".txt"] = FormatDelimited
		if table.Supports("a.txt") {
			t.Error("table picked up an entry added after construction")
		}
	})
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"structured": FormatStructured,
		"JSON":       FormatStructured,
		"delimited":  FormatDelimited,
		" text ":     FormatDelimited,
	} {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", name, got, err, want)
		}
	}

	if _, err := ParseFormat("yaml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseFormat(yaml) error = %v", err)
	}
}
