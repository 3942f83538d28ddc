package parser

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/poiesic/reviewpipe/core"
)

// parseStructured decodes a JSON review or array of reviews into result.
func parseStructured(content, hint string, result *Result) error {
	data := []byte(content)

	var root json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return &SyntaxError{Hint: hint, Err: err}
	}

	root = bytes.TrimSpace(root)
	if len(root) > 0 && root[0] == '[' {
		var entries []json.RawMessage
		if err := json.Unmarshal(root, &entries); err != nil {
			return &SyntaxError{Hint: hint, Err: err}
		}
		for i, entry := range entries {
			decodeEntry(i, entry, result)
		}
		return nil
	}

	decodeEntry(0, root, result)
	return nil
}

func decodeEntry(index int, entry json.RawMessage, result *Result) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil || fields == nil {
		result.skip(index, ErrInvalidEntry)
		return
	}

	name, err := textField(fields, FieldProductName)
	if err != nil {
		result.skip(index, err)
		return
	}
	price, err := numberField(fields, FieldPrice)
	if err != nil {
		result.skip(index, err)
		return
	}
	comment, err := textField(fields, FieldReview)
	if err != nil {
		result.skip(index, err)
		return
	}
	rating, err := numberField(fields, FieldRating)
	if err != nil {
		result.skip(index, err)
		return
	}

	result.accept(index, &core.Record{
		ProductName: name,
		Price:       price,
		Comment:     comment,
		Rating:      rating,
	})
}

// lookup returns the raw value of a field, treating null as absent.
func lookup(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	raw, ok := fields[name]
	if !ok {
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}
	return raw, true
}

// textField reads a string field. Numbers and booleans are taken as their
// literal text; objects and arrays are rejected.
func textField(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := lookup(fields, name)
	if !ok {
		return "", fieldError(ErrMissingField, name)
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fieldError(ErrInvalidEntry, name)
		}
		return s, nil
	case '{', '[':
		return "", fieldError(ErrInvalidEntry, name)
	default:
		return string(raw), nil
	}
}

// numberField reads a numeric field. Numeric strings such as "12000" are accepted.
func numberField(fields map[string]json.RawMessage, name string) (float64, error) {
	raw, ok := lookup(fields, name)
	if !ok {
		return 0, fieldError(ErrMissingField, name)
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, fieldError(ErrInvalidNumber, name)
		}
		text = strings.TrimSpace(text)
	}
	return parseNumber(text, name)
}

// parseNumber parses a finite decimal.
func parseNumber(text, name string) (float64, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || !core.IsFinite(f) {
		return 0, fieldError(ErrInvalidNumber, name)
	}
	return f, nil
}
