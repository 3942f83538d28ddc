package storage

import (
	"testing"

	"github.com/poiesic/reviewpipe/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalRecord(t *testing.T) {
	tests := []struct {
		name   string
		record *core.Record
	}{
		{
			name: "sample review",
			record: &core.Record{
				Identifier:  "1",
				ProductName: "Sony TV",
				Price:       12000,
				Comment:     "I loved this product",
				Rating:      4.85,
			},
		},
		{
			name: "unicode and commas",
			record: &core.Record{
				Identifier:  "1700000000123",
				ProductName: "Café Grinder ☕",
				Price:       0.01,
				Comment:     "Grinds fine, loud, worth it",
				Rating:      -1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalRecord(tt.record)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalRecord(data)
			require.NoError(t, err)
			assert.Equal(t, tt.record, decoded)
		})
	}
}

func TestUnmarshalRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated", MarshalRecord(&core.Record{Identifier: "9", ProductName: "Lamp", Comment: "ok"})[:4]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalRecord(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}
