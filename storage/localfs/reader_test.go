package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/reviewpipe/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReader(t *testing.T) *Reader {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "uploads", "2025")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reviews.txt"), []byte("ProductName: Lamp"), 0644))

	r, err := NewReader(root)
	require.NoError(t, err)
	return r
}

func TestReader_GetObject(t *testing.T) {
	r := setupReader(t)

	data, err := r.GetObject(context.Background(), "uploads", "2025/reviews.txt")
	require.NoError(t, err)
	assert.Equal(t, "ProductName: Lamp", string(data))
}

func TestReader_NotFound(t *testing.T) {
	r := setupReader(t)

	_, err := r.GetObject(context.Background(), "uploads", "2025/missing.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = r.GetObject(context.Background(), "other-bucket", "reviews.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReader_RejectsEscapingKeys(t *testing.T) {
	r := setupReader(t)
	ctx := context.Background()

	for _, tc := range []struct{ container, key string }{
		{"uploads", "../secret.txt"},
		{"uploads", "/etc/passwd"},
		{"uploads", ""},
		{"..", "uploads/2025/reviews.txt"},
		{"", "reviews.txt"},
	} {
		_, err := r.GetObject(ctx, tc.container, tc.key)
		assert.ErrorIs(t, err, storage.ErrInvalidKey, "%s/%s", tc.container, tc.key)
	}
}

func TestNewReader_Errors(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = NewReader(file)
	assert.Error(t, err)
}
