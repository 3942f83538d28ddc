package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/reviewpipe/core"
	"github.com/poiesic/reviewpipe/ident"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, SourceLocal, cfg.Source)
	assert.Equal(t, "./buckets", cfg.SourceRoot)
	assert.Equal(t, StoreBadger, cfg.Store)
	assert.Equal(t, "./reviews.db", cfg.StorePath)
	assert.Equal(t, "ProductReview", cfg.Table)
	assert.Equal(t, 1, cfg.PoolSize)
	assert.Equal(t, ident.SchemeSequential, cfg.IDScheme)
	assert.Empty(t, cfg.UploadLog)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with aws collaborators", func(t *testing.T) {
		cfg := NewConfig(
			WithS3Source(),
			WithDynamoDBStore("Reviews"),
			WithRegion("eu-west-1"),
		)

		assert.Equal(t, SourceS3, cfg.Source)
		assert.Equal(t, StoreDynamoDB, cfg.Store)
		assert.Equal(t, "Reviews", cfg.Table)
		assert.Equal(t, "eu-west-1", cfg.Region)
		require.NoError(t, cfg.Validate())
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithLocalSource("/data/buckets"),
			WithBadgerStore("/data/db"),
			WithPoolSize(4),
			WithIDScheme(ident.SchemeUUID),
			WithUploadLog("/data/upload_log.txt"),
		)

		assert.Equal(t, "/data/buckets", cfg.SourceRoot)
		assert.Equal(t, "/data/db", cfg.StorePath)
		assert.Equal(t, 4, cfg.PoolSize)
		assert.Equal(t, ident.SchemeUUID, cfg.IDScheme)
		assert.Equal(t, "/data/upload_log.txt", cfg.UploadLog)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ConfigOption
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults"},
		{name: "unknown source", mutate: func(c *Config) { c.Source = "ftp" }, wantErr: "unknown source"},
		{name: "local without root", opts: []ConfigOption{WithLocalSource("")}, wantErr: "SourceRoot"},
		{name: "unknown store", mutate: func(c *Config) { c.Store = "sqlite" }, wantErr: "unknown store"},
		{name: "badger without path", opts: []ConfigOption{WithBadgerStore("")}, wantErr: "StorePath"},
		{name: "dynamodb without table", opts: []ConfigOption{WithDynamoDBStore("")}, wantErr: "Table"},
		{name: "zero pool", opts: []ConfigOption{WithPoolSize(0)}, wantErr: "PoolSize"},
		{name: "unknown scheme", opts: []ConfigOption{WithIDScheme("random")}, wantErr: "random"},
		{name: "bad format", opts: []ConfigOption{WithFormats(map[string]string{"csv": "tabular"})}, wantErr: "tabular"},
		{name: "custom formats", opts: []ConfigOption{WithFormats(map[string]string{"ndjson": "structured"})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(tt.opts...)
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_FormatTable(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		table, err := DefaultConfig().FormatTable()
		require.NoError(t, err)
		assert.True(t, table.Supports("a.json"))
		assert.True(t, table.Supports("a.txt"))
	})

	t.Run("custom", func(t *testing.T) {
		cfg := NewConfig(WithFormats(map[string]string{
			"ndjson": "structured",
			"log":    "delimited",
		}))
		table, err := cfg.FormatTable()
		require.NoError(t, err)

		format, err := table.Lookup("reviews.NDJSON")
		require.NoError(t, err)
		assert.Equal(t, core.FormatStructured, format)
		assert.False(t, table.Supports("a.json"))
	})
}

func TestLoad(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Source, cfg.Source)
		assert.Equal(t, 1, cfg.PoolSize)
	})

	t.Run("file values", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		path := filepath.Join(dir, "reviewpipe.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
source: s3
store: dynamodb
table: Reviews
pool_size: 3
id_scheme: uuid
formats:
  json: structured
  log: delimited
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, SourceS3, cfg.Source)
		assert.Equal(t, StoreDynamoDB, cfg.Store)
		assert.Equal(t, "Reviews", cfg.Table)
		assert.Equal(t, 3, cfg.PoolSize)
		assert.Equal(t, ident.SchemeUUID, cfg.IDScheme)
		assert.Equal(t, map[string]string{"json": "structured", "log": "delimited"}, cfg.Formats)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		path := filepath.Join(dir, "reviewpipe.yaml")
		require.NoError(t, os.WriteFile(path, []byte("pool_size: 3\n"), 0o600))
		t.Setenv("REVIEWPIPE_POOL_SIZE", "8")
		t.Setenv("REVIEWPIPE_STORE_PATH", "/tmp/env.db")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.PoolSize)
		assert.Equal(t, "/tmp/env.db", cfg.StorePath)
	})

	t.Run("dotenv file", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REVIEWPIPE_TABLE=FromDotenv\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("REVIEWPIPE_TABLE") })

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "FromDotenv", cfg.Table)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		_, err := Load("/does/not/exist.yaml")
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("REVIEWPIPE_SOURCE", "ftp")
		_, err := Load("")
		assert.Error(t, err)
	})
}
