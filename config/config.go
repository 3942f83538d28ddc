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


// Package config holds the settings that select and tune the ingestion
// service's collaborators.
package config

import (
	"errors"
	"fmt"

	"github.com/poiesic/reviewpipe/core"
	"github.com/poiesic/reviewpipe/ident"
)

// Object sources.
const (
	SourceLocal = "local"
	SourceS3    = "s3"
)

// Record stores.
const (
	StoreBadger   = "badger"
	StoreDynamoDB = "dynamodb"
)

// Config holds configuration for the ingestion service.
type Config struct {
	// Source selects where uploaded objects are read from: "local" or "s3".
	Source string `mapstructure:"source"`

	// SourceRoot is the directory holding one subdirectory per container.
	// Only used by the local source.
	SourceRoot string `mapstructure:"source_root"`

	// Store selects the record store: "badger" or "dynamodb".
	Store string `mapstructure:"store"`

	// StorePath is the Badger data directory.
	StorePath string `mapstructure:"store_path"`

	// Table is the DynamoDB table name.
	// Default: "ProductReview"
	Table string `mapstructure:"table"`

	// Region overrides the AWS region. Empty uses the SDK's default chain.
	Region string `mapstructure:"region"`

	// PoolSize is how many notifications of a batch are processed concurrently.
	// Default: 1
	PoolSize int `mapstructure:"pool_size"`

	// IDScheme selects the identifier allocator: "sequential" or "uuid".
	IDScheme string `mapstructure:"id_scheme"`

	// UploadLog is a file that receives one line per notification.
	// Empty disables the log.
	UploadLog string `mapstructure:"upload_log"`

	// Formats maps file extensions (without the leading dot) to
	// "structured" or "delimited". Empty uses the built-in json/txt table.
	Formats map[string]string `mapstructure:"formats"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithLocalSource reads objects from directories under root.
func WithLocalSource(root string) ConfigOption {
	return func(c *Config) {
		c.Source = SourceLocal
		c.SourceRoot = root
	}
}

// WithS3Source reads objects from S3.
func WithS3Source() ConfigOption {
	return func(c *Config) {
		c.Source = SourceS3
	}
}

// WithBadgerStore persists records in a Badger database at path.
func WithBadgerStore(path string) ConfigOption {
	return func(c *Config) {
		c.Store = StoreBadger
		c.StorePath = path
	}
}

// WithDynamoDBStore persists records in the named DynamoDB table.
func WithDynamoDBStore(table string) ConfigOption {
	return func(c *Config) {
		c.Store = StoreDynamoDB
		c.Table = table
	}
}

// WithRegion sets the AWS region.
func WithRegion(region string) ConfigOption {
	return func(c *Config) {
		c.Region = region
	}
}

// WithPoolSize sets the per-batch concurrency.
func WithPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// WithIDScheme sets the identifier scheme.
func WithIDScheme(scheme string) ConfigOption {
	return func(c *Config) {
		c.IDScheme = scheme
	}
}

// WithUploadLog sets the upload log file.
func WithUploadLog(path string) ConfigOption {
	return func(c *Config) {
		c.UploadLog = path
	}
}

// WithFormats replaces the extension table.
func WithFormats(formats map[string]string) ConfigOption {
	return func(c *Config) {
		c.Formats = formats
	}
}

// DefaultConfig returns a Config that reads from ./buckets and writes to a
// local Badger database.
func DefaultConfig() *Config {
	return &Config{
		Source:     SourceLocal,
		SourceRoot: "./buckets",
		Store:      StoreBadger,
		StorePath:  "./reviews.db",
		Table:      "ProductReview",
		PoolSize:   1,
		IDScheme:   ident.SchemeSequential,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithS3Source(),
//	    WithDynamoDBStore("ProductReview"),
//	    WithRegion("us-east-1"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is valid and complete.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceLocal:
		if c.SourceRoot == "" {
			return errors.New("config: SourceRoot is required for the local source")
		}
	case SourceS3:
	default:
		return fmt.Errorf("config: unknown source %q", c.Source)
	}

	switch c.Store {
	case StoreBadger:
		if c.StorePath == "" {
			return errors.New("config: StorePath is required for the badger store")
		}
	case StoreDynamoDB:
		if c.Table == "" {
			return errors.New("config: Table is required for the dynamodb store")
		}
	default:
		return fmt.Errorf("config: unknown store %q", c.Store)
	}

	if c.PoolSize < 1 {
		return errors.New("config: PoolSize must be at least 1")
	}
	if c.IDScheme != ident.SchemeSequential && c.IDScheme != ident.SchemeUUID {
		return fmt.Errorf("config: %w: %q", ident.ErrUnknownScheme, c.IDScheme)
	}
	if _, err := c.FormatTable(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// FormatTable builds the extension table described by Formats.
func (c *Config) FormatTable() (*core.FormatTable, error) {
	if len(c.Formats) == 0 {
		return core.DefaultFormats(), nil
	}
	entries := make(map[string]core.Format, len(c.Formats))
	for ext, name := range c.Formats {
		format, err := core.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		entries[ext] = format
	}
	return core.NewFormatTable(entries)
}
