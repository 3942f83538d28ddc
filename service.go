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


// Package reviewpipe wires object readers, record stores and the ingestion
// coordinator together from a config.Config.
package reviewpipe

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/poiesic/reviewpipe/config"
	"github.com/poiesic/reviewpipe/core"
	"github.com/poiesic/reviewpipe/ident"
	"github.com/poiesic/reviewpipe/ingestion"
	"github.com/poiesic/reviewpipe/storage"
	"github.com/poiesic/reviewpipe/storage/badger"
	"github.com/poiesic/reviewpipe/storage/dynamo"
	"github.com/poiesic/reviewpipe/storage/localfs"
	"github.com/poiesic/reviewpipe/storage/s3objects"
)

type Service struct {
	cfg         *config.Config
	backend     *badger.Backend // nil unless the badger store is selected
	reader      storage.ObjectReader
	store       storage.RecordStore
	coordinator *ingestion.Coordinator
	uploadLog   *os.File
	closed      bool
	logger      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	logger    *slog.Logger
	awsConfig *aws.Config
	reader    storage.ObjectReader
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAWSConfig supplies the SDK configuration instead of loading the
// default credential and region chain.
func WithAWSConfig(cfg aws.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.awsConfig = &cfg
	}
}

// WithObjectReader overrides the reader selected by config.Source.
func WithObjectReader(reader storage.ObjectReader) ServiceOption {
	return func(o *serviceOptions) {
		o.reader = reader
	}
}

// Open builds a Service. A nil cfg uses config.DefaultConfig().
func Open(ctx context.Context, cfg *config.Config, opts ...ServiceOption) (*Service, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &serviceOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	svc := &Service{cfg: cfg, logger: options.logger}
	if err := svc.init(ctx, options); err != nil {
		svc.Close()
		return nil, err
	}
	return svc, nil
}

func (s *Service) init(ctx context.Context, options *serviceOptions) error {
	cfg := s.cfg

	var awsCfg aws.Config
	needsAWS := (cfg.Source == config.SourceS3 && options.reader == nil) || cfg.Store == config.StoreDynamoDB
	if needsAWS {
		if options.awsConfig != nil {
			awsCfg = *options.awsConfig
		} else {
			var loadOpts []func(*awsconfig.LoadOptions) error
			if cfg.Region != "" {
				loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
			}
			loaded, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
			if err != nil {
				return fmt.Errorf("loading aws config: %w", err)
			}
			awsCfg = loaded
		}
	}

	// Object reader
	switch {
	case options.reader != nil:
		s.reader = options.reader
	case cfg.Source == config.SourceS3:
		reader, err := s3objects.NewReader(s3.NewFromConfig(awsCfg))
		if err != nil {
			return err
		}
		s.reader = reader
	default:
		reader, err := localfs.NewReader(cfg.SourceRoot)
		if err != nil {
			return fmt.Errorf("opening source root: %w", err)
		}
		s.reader = reader
	}

	// Record store
	switch cfg.Store {
	case config.StoreDynamoDB:
		store, err := dynamo.NewStore(dynamodb.NewFromConfig(awsCfg),
			dynamo.WithTable(cfg.Table), dynamo.WithLogger(s.logger))
		if err != nil {
			return err
		}
		s.store = store
	default:
		backend, err := badger.OpenBackend(cfg.StorePath, false)
		if err != nil {
			return err
		}
		s.backend = backend
		s.store = badger.NewRecordRepository(backend)
	}

	allocator, err := ident.New(cfg.IDScheme, s.store, ident.WithLogger(s.logger))
	if err != nil {
		return err
	}

	formats, err := cfg.FormatTable()
	if err != nil {
		return err
	}

	coordOpts := []ingestion.Option{
		ingestion.WithLogger(s.logger),
		ingestion.WithFormats(formats),
		ingestion.WithPoolSize(cfg.PoolSize),
	}
	if cfg.UploadLog != "" {
		f, err := os.OpenFile(cfg.UploadLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening upload log: %w", err)
		}
		s.uploadLog = f
		coordOpts = append(coordOpts, ingestion.WithUploadLog(f))
	}

	coordinator, err := ingestion.NewCoordinator(s.reader, s.store, allocator, coordOpts...)
	if err != nil {
		return err
	}
	s.coordinator = coordinator

	s.logger.Info("service ready",
		"source", cfg.Source, "store", cfg.Store, "id_scheme", cfg.IDScheme, "pool_size", cfg.PoolSize)
	return nil
}

// Close releases the coordinator, the store and the upload log.
// Calling Close more than once is a no-op.
func (s *Service) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.coordinator != nil {
		s.coordinator.Release()
	}

	if s.uploadLog != nil {
		if err := s.uploadLog.Close(); err != nil {
			s.logger.Error("error closing upload log", "err", err)
		}
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error("error closing record store", "err", err)
			return err
		}
	}

	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			s.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

func (s *Service) RecordStore() storage.RecordStore {
	return s.store
}

func (s *Service) ObjectReader() storage.ObjectReader {
	return s.reader
}

// Handle runs one batch through the coordinator.
func (s *Service) Handle(ctx context.Context, batch []core.Notification) *ingestion.Summary {
	return s.coordinator.Handle(ctx, batch)
}

// HandleS3Event is the Lambda entry point. It always reports the outcome in
// the returned status line; the error is reserved for the host and is never
// set for per-file failures.
func (s *Service) HandleS3Event(ctx context.Context, event events.S3Event) (string, error) {
	summary := s.Handle(ctx, ingestion.NotificationsFromS3Event(event))
	return summary.String(), nil
}
