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


// Package dynamo persists review records in a DynamoDB table whose
// partition key is the string attribute "Identifier".
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/poiesic/reviewpipe/core"
	"github.com/poiesic/reviewpipe/storage"
)

// DefaultTable is the table name used by earlier deployments.
const DefaultTable = "ProductReview"

// API is the subset of the DynamoDB client used by Store.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// item is the table layout. Attribute names are a storage contract.
type item struct {
	Identifier    string  `dynamodbav:"Identifier"`
	ProductName   string  `dynamodbav:"ProductName"`
	Price         float64 `dynamodbav:"Price"`
	ReviewComment string  `dynamodbav:"ReviewComment"`
	Rating        float64 `dynamodbav:"Rating"`
}

func itemFromRecord(r *core.Record) item {
	return item{
		Identifier:    r.Identifier,
		ProductName:   r.ProductName,
		Price:         r.Price,
		ReviewComment: r.Comment,
		Rating:        r.Rating,
	}
}

func (it item) record() *core.Record {
	return &core.Record{
		Identifier:  it.Identifier,
		ProductName: it.ProductName,
		Price:       it.Price,
		Comment:     it.ReviewComment,
		Rating:      it.Rating,
	}
}

// Store implements storage.RecordStore over a DynamoDB table.
type Store struct {
	client API
	table  string
	logger *slog.Logger
}

var (
	_ storage.RecordStore  = (*Store)(nil)
	_ storage.RecordLister = (*Store)(nil)
)

// Option configures a Store.
type Option func(*Store)

// WithTable sets the table name. Default is DefaultTable.
func WithTable(table string) Option {
	return func(s *Store) {
		if table != "" {
			s.table = table
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store. Pass a *dynamodb.Client built with dynamodb.NewFromConfig.
func NewStore(client API, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, errors.New("dynamodb client required")
	}
	s := &Store{
		client: client,
		table:  DefaultTable,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("storage", "dynamodb", "table", s.table)
	return s, nil
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *Store) Close() error {
	return nil
}

// PutRecord writes the record as one item.
func (s *Store) PutRecord(ctx context.Context, record *core.Record) error {
	if record == nil || record.Identifier == "" {
		return fmt.Errorf("%w: %w", storage.ErrWriteFailed, core.ErrEmptyIdentifier)
	}

	av, err := attributevalue.MarshalMap(itemFromRecord(record))
	if err != nil {
		return fmt.Errorf("%w: %w: %w", storage.ErrWriteFailed, storage.ErrSerializationFailed, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrWriteFailed, err)
	}
	s.logger.Debug("saved record", "id", record.Identifier)
	return nil
}

// CountRecords counts items with a paginated COUNT scan.
func (s *Store) CountRecords(ctx context.Context) (int64, error) {
	var (
		total     int64
		startFrom map[string]types.AttributeValue
	)
	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.table),
			Select:            types.SelectCount,
			ExclusiveStartKey: startFrom,
		})
		if err != nil {
			return 0, fmt.Errorf("scan %s: %w", s.table, err)
		}
		total += int64(out.Count)
		if len(out.LastEvaluatedKey) == 0 {
			return total, nil
		}
		startFrom = out.LastEvaluatedKey
	}
}

// GetRecord reads one item by identifier.
func (s *Store) GetRecord(ctx context.Context, id string) (*core.Record, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"Identifier": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, storage.ErrNotFound
	}

	var it item
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return it.record(), nil
}

// ListRecords reads every item with a paginated scan. Order is unspecified.
func (s *Store) ListRecords(ctx context.Context) ([]*core.Record, error) {
	var (
		results   []*core.Record
		startFrom map[string]types.AttributeValue
	)
	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.table),
			ExclusiveStartKey: startFrom,
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}

		var page []item
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}
		for _, it := range page {
			results = append(results, it.record())
		}

		if len(out.LastEvaluatedKey) == 0 {
			return results, nil
		}
		startFrom = out.LastEvaluatedKey
	}
}
