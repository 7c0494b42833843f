/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	storeerrors "github.com/suparena/retailstore/errors"
	"github.com/suparena/retailstore/tablestore"
)

// TableStore implements tablestore.TableStore[T] on top of AWS DynamoDB.
// The (partition, row) key maps onto the table's PK/SK pair, and the
// ReplaceIfMatch mode maps onto a conditional PutItem on the ETag attribute.
type TableStore[T any] struct {
	client    *sdk.Client
	tableName string
}

// NewClient initializes a DynamoDB client from static credentials. An empty
// endpointURL uses the default AWS endpoint; otherwise the client targets a
// custom endpoint (e.g. a local emulator).
func NewClient(ctx context.Context, accessKey, secretKey, region, endpointURL string) (*sdk.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if endpointURL != "" {
			o.BaseEndpoint = aws.String(endpointURL)
		}
	})
	return client, nil
}

// New constructs a TableStore for type T backed by the named table.
func New[T any](client *sdk.Client, tableName string) *TableStore[T] {
	return &TableStore[T]{
		client:    client,
		tableName: tableName,
	}
}

// EnsureTable creates the backing table when missing. A table that already
// exists is not an error, so callers may invoke this on every request path.
func (s *TableStore[T]) EnsureTable(ctx context.Context) error {
	_, err := s.client.CreateTable(ctx, &sdk.CreateTableInput{
		TableName: &s.tableName,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("SK"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("SK"), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		return fmt.Errorf("CreateTable %s failed: %w", s.tableName, err)
	}
	return nil
}

// Get retrieves the entity stored at (partition, row).
func (s *TableStore[T]) Get(ctx context.Context, partition, row string) (*T, error) {
	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &s.tableName,
		Key:       buildKey(partition, row),
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, storeerrors.NewNotFoundError(typeName[T](), partition+"/"+row)
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Upsert writes the entity at its own key. On success the entity carries the
// freshly assigned ETag and write timestamp, and the new ETag is returned.
func (s *TableStore[T]) Upsert(ctx context.Context, entity *T, mode tablestore.UpsertMode) (string, error) {
	e, err := tablestore.AsEntity(entity)
	if err != nil {
		return "", err
	}

	partition, row := e.EntityKey()
	if partition == "" || row == "" {
		return "", storeerrors.NewValidationError("RowKey", "entity key must be set before upsert")
	}

	prevTag := e.EntityTag()
	if mode == tablestore.ReplaceIfMatch && prevTag == "" {
		// Never-persisted entities have nothing to match against.
		return "", storeerrors.NewConflictError(typeName[T](), row)
	}

	newTag := uuid.NewString()
	e.SetEntityTag(newTag)
	e.SetTimestamp(time.Now().UTC())

	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		e.SetEntityTag(prevTag)
		return "", fmt.Errorf("failed to marshal entity: %w", err)
	}
	av["PK"] = &types.AttributeValueMemberS{Value: partition}
	av["SK"] = &types.AttributeValueMemberS{Value: row}

	input := &sdk.PutItemInput{
		TableName: &s.tableName,
		Item:      av,
	}
	if mode == tablestore.ReplaceIfMatch {
		input.ConditionExpression = aws.String("ETag = :etag")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":etag": &types.AttributeValueMemberS{Value: prevTag},
		}
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		e.SetEntityTag(prevTag)
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return "", storeerrors.NewConflictError(typeName[T](), row)
		}
		return "", fmt.Errorf("PutItem failed: %w", err)
	}
	return newTag, nil
}

// Delete removes the row at (partition, row). DynamoDB treats an absent row
// as already deleted, which is exactly the idempotency this store promises.
func (s *TableStore[T]) Delete(ctx context.Context, partition, row string) error {
	_, err := s.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &s.tableName,
		Key:       buildKey(partition, row),
	})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

func buildKey(partition, row string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: partition},
		"SK": &types.AttributeValueMemberS{Value: row},
	}
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
