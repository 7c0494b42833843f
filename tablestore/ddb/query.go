/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/retailstore/tablestore"
)

// Query returns all entities matching params. A set Partition becomes a key
// condition on PK; a lone Row falls back to a filtered scan, since the row
// key alone does not locate a partition.
func (s *TableStore[T]) Query(ctx context.Context, params *tablestore.QueryParams) ([]T, error) {
	if params == nil {
		params = &tablestore.QueryParams{}
	}

	var results []T
	collect := func(items []map[string]types.AttributeValue) error {
		for _, item := range items {
			entity := new(T)
			if err := attributevalue.UnmarshalMap(item, entity); err != nil {
				return fmt.Errorf("failed to unmarshal item: %w", err)
			}
			results = append(results, *entity)
			if params.Limit > 0 && int32(len(results)) >= params.Limit {
				return errStreamDone
			}
		}
		return nil
	}

	err := s.scanPages(ctx, params, collect)
	if err != nil && err != errStreamDone {
		return nil, err
	}
	if params.Limit > 0 && int32(len(results)) > params.Limit {
		results = results[:params.Limit]
	}
	return results, nil
}

// Stream delivers matching entities lazily over a channel. The channel closes
// once the scan finishes, fails or ctx is cancelled; each call re-scans from
// the start.
func (s *TableStore[T]) Stream(ctx context.Context, params *tablestore.QueryParams) <-chan tablestore.StreamResult[T] {
	if params == nil {
		params = &tablestore.QueryParams{}
	}
	resultCh := make(chan tablestore.StreamResult[T])

	go func() {
		defer close(resultCh)

		var sent int32
		err := s.scanPages(ctx, params, func(items []map[string]types.AttributeValue) error {
			for _, item := range items {
				entity := new(T)
				if err := attributevalue.UnmarshalMap(item, entity); err != nil {
					return fmt.Errorf("failed to unmarshal item: %w", err)
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case resultCh <- tablestore.StreamResult[T]{Item: *entity}:
					sent++
				}
				if params.Limit > 0 && sent >= params.Limit {
					return errStreamDone
				}
			}
			return nil
		})
		if err != nil && err != errStreamDone {
			select {
			case <-ctx.Done():
			case resultCh <- tablestore.StreamResult[T]{Error: err}:
			}
		}
	}()

	return resultCh
}

// errStreamDone signals an early, successful stop of a page walk.
var errStreamDone = fmt.Errorf("stream done")

// scanPages walks every result page for params, invoking collect per page.
func (s *TableStore[T]) scanPages(ctx context.Context, params *tablestore.QueryParams, collect func([]map[string]types.AttributeValue) error) error {
	if params.Partition != "" {
		input := &sdk.QueryInput{
			TableName: &s.tableName,
		}
		if params.Row != "" {
			input.KeyConditionExpression = aws.String("PK = :pk AND SK = :sk")
			input.ExpressionAttributeValues = map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: params.Partition},
				":sk": &types.AttributeValueMemberS{Value: params.Row},
			}
		} else {
			input.KeyConditionExpression = aws.String("PK = :pk")
			input.ExpressionAttributeValues = map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: params.Partition},
			}
		}
		if params.Limit > 0 {
			input.Limit = aws.Int32(params.Limit)
		}

		paginator := sdk.NewQueryPaginator(s.client, input)
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return fmt.Errorf("query error: %w", err)
			}
			if err := collect(page.Items); err != nil {
				return err
			}
		}
		return nil
	}

	input := &sdk.ScanInput{
		TableName: &s.tableName,
	}
	if params.Row != "" {
		input.FilterExpression = aws.String("SK = :sk")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":sk": &types.AttributeValueMemberS{Value: params.Row},
		}
	}
	if params.Limit > 0 {
		input.Limit = aws.Int32(params.Limit)
	}

	paginator := sdk.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("scan error: %w", err)
		}
		if err := collect(page.Items); err != nil {
			return err
		}
	}
	return nil
}
