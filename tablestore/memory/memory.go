/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides an in-memory TableStore with the same optimistic
// concurrency semantics as the DynamoDB implementation. It backs the
// workflow tests and local development.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	storeerrors "github.com/suparena/retailstore/errors"
	"github.com/suparena/retailstore/tablestore"
)

type record[T any] struct {
	entity    T
	etag      string
	timestamp time.Time
	partition string
	row       string
}

// TableStore is an in-memory implementation of tablestore.TableStore[T].
type TableStore[T any] struct {
	mu   sync.RWMutex
	data map[string]record[T]

	getError    error
	putError    error
	deleteError error
	queryError  error
}

// New creates an empty in-memory TableStore.
func New[T any]() *TableStore[T] {
	return &TableStore[T]{
		data: make(map[string]record[T]),
	}
}

// WithGetError makes Get operations return err
func (s *TableStore[T]) WithGetError(err error) *TableStore[T] {
	s.getError = err
	return s
}

// WithPutError makes Upsert operations return err
func (s *TableStore[T]) WithPutError(err error) *TableStore[T] {
	s.putError = err
	return s
}

// WithDeleteError makes Delete operations return err
func (s *TableStore[T]) WithDeleteError(err error) *TableStore[T] {
	s.deleteError = err
	return s
}

// WithQueryError makes Query and Stream operations return err
func (s *TableStore[T]) WithQueryError(err error) *TableStore[T] {
	s.queryError = err
	return s
}

// EnsureTable is a no-op; the map always exists.
func (s *TableStore[T]) EnsureTable(ctx context.Context) error {
	return nil
}

// Get retrieves the entity stored at (partition, row).
func (s *TableStore[T]) Get(ctx context.Context, partition, row string) (*T, error) {
	if s.getError != nil {
		return nil, s.getError
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[compositeKey(partition, row)]
	if !ok {
		return nil, storeerrors.NewNotFoundError(typeName[T](), partition+"/"+row)
	}
	entity := rec.entity
	return &entity, nil
}

// Upsert writes the entity under the given mode, assigning a fresh ETag and
// write timestamp on success.
func (s *TableStore[T]) Upsert(ctx context.Context, entity *T, mode tablestore.UpsertMode) (string, error) {
	if s.putError != nil {
		return "", s.putError
	}

	e, err := tablestore.AsEntity(entity)
	if err != nil {
		return "", err
	}
	partition, row := e.EntityKey()
	if partition == "" || row == "" {
		return "", storeerrors.NewValidationError("RowKey", "entity key must be set before upsert")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := compositeKey(partition, row)
	if mode == tablestore.ReplaceIfMatch {
		current, ok := s.data[key]
		if !ok || current.etag != e.EntityTag() {
			return "", storeerrors.NewConflictError(typeName[T](), row)
		}
	}

	newTag := uuid.NewString()
	now := time.Now().UTC()
	e.SetEntityTag(newTag)
	e.SetTimestamp(now)

	s.data[key] = record[T]{
		entity:    *entity,
		etag:      newTag,
		timestamp: now,
		partition: partition,
		row:       row,
	}
	return newTag, nil
}

// Query returns all entities matching params in map iteration order.
func (s *TableStore[T]) Query(ctx context.Context, params *tablestore.QueryParams) ([]T, error) {
	if s.queryError != nil {
		return nil, s.queryError
	}
	if params == nil {
		params = &tablestore.QueryParams{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]T, 0)
	for _, rec := range s.data {
		if !matches(rec.partition, rec.row, params) {
			continue
		}
		results = append(results, rec.entity)
		if params.Limit > 0 && int32(len(results)) >= params.Limit {
			break
		}
	}
	return results, nil
}

// Stream delivers a snapshot of matching entities over a channel.
func (s *TableStore[T]) Stream(ctx context.Context, params *tablestore.QueryParams) <-chan tablestore.StreamResult[T] {
	resultCh := make(chan tablestore.StreamResult[T])

	go func() {
		defer close(resultCh)

		snapshot, err := s.Query(ctx, params)
		if err != nil {
			select {
			case <-ctx.Done():
			case resultCh <- tablestore.StreamResult[T]{Error: err}:
			}
			return
		}
		for _, entity := range snapshot {
			select {
			case <-ctx.Done():
				return
			case resultCh <- tablestore.StreamResult[T]{Item: entity}:
			}
		}
	}()

	return resultCh
}

// Delete removes the row at (partition, row). Absent rows are treated as
// already deleted.
func (s *TableStore[T]) Delete(ctx context.Context, partition, row string) error {
	if s.deleteError != nil {
		return s.deleteError
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, compositeKey(partition, row))
	return nil
}

// Count returns the number of stored entities (for tests).
func (s *TableStore[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func matches(partition, row string, params *tablestore.QueryParams) bool {
	if params.Partition != "" && partition != params.Partition {
		return false
	}
	if params.Row != "" && row != params.Row {
		return false
	}
	return true
}

func compositeKey(partition, row string) string {
	return partition + "|" + row
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
