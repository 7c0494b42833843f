/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablestore

import (
	"context"
	"fmt"
	"time"
)

// UpsertMode selects the write semantics for TableStore.Upsert.
type UpsertMode int

const (
	// InsertOrReplace ignores the stored ETag and always wins.
	InsertOrReplace UpsertMode = iota

	// ReplaceIfMatch succeeds only when the entity's ETag matches the
	// stored one, failing with a conflict error otherwise.
	ReplaceIfMatch
)

// Entity is implemented by persisted records. It exposes the common shape,
// the (partition, row) key, ETag version token and last-write timestamp, so
// a store can read and stamp those fields without knowing the concrete type.
type Entity interface {
	EntityKey() (partition, row string)
	SetEntityKey(partition, row string)
	EntityTag() string
	SetEntityTag(tag string)
	SetTimestamp(t time.Time)
}

// QueryParams narrows a query. The zero value scans the whole collection.
type QueryParams struct {
	// Partition limits results to a single partition.
	Partition string
	// Row limits results to rows with this row key, across partitions.
	Row string
	// Limit caps the number of returned items; zero means no cap.
	Limit int32
}

// StreamResult carries one streamed item or a terminal error.
type StreamResult[T any] struct {
	Item  T
	Error error
}

// TableStore is a partitioned, typed record store with optimistic
// concurrency. Upsert returns the freshly assigned ETag and stamps it,
// along with the write timestamp, onto the entity.
type TableStore[T any] interface {
	// EnsureTable creates the backing collection when missing. Idempotent,
	// safe on every request path.
	EnsureTable(ctx context.Context) error

	// Get returns the entity at (partition, row) or a not-found error.
	Get(ctx context.Context, partition, row string) (*T, error)

	// Upsert writes the entity at its own key under the given mode.
	Upsert(ctx context.Context, entity *T, mode UpsertMode) (string, error)

	// Query returns all entities matching params in storage-native order.
	Query(ctx context.Context, params *QueryParams) ([]T, error)

	// Stream delivers matching entities lazily over a channel. The channel
	// closes when the scan finishes, fails or ctx is cancelled; a fresh call
	// re-scans from the start.
	Stream(ctx context.Context, params *QueryParams) <-chan StreamResult[T]

	// Delete removes the row at (partition, row). Deleting an absent row
	// succeeds; deletion is physical and immediate.
	Delete(ctx context.Context, partition, row string) error
}

// AsEntity asserts that *T satisfies Entity. Stores call it once per
// operation so a mis-registered type fails loudly instead of persisting
// rows without keys.
func AsEntity[T any](v *T) (Entity, error) {
	e, ok := any(v).(Entity)
	if !ok {
		return nil, fmt.Errorf("type %T does not implement tablestore.Entity", v)
	}
	return e, nil
}
