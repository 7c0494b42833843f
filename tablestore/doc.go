/*
Package tablestore defines the partitioned entity store interface used by the
retail workflows.

The main interface is TableStore[T], which provides typed operations over a
(partition, row) keyed collection with optimistic concurrency:

	type TableStore[T any] interface {
	    EnsureTable(ctx context.Context) error
	    Get(ctx context.Context, partition, row string) (*T, error)
	    Upsert(ctx context.Context, entity *T, mode UpsertMode) (string, error)
	    Query(ctx context.Context, params *QueryParams) ([]T, error)
	    Stream(ctx context.Context, params *QueryParams) <-chan StreamResult[T]
	    Delete(ctx context.Context, partition, row string) error
	}

Concurrency follows the optimistic pattern end to end: read an entity
(capturing its ETag), mutate a copy, write back with ReplaceIfMatch. A
conflict error means the caller lost a race; the store never retries or
merges on its own.

Implementations:
  - ddb: DynamoDB implementation mapping (partition, row) onto PK/SK and the
    ETag check onto a conditional write
  - memory: in-memory implementation with identical semantics for tests and
    local development

No in-process locking is layered on top: it would not help against external
concurrent writers, which is what the ETag check exists for.
*/
package tablestore
