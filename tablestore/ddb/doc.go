/*
Package ddb provides the DynamoDB implementation of the TableStore interface.

Mapping:
  - (partition, row) key -> table PK (hash) / SK (range)
  - ETag version token   -> item attribute, checked with a conditional
    PutItem ("ETag = :etag") for ReplaceIfMatch writes
  - Timestamp            -> item attribute stamped on every write

A lost ETag race surfaces as a conflict error; the store never retries. The
entity's own PartitionKey/RowKey fields are marshaled alongside the PK/SK
attributes so items round-trip without a separate key-extraction step.

EnsureTable issues a CreateTable and treats ResourceInUseException as
success, making it safe to call on every request path.
*/
package ddb
