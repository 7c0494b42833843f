/*
Package models defines the persisted domain entities of the retail store:
CustomerProfile, Product and Order.

Every entity embeds TableEntity, the common persisted shape:

	type TableEntity struct {
	    PartitionKey string
	    RowKey       string
	    ETag         string    // opaque version token, empty = never persisted
	    Timestamp    time.Time // store-assigned last-write time
	}

Relationships between entities are logical only. An Order holds CustomerId
and ProductId as plain identifier fields; nothing in storage enforces them,
and a row referencing a deleted product remains valid. Resolution happens in
the workflow layer at read time.

Each entity has a Validate method returning a typed validation error for the
first offending field, matching what the workflows surface to callers.
*/
package models
