/*
Package workflow composes the entity store, blob store and notification
queue into the customer, product, order and contract use cases.

Every operation is a stateless unit of work: read what it needs, compute
derived fields, write under optimistic concurrency, then append best-effort
notifications. There are no cross-entity transactions: an order referencing
a deleted product stays a valid row, and notifications may be observed by a
consumer that never sees a matching row when a later step failed.

Write ordering is persist-then-notify: the entity write is authoritative
and a queue send failure is logged, never surfaced as an operation failure.

Error classes returned to callers:
  - validation: bad input, no side effects occurred
  - not found:  referenced key absent
  - conflict:   a ReplaceIfMatch edit lost an ETag race; nothing was written
  - dependency: a store was unreachable or failed transiently
  - unavailable: a required store connection was never configured

Concurrency is handled entirely at the store boundary. Concurrent editors
of the same entity race on the ETag; the loser gets a conflict and the
workflows never retry or merge on their behalf.
*/
package workflow
