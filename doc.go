/*
Package retailstore is the persistence and notification core for a retail
back office: customer profiles, a product catalog with image attachments,
and an order workflow, backed by partitioned entity tables, a blob
container and at-least-once notification queues.

The layering is deliberate:

  - tablestore defines the generic TableStore[T] contract (optimistic
    concurrency via entity tags) with a DynamoDB implementation and an
    in-memory one for tests
  - blobstore and queue do the same for binary attachments (S3) and
    notification messages (SQS)
  - workflow composes the three into the customer, product, order and
    contract services, which own validation, key assignment and the
    persist-then-notify ordering
  - this package wires a full Fabric from a config.Config

Basic usage:

	cfg, _ := config.Load()
	fabric, err := retailstore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	if err := fabric.Provision(ctx); err != nil {
		return err
	}

	order, err := fabric.Services.Orders.Create(ctx, &models.Order{
		CustomerId: "C1",
		ProductId:  "P1",
	})

All store writes stamp a fresh entity tag; edits require the caller to
present the tag they read, and a mismatch surfaces as a conflict error
from the errors package.
*/
package retailstore
