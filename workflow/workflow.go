/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workflow

import (
	"context"
	"log/slog"

	"github.com/suparena/retailstore/blobstore"
	"github.com/suparena/retailstore/config"
	"github.com/suparena/retailstore/errors"
	"github.com/suparena/retailstore/models"
	"github.com/suparena/retailstore/queue"
	"github.com/suparena/retailstore/registry"
	"github.com/suparena/retailstore/tablestore"
)

// Attachment is a binary upload handed to a workflow alongside an entity.
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Services bundles the workflow services over a shared set of store
// connections. Construct once at process start and reuse; each operation is
// an independent, stateless unit of work.
type Services struct {
	Customers *CustomerService
	Products  *ProductService
	Orders    *OrderService
	Contracts *ContractService
}

// NewServices wires the workflow services. A nil store or queue is allowed:
// the affected operations then fail with the unavailable error instead of
// panicking, so a missing connection surfaces as a result at call time.
func NewServices(
	cfg *config.Config,
	customers tablestore.TableStore[models.CustomerProfile],
	products tablestore.TableStore[models.Product],
	orders tablestore.TableStore[models.Order],
	blobs blobstore.BlobStore,
	notify queue.Queue,
	logger *slog.Logger,
) *Services {
	if logger == nil {
		logger = slog.Default()
	}

	registry.RegisterTable[models.CustomerProfile](cfg.CustomerTable, models.CustomerPartition)
	registry.RegisterTable[models.Product](cfg.ProductTable, models.ProductPartition)
	registry.RegisterTable[models.Order](cfg.OrderTable, models.OrderPartition)

	return &Services{
		Customers: &CustomerService{
			store:  customers,
			notify: notify,
			cfg:    cfg,
			logger: logger,
		},
		Products: &ProductService{
			store:  products,
			blobs:  blobs,
			notify: notify,
			cfg:    cfg,
			logger: logger,
		},
		Orders: &OrderService{
			store:     orders,
			products:  products,
			customers: customers,
			notify:    notify,
			cfg:       cfg,
			logger:    logger,
		},
		Contracts: &ContractService{
			blobs:  blobs,
			cfg:    cfg,
			logger: logger,
		},
	}
}

// partitionFor returns the registered default partition for T, falling back
// to the given constant when the type was never registered.
func partitionFor[T any](fallback string) string {
	if b, ok := registry.GetBinding[T](); ok && b.DefaultPartition != "" {
		return b.DefaultPartition
	}
	return fallback
}

// mapStoreErr classifies a store failure: semantic errors pass through,
// anything else is a transient dependency failure.
func mapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.IsNotFound(err) || errors.IsConflict(err) || errors.IsValidation(err) {
		return err
	}
	return errors.NewDependencyError(op, err)
}

// sendBestEffort appends a notification, logging instead of failing the
// operation when the queue rejects it. The entity write is authoritative;
// the queue is a side channel.
func sendBestEffort(ctx context.Context, logger *slog.Logger, notify queue.Queue, queueName, message string) {
	if notify == nil {
		return
	}
	if err := notify.EnsureQueue(ctx, queueName); err != nil {
		logger.Error("ensure queue failed", "queue", queueName, "error", err)
		return
	}
	if err := notify.Send(ctx, queueName, message); err != nil {
		logger.Error("queue send failed", "queue", queueName, "error", err)
	}
}
