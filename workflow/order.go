/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/suparena/retailstore/config"
	"github.com/suparena/retailstore/errors"
	"github.com/suparena/retailstore/models"
	"github.com/suparena/retailstore/queue"
	"github.com/suparena/retailstore/tablestore"
)

// OrderService implements the order workflows. Orders reference customers
// and products by plain identifier; the product reference is resolved at
// creation time to fill an omitted price.
type OrderService struct {
	store     tablestore.TableStore[models.Order]
	products  tablestore.TableStore[models.Product]
	customers tablestore.TableStore[models.CustomerProfile]
	notify    queue.Queue
	cfg       *config.Config
	logger    *slog.Logger
}

func (s *OrderService) ready() error {
	if s.store == nil {
		return errors.ErrUnavailable
	}
	return nil
}

// Create runs the order creation sequence: validate, assign identity,
// resolve the price from the referenced product when omitted, stamp derived
// fields, persist, then notify. Validation and resolution failures leave
// the Orders collection untouched.
func (s *OrderService) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if order.RowKey == "" {
		order.RowKey = uuid.NewString()
	}
	if order.PartitionKey == "" {
		order.PartitionKey = partitionFor[models.Order](models.OrderPartition)
	}

	if order.Price == 0 {
		price, err := s.resolvePrice(ctx, order.ProductId)
		if err != nil {
			return nil, err
		}
		order.Price = price
	}

	order.OrderDate = time.Now().UTC()
	order.TrackingId = models.TrackingId(order.RowKey)
	order.Status = models.StatusPending

	if err := s.store.EnsureTable(ctx); err != nil {
		return nil, mapStoreErr("orders.ensure", err)
	}
	if _, err := s.store.Upsert(ctx, order, tablestore.InsertOrReplace); err != nil {
		return nil, mapStoreErr("orders.upsert", err)
	}
	s.logger.Info("order created", "row", order.RowKey, "tracking", order.TrackingId)

	sendBestEffort(ctx, s.logger, s.notify, s.cfg.OrderQueue,
		fmt.Sprintf("Order created: %s at %s", order.RowKey, time.Now().UTC().Format(time.RFC3339)))

	return order, nil
}

// resolvePrice reads the referenced product's current price. An unknown
// product is the caller's mistake; anything else is a transient failure.
func (s *OrderService) resolvePrice(ctx context.Context, productId string) (float64, error) {
	if s.products == nil {
		return 0, errors.ErrUnavailable
	}
	product, err := s.products.Get(ctx, partitionFor[models.Product](models.ProductPartition), productId)
	if err != nil {
		if errors.IsNotFound(err) {
			return 0, errors.NewValidationError("ProductId", "invalid product selected")
		}
		return 0, mapStoreErr("orders.resolveprice", err)
	}
	return product.Price, nil
}

// Edit replaces an existing order using the caller-held ETag.
func (s *OrderService) Edit(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if order.PartitionKey == "" || order.RowKey == "" {
		return nil, errors.NewValidationError("RowKey", "existing order key required")
	}

	if _, err := s.store.Upsert(ctx, order, tablestore.ReplaceIfMatch); err != nil {
		return nil, mapStoreErr("orders.replace", err)
	}
	s.logger.Info("order updated", "row", order.RowKey)
	return order, nil
}

// Delete removes an order by id. The row is looked up first to discover its
// partition; a missing order is a no-op.
func (s *OrderService) Delete(ctx context.Context, orderId string) error {
	if err := s.ready(); err != nil {
		return err
	}

	matches, err := s.store.Query(ctx, &tablestore.QueryParams{Row: orderId, Limit: 1})
	if err != nil {
		return mapStoreErr("orders.query", err)
	}
	if len(matches) == 0 {
		return nil
	}
	order := matches[0]

	if err := s.store.Delete(ctx, order.PartitionKey, order.RowKey); err != nil {
		return mapStoreErr("orders.delete", err)
	}
	s.logger.Info("order deleted", "row", order.RowKey)
	return nil
}

// Get returns the order at the default partition and given row.
func (s *OrderService) Get(ctx context.Context, orderId string) (*models.Order, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	order, err := s.store.Get(ctx, partitionFor[models.Order](models.OrderPartition), orderId)
	if err != nil {
		return nil, mapStoreErr("orders.get", err)
	}
	return order, nil
}

// List returns every order in the default partition.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := s.store.EnsureTable(ctx); err != nil {
		return nil, mapStoreErr("orders.ensure", err)
	}
	orders, err := s.store.Query(ctx, &tablestore.QueryParams{
		Partition: partitionFor[models.Order](models.OrderPartition),
	})
	if err != nil {
		return nil, mapStoreErr("orders.query", err)
	}
	return orders, nil
}

// LookupData returns the customers and products an order form offers,
// resolving the order's logical references for display.
func (s *OrderService) LookupData(ctx context.Context) ([]models.CustomerProfile, []models.Product, error) {
	if s.customers == nil || s.products == nil {
		return nil, nil, errors.ErrUnavailable
	}

	customers, err := s.customers.Query(ctx, &tablestore.QueryParams{
		Partition: partitionFor[models.CustomerProfile](models.CustomerPartition),
	})
	if err != nil {
		return nil, nil, mapStoreErr("customers.query", err)
	}

	products, err := s.products.Query(ctx, &tablestore.QueryParams{
		Partition: partitionFor[models.Product](models.ProductPartition),
	})
	if err != nil {
		return nil, nil, mapStoreErr("products.query", err)
	}
	return customers, products, nil
}
