/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workflow

import (
	"context"
	fail "errors"
	"strings"
	"testing"

	"github.com/suparena/retailstore/errors"
	"github.com/suparena/retailstore/models"
	"github.com/suparena/retailstore/tablestore"
)

func seedProduct(t *testing.T, env *testEnv, id string, price float64) {
	t.Helper()
	p := &models.Product{ProductId: id, Name: "Widget " + id, Price: price}
	p.SetEntityKey(models.ProductPartition, id)
	if _, err := env.products.Upsert(context.Background(), p, tablestore.InsertOrReplace); err != nil {
		t.Fatal(err)
	}
}

func TestCreateOrderResolvesPriceFromProduct(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedProduct(t, env, "P1", 9.99)

	order, err := env.services.Orders.Create(ctx, &models.Order{
		CustomerId: "C1",
		ProductId:  "P1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if order.Price != 9.99 {
		t.Errorf("expected resolved price 9.99, got %v", order.Price)
	}
	if order.Status != models.StatusPending {
		t.Errorf("expected status Pending, got %q", order.Status)
	}
	wantTracking := "TRK-" + order.RowKey[:8]
	if order.TrackingId != wantTracking {
		t.Errorf("expected tracking id %q, got %q", wantTracking, order.TrackingId)
	}
	if order.OrderDate.IsZero() {
		t.Error("expected an order date")
	}
	if order.ETag == "" {
		t.Error("expected an ETag after persistence")
	}

	got, err := env.orders.Get(ctx, models.OrderPartition, order.RowKey)
	if err != nil {
		t.Fatalf("Get after create: %v", err)
	}
	if got.Price != 9.99 || got.TrackingId != wantTracking {
		t.Errorf("stored row mismatch: %+v", got)
	}
}

func TestCreateOrderSupplierPriceWins(t *testing.T) {
	env := newTestEnv()
	seedProduct(t, env, "P1", 9.99)

	order, err := env.services.Orders.Create(context.Background(), &models.Order{
		CustomerId: "C1",
		ProductId:  "P1",
		Price:      20,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.Price != 20 {
		t.Errorf("caller-supplied price must not be overwritten, got %v", order.Price)
	}
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.Orders.Create(context.Background(), &models.Order{
		CustomerId: "C1",
		ProductId:  "ghost",
	})
	if !errors.IsValidation(err) {
		t.Fatalf("expected validation error for unknown product, got %v", err)
	}
	if env.orders.Count() != 0 {
		t.Error("failed creation must write nothing to the Orders collection")
	}
	if len(env.queue.Messages(env.cfg.OrderQueue)) != 0 {
		t.Error("failed creation must send no notifications")
	}
}

func TestCreateOrderProductStoreFailure(t *testing.T) {
	env := newTestEnv()
	env.products.WithGetError(fail.New("throttled"))

	_, err := env.services.Orders.Create(context.Background(), &models.Order{
		CustomerId: "C1",
		ProductId:  "P1",
	})
	if !errors.IsDependency(err) {
		t.Fatalf("expected dependency error for transient store failure, got %v", err)
	}
	if env.orders.Count() != 0 {
		t.Error("failed creation must write nothing to the Orders collection")
	}
}

func TestCreateOrderMissingFields(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.Orders.Create(context.Background(), &models.Order{ProductId: "P1"})
	if !errors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if env.orders.Count() != 0 {
		t.Error("validation failure must have no side effects")
	}
}

func TestCreateOrderNotifiesAfterPersist(t *testing.T) {
	env := newTestEnv()
	seedProduct(t, env, "P1", 5)

	order, err := env.services.Orders.Create(context.Background(), &models.Order{
		CustomerId: "C1",
		ProductId:  "P1",
	})
	if err != nil {
		t.Fatal(err)
	}

	msgs := env.queue.Messages(env.cfg.OrderQueue)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(msgs))
	}
	if !strings.HasPrefix(msgs[0], "Order created: "+order.RowKey) {
		t.Errorf("unexpected notification %q", msgs[0])
	}
}

func TestCreateOrderQueueFailureDoesNotFail(t *testing.T) {
	env := newTestEnv()
	seedProduct(t, env, "P1", 5)
	env.queue.WithSendError(fail.New("queue down"))

	order, err := env.services.Orders.Create(context.Background(), &models.Order{
		CustomerId: "C1",
		ProductId:  "P1",
	})
	if err != nil {
		t.Fatalf("queue failure must not fail the operation: %v", err)
	}
	if _, err := env.orders.Get(context.Background(), models.OrderPartition, order.RowKey); err != nil {
		t.Errorf("order should still be persisted: %v", err)
	}
}

func TestCreateOrderPersistFailure(t *testing.T) {
	env := newTestEnv()
	seedProduct(t, env, "P1", 5)
	env.orders.WithPutError(fail.New("table offline"))

	_, err := env.services.Orders.Create(context.Background(), &models.Order{
		CustomerId: "C1",
		ProductId:  "P1",
	})
	if !errors.IsDependency(err) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestEditOrderStaleETag(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedProduct(t, env, "P1", 5)

	created, err := env.services.Orders.Create(ctx, &models.Order{CustomerId: "C1", ProductId: "P1"})
	if err != nil {
		t.Fatal(err)
	}

	// Another writer wins the race
	winner := *created
	winner.Status = models.StatusShipped
	if _, err := env.services.Orders.Edit(ctx, &winner); err != nil {
		t.Fatalf("first edit should succeed: %v", err)
	}

	stale := *created
	stale.Status = models.StatusCancelled
	_, err = env.services.Orders.Edit(ctx, &stale)
	if !errors.IsConflict(err) {
		t.Fatalf("expected conflict for stale ETag, got %v", err)
	}

	got, err := env.orders.Get(ctx, models.OrderPartition, created.RowKey)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusShipped {
		t.Errorf("losing edit must not modify the row, status: %q", got.Status)
	}
}

func TestDeleteOrderIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedProduct(t, env, "P1", 5)

	created, err := env.services.Orders.Create(ctx, &models.Order{CustomerId: "C1", ProductId: "P1"})
	if err != nil {
		t.Fatal(err)
	}

	if err := env.services.Orders.Delete(ctx, created.RowKey); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := env.services.Orders.Delete(ctx, created.RowKey); err != nil {
		t.Errorf("second delete should observe the same outcome, got %v", err)
	}
	if err := env.services.Orders.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("deleting an unknown order is a no-op, got %v", err)
	}
}

func TestListOrdersEmpty(t *testing.T) {
	env := newTestEnv()

	orders, err := env.services.Orders.List(context.Background())
	if err != nil {
		t.Fatalf("listing an empty collection must not fail: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected no orders, got %d", len(orders))
	}
}

func TestOrderLookupData(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedProduct(t, env, "P1", 5)

	if _, err := env.services.Customers.Create(ctx, &models.CustomerProfile{
		Name:    "Thandi Nkosi",
		Email:   "thandi@example.com",
		Address: "12 Long Street",
		Phone:   "+27 21 555 0100",
	}); err != nil {
		t.Fatal(err)
	}

	customers, products, err := env.services.Orders.LookupData(ctx)
	if err != nil {
		t.Fatalf("LookupData: %v", err)
	}
	if len(customers) != 1 || len(products) != 1 {
		t.Errorf("expected 1 customer and 1 product, got %d / %d", len(customers), len(products))
	}
}

func TestOrderServiceUnavailable(t *testing.T) {
	env := newTestEnv()
	services := NewServices(env.cfg, env.customers, env.products, nil, env.blobs, env.queue, testLogger())

	if _, err := services.Orders.Create(context.Background(), &models.Order{CustomerId: "C1", ProductId: "P1"}); !errors.IsUnavailable(err) {
		t.Errorf("expected unavailable, got %v", err)
	}
	if _, err := services.Orders.List(context.Background()); !errors.IsUnavailable(err) {
		t.Errorf("expected unavailable, got %v", err)
	}
	if err := services.Orders.Delete(context.Background(), "x"); !errors.IsUnavailable(err) {
		t.Errorf("expected unavailable, got %v", err)
	}
}
