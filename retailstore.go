/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package retailstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/retailstore/blobstore"
	s3store "github.com/suparena/retailstore/blobstore/s3"
	"github.com/suparena/retailstore/config"
	"github.com/suparena/retailstore/models"
	"github.com/suparena/retailstore/queue"
	sqsqueue "github.com/suparena/retailstore/queue/sqs"
	"github.com/suparena/retailstore/tablestore"
	"github.com/suparena/retailstore/tablestore/ddb"
	"github.com/suparena/retailstore/workflow"
)

// Fabric bundles every backend client and the workflow services built on
// top of them. It is the single entry point for embedding the retail core
// in a process.
type Fabric struct {
	Customers tablestore.TableStore[models.CustomerProfile]
	Products  tablestore.TableStore[models.Product]
	Orders    tablestore.TableStore[models.Order]
	Blobs     blobstore.BlobStore
	Notify    queue.Queue
	Services  *workflow.Services

	// Per-type store registries. Open registers the primary store for each
	// entity type under PrimaryStoreKey; embedders with additional backends
	// (a regional table per tenant, say) register them alongside and
	// resolve by key.
	CustomerStores *TypedStores[models.CustomerProfile]
	ProductStores  *TypedStores[models.Product]
	OrderStores    *TypedStores[models.Order]

	cfg *config.Config
}

// PrimaryStoreKey is the registry key Open assigns the store built from
// the configured table for each entity type.
const PrimaryStoreKey = "primary"

// Open connects the AWS-backed stores described by cfg and wires the
// workflow services over them. It does not create any remote resources;
// call Provision for that.
func Open(ctx context.Context, cfg *config.Config) (*Fabric, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}

	ddbClient, err := ddb.NewClient(ctx, cfg.AccessKey, cfg.SecretKey, cfg.Region, cfg.EndpointURL)
	if err != nil {
		return nil, fmt.Errorf("dynamodb client: %w", err)
	}
	s3Client, err := s3store.NewClient(ctx, cfg.AccessKey, cfg.SecretKey, cfg.Region, cfg.EndpointURL)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	sqsClient, err := sqsqueue.NewClient(ctx, cfg.AccessKey, cfg.SecretKey, cfg.Region, cfg.EndpointURL)
	if err != nil {
		return nil, fmt.Errorf("sqs client: %w", err)
	}

	f := &Fabric{
		Customers:      ddb.New[models.CustomerProfile](ddbClient, cfg.CustomerTable),
		Products:       ddb.New[models.Product](ddbClient, cfg.ProductTable),
		Orders:         ddb.New[models.Order](ddbClient, cfg.OrderTable),
		Blobs:          s3store.New(s3Client, cfg.Region, cfg.EndpointURL),
		Notify:         sqsqueue.New(sqsClient),
		CustomerStores: NewTypedStores[models.CustomerProfile](),
		ProductStores:  NewTypedStores[models.Product](),
		OrderStores:    NewTypedStores[models.Order](),
		cfg:            cfg,
	}
	if err := f.CustomerStores.Register(PrimaryStoreKey, f.Customers); err != nil {
		return nil, err
	}
	if err := f.ProductStores.Register(PrimaryStoreKey, f.Products); err != nil {
		return nil, err
	}
	if err := f.OrderStores.Register(PrimaryStoreKey, f.Orders); err != nil {
		return nil, err
	}
	f.Services = workflow.NewServices(cfg, f.Customers, f.Products, f.Orders, f.Blobs, f.Notify, nil)
	return f, nil
}

// Provision creates every table, container and queue named in the
// configuration. Each ensure call is idempotent, so Provision can run on
// every startup.
func (f *Fabric) Provision(ctx context.Context) error {
	if err := f.Customers.EnsureTable(ctx); err != nil {
		return fmt.Errorf("customer table: %w", err)
	}
	if err := f.Products.EnsureTable(ctx); err != nil {
		return fmt.Errorf("product table: %w", err)
	}
	if err := f.Orders.EnsureTable(ctx); err != nil {
		return fmt.Errorf("order table: %w", err)
	}
	for _, container := range []string{f.cfg.ImageContainer, f.cfg.ContractContainer} {
		if err := f.Blobs.EnsureContainer(ctx, container); err != nil {
			return fmt.Errorf("container %s: %w", container, err)
		}
	}
	for _, q := range []string{f.cfg.CustomerQueue, f.cfg.OrderQueue, f.cfg.InventoryQueue} {
		if err := f.Notify.EnsureQueue(ctx, q); err != nil {
			return fmt.Errorf("queue %s: %w", q, err)
		}
	}
	return nil
}

// TypedStores is a thread-safe registry of TableStore instances for a
// single entity type, keyed by name. Embedders with several backends for
// the same type (say, a regional table per tenant) register them here and
// resolve by key.
type TypedStores[T any] struct {
	mu     sync.RWMutex
	stores map[string]tablestore.TableStore[T]
}

// NewTypedStores creates an empty registry for type T.
func NewTypedStores[T any]() *TypedStores[T] {
	return &TypedStores[T]{
		stores: make(map[string]tablestore.TableStore[T]),
	}
}

// Register adds a store under the given key.
func (ts *TypedStores[T]) Register(key string, store tablestore.TableStore[T]) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.stores[key]; exists {
		return fmt.Errorf("store with key %q already registered", key)
	}
	ts.stores[key] = store
	return nil
}

// Get retrieves a store by key.
func (ts *TypedStores[T]) Get(key string) (tablestore.TableStore[T], error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	store, exists := ts.stores[key]
	if !exists {
		return nil, fmt.Errorf("store with key %q not found", key)
	}
	return store, nil
}

// Remove deletes a store by key.
func (ts *TypedStores[T]) Remove(key string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.stores[key]; !exists {
		return fmt.Errorf("store with key %q not found", key)
	}
	delete(ts.stores, key)
	return nil
}

// List returns all registered store keys.
func (ts *TypedStores[T]) List() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	keys := make([]string, 0, len(ts.stores))
	for k := range ts.stores {
		keys = append(keys, k)
	}
	return keys
}
