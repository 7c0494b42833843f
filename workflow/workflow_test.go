/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workflow

import (
	"io"
	"log/slog"

	blobmem "github.com/suparena/retailstore/blobstore/memory"
	"github.com/suparena/retailstore/config"
	"github.com/suparena/retailstore/models"
	queuemem "github.com/suparena/retailstore/queue/memory"
	storemem "github.com/suparena/retailstore/tablestore/memory"
)

// testEnv wires the workflow services over in-memory backends so tests can
// assert on rows, blobs and queue messages independently.
type testEnv struct {
	services  *Services
	customers *storemem.TableStore[models.CustomerProfile]
	products  *storemem.TableStore[models.Product]
	orders    *storemem.TableStore[models.Order]
	blobs     *blobmem.BlobStore
	queue     *queuemem.Queue
	cfg       *config.Config
}

func newTestEnv() *testEnv {
	cfg := &config.Config{}
	env := &testEnv{
		customers: storemem.New[models.CustomerProfile](),
		products:  storemem.New[models.Product](),
		orders:    storemem.New[models.Order](),
		blobs:     blobmem.New(),
		queue:     queuemem.New(),
		cfg:       cfg,
	}
	applyTestDefaults(cfg)
	env.services = NewServices(cfg, env.customers, env.products, env.orders, env.blobs, env.queue, testLogger())
	return env
}

func applyTestDefaults(cfg *config.Config) {
	cfg.CustomerTable = "CustomerProfiles"
	cfg.ProductTable = "Products"
	cfg.OrderTable = "Orders"
	cfg.ImageContainer = "productimages"
	cfg.ContractContainer = "contracts"
	cfg.CustomerQueue = "customerqueue"
	cfg.OrderQueue = "orderqueue"
	cfg.InventoryQueue = "inventoryqueue"
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
