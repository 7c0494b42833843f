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
)

func sampleProduct() *models.Product {
	return &models.Product{
		ProductId:   "P1",
		Name:        "Widget",
		Price:       19.95,
		Description: "A very useful widget",
	}
}

func sampleImage() *Attachment {
	return &Attachment{
		FileName:    "widget.png",
		ContentType: "image/png",
		Data:        []byte{0x89, 0x50, 0x4e, 0x47},
	}
}

func TestCreateProductWithImage(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.services.Products.Create(ctx, sampleProduct(), sampleImage())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.RowKey != "P1" || created.PartitionKey != models.ProductPartition {
		t.Errorf("unexpected keys %q/%q", created.PartitionKey, created.RowKey)
	}
	if created.ImageUrl == "" {
		t.Error("expected ImageUrl to be set from the stored blob")
	}

	data, contentType, ok := env.blobs.Get(env.cfg.ImageContainer, "P1/widget.png")
	if !ok {
		t.Fatal("image blob not stored")
	}
	if contentType != "image/png" || len(data) != 4 {
		t.Errorf("stored blob mismatch: %q %d bytes", contentType, len(data))
	}

	msgs := env.queue.Messages(env.cfg.InventoryQueue)
	if len(msgs) != 4 {
		t.Fatalf("expected 4 inventory messages, got %d: %v", len(msgs), msgs)
	}
	wantPrefixes := []string{
		"Product created: P1",
		"Uploading image: P1/widget.png",
		"Inventory update: Added P1 with quantity 1",
		"Validate price: P1 - 19.95",
	}
	for i, want := range wantPrefixes {
		if !strings.HasPrefix(msgs[i], want) {
			t.Errorf("message %d = %q, want prefix %q", i, msgs[i], want)
		}
	}
}

func TestCreateProductWithoutImage(t *testing.T) {
	env := newTestEnv()

	created, err := env.services.Products.Create(context.Background(), sampleProduct(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if created.ImageUrl != "" {
		t.Errorf("no attachment, ImageUrl should stay empty, got %q", created.ImageUrl)
	}
	if env.blobs.Count(env.cfg.ImageContainer) != 0 {
		t.Error("no blob should be stored")
	}
	if got := len(env.queue.Messages(env.cfg.InventoryQueue)); got != 3 {
		t.Errorf("expected 3 inventory messages without an image, got %d", got)
	}
}

func TestCreateProductInvalidPrice(t *testing.T) {
	env := newTestEnv()

	bad := sampleProduct()
	bad.Price = 0
	_, err := env.services.Products.Create(context.Background(), bad, nil)
	if !errors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if env.products.Count() != 0 {
		t.Error("validation failure must write nothing")
	}
}

func TestCreateProductBlobFailure(t *testing.T) {
	env := newTestEnv()
	env.blobs.WithPutError(fail.New("storage offline"))

	_, err := env.services.Products.Create(context.Background(), sampleProduct(), sampleImage())
	if !errors.IsDependency(err) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if env.products.Count() != 0 {
		t.Error("failed image upload must not persist the product")
	}
	if len(env.queue.Messages(env.cfg.InventoryQueue)) != 0 {
		t.Error("failed create must send nothing")
	}
}

func TestEditProductStaleETag(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.services.Products.Create(ctx, sampleProduct(), nil)
	if err != nil {
		t.Fatal(err)
	}

	winner := *created
	winner.Price = 24.95
	if _, err := env.services.Products.Edit(ctx, &winner, nil); err != nil {
		t.Fatalf("first edit: %v", err)
	}

	stale := *created
	stale.Price = 9.95
	if _, err := env.services.Products.Edit(ctx, &stale, nil); !errors.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	got, _ := env.services.Products.Get(ctx, "P1")
	if got.Price != 24.95 {
		t.Errorf("losing edit must not modify the row, price %v", got.Price)
	}
}

func TestEditProductPreservesImageUrl(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.services.Products.Create(ctx, sampleProduct(), sampleImage())
	if err != nil {
		t.Fatal(err)
	}

	update := *created
	update.ImageUrl = ""
	update.Description = "Now improved"
	edited, err := env.services.Products.Edit(ctx, &update, nil)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if edited.ImageUrl != created.ImageUrl {
		t.Errorf("edit without a new image must keep the stored locator, got %q", edited.ImageUrl)
	}
}

func TestEditProductReplacesImage(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.services.Products.Create(ctx, sampleProduct(), sampleImage())
	if err != nil {
		t.Fatal(err)
	}

	update := *created
	next := &Attachment{FileName: "widget-v2.png", ContentType: "image/png", Data: []byte{1, 2, 3}}
	edited, err := env.services.Products.Edit(ctx, &update, next)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if !strings.Contains(edited.ImageUrl, "widget-v2.png") {
		t.Errorf("ImageUrl should point at the new blob, got %q", edited.ImageUrl)
	}
	if _, _, ok := env.blobs.Get(env.cfg.ImageContainer, "P1/widget-v2.png"); !ok {
		t.Error("new image blob not stored")
	}

	msgs := env.queue.Messages(env.cfg.InventoryQueue)
	if !strings.HasPrefix(msgs[len(msgs)-1], "Uploading image: P1/widget-v2.png") {
		t.Errorf("expected an upload message for the replacement, got %q", msgs[len(msgs)-1])
	}
}

func TestDeleteProductRemovesRowAndBlob(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.services.Products.Create(ctx, sampleProduct(), sampleImage()); err != nil {
		t.Fatal(err)
	}

	if err := env.services.Products.Delete(ctx, "P1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if env.products.Count() != 0 {
		t.Error("row should be gone")
	}
	if _, _, ok := env.blobs.Get(env.cfg.ImageContainer, "P1/widget.png"); ok {
		t.Error("image blob should be gone")
	}
}

func TestDeleteProductAbsentIsNoop(t *testing.T) {
	env := newTestEnv()

	if err := env.services.Products.Delete(context.Background(), "missing"); err != nil {
		t.Errorf("deleting an absent product must succeed, got %v", err)
	}
}

func TestListProducts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	for _, id := range []string{"P1", "P2"} {
		p := sampleProduct()
		p.ProductId = id
		if _, err := env.services.Products.Create(ctx, p, nil); err != nil {
			t.Fatal(err)
		}
	}

	products, err := env.services.Products.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("expected 2 products, got %d", len(products))
	}
}

func TestProductServiceUnavailable(t *testing.T) {
	env := newTestEnv()
	services := NewServices(env.cfg, env.customers, nil, env.orders, env.blobs, env.queue, testLogger())

	if _, err := services.Products.Create(context.Background(), sampleProduct(), nil); !errors.IsUnavailable(err) {
		t.Errorf("expected unavailable, got %v", err)
	}
}
