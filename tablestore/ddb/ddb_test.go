/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/suparena/retailstore/models"
	"github.com/suparena/retailstore/tablestore"
)

// getOrderStore connects to a real DynamoDB table named by the environment.
// Tests are skipped when no credentials are configured.
func getOrderStore(t *testing.T) *TableStore[models.Order] {
	t.Helper()
	_ = godotenv.Load()

	accessKey := os.Getenv("AWS_ACCESS_KEY")
	secretKey := os.Getenv("AWS_SECRET_KEY")
	region := os.Getenv("AWS_REGION")
	tableName := os.Getenv("RETAIL_ORDER_TABLE")

	if accessKey == "" || secretKey == "" || region == "" || tableName == "" {
		t.Skip("DynamoDB integration test skipped: AWS environment not configured")
	}

	client, err := NewClient(context.Background(), accessKey, secretKey, region, os.Getenv("AWS_ENDPOINT_URL"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return New[models.Order](client, tableName)
}

func TestIntegrationUpsertGetDelete(t *testing.T) {
	store := getOrderStore(t)
	ctx := context.Background()

	if err := store.EnsureTable(ctx); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}

	order := &models.Order{
		CustomerId: "C-integration",
		ProductId:  "P-integration",
		Price:      42.50,
		Status:     models.StatusPending,
	}
	order.SetEntityKey(models.OrderPartition, "integration-test-row")

	etag, err := store.Upsert(ctx, order, tablestore.InsertOrReplace)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if etag == "" || order.ETag != etag {
		t.Errorf("expected ETag stamped on entity, got %q / %q", etag, order.ETag)
	}

	got, err := store.Get(ctx, models.OrderPartition, "integration-test-row")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Price != 42.50 || got.ETag != etag {
		t.Errorf("round trip mismatch: %+v", got)
	}

	// Stale tag must lose the race
	stale := *got
	stale.ETag = "stale"
	if _, err := store.Upsert(ctx, &stale, tablestore.ReplaceIfMatch); err == nil {
		t.Error("expected conflict for stale ETag")
	}

	if err := store.Delete(ctx, models.OrderPartition, "integration-test-row"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// Second delete is still fine
	if err := store.Delete(ctx, models.OrderPartition, "integration-test-row"); err != nil {
		t.Errorf("repeat Delete should succeed, got %v", err)
	}
}

func TestIntegrationQueryPartition(t *testing.T) {
	store := getOrderStore(t)
	ctx := context.Background()

	results, err := store.Query(ctx, &tablestore.QueryParams{Partition: models.OrderPartition})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	t.Logf("found %d orders in partition %s", len(results), models.OrderPartition)
}
