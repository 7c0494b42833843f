/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/suparena/retailstore/blobstore"
	"github.com/suparena/retailstore/config"
	"github.com/suparena/retailstore/errors"
	"github.com/suparena/retailstore/models"
	"github.com/suparena/retailstore/queue"
	"github.com/suparena/retailstore/tablestore"
)

// ProductService implements the product catalog workflows, including image
// attachments stored in the blob container.
type ProductService struct {
	store  tablestore.TableStore[models.Product]
	blobs  blobstore.BlobStore
	notify queue.Queue
	cfg    *config.Config
	logger *slog.Logger
}

func (s *ProductService) ready() error {
	if s.store == nil {
		return errors.ErrUnavailable
	}
	return nil
}

// Create validates and persists a new product. ProductId doubles as the row
// key. When an image is attached it is stored first and its locator recorded
// on the product; notifications go out only after the entity write lands.
func (s *ProductService) Create(ctx context.Context, product *models.Product, image *Attachment) (*models.Product, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	product.PartitionKey = partitionFor[models.Product](models.ProductPartition)
	product.RowKey = product.ProductId

	if err := s.store.EnsureTable(ctx); err != nil {
		return nil, mapStoreErr("products.ensure", err)
	}

	var blobName string
	if image != nil && len(image.Data) > 0 {
		var err error
		blobName, err = s.storeImage(ctx, product, image)
		if err != nil {
			return nil, err
		}
	}

	if _, err := s.store.Upsert(ctx, product, tablestore.InsertOrReplace); err != nil {
		return nil, mapStoreErr("products.upsert", err)
	}
	s.logger.Info("product created", "row", product.RowKey)

	now := time.Now().UTC().Format(time.RFC3339)
	sendBestEffort(ctx, s.logger, s.notify, s.cfg.InventoryQueue,
		fmt.Sprintf("Product created: %s at %s", product.ProductId, now))
	if blobName != "" {
		sendBestEffort(ctx, s.logger, s.notify, s.cfg.InventoryQueue,
			fmt.Sprintf("Uploading image: %s", blobName))
	}
	sendBestEffort(ctx, s.logger, s.notify, s.cfg.InventoryQueue,
		fmt.Sprintf("Inventory update: Added %s with quantity 1", product.ProductId))
	sendBestEffort(ctx, s.logger, s.notify, s.cfg.InventoryQueue,
		fmt.Sprintf("Validate price: %s - %v", product.ProductId, product.Price))

	return product, nil
}

// Edit replaces an existing product using the caller-held ETag. With no new
// image the stored ImageUrl is preserved from the current row.
func (s *ProductService) Edit(ctx context.Context, product *models.Product, image *Attachment) (*models.Product, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if product.PartitionKey == "" {
		product.PartitionKey = partitionFor[models.Product](models.ProductPartition)
	}
	if product.RowKey == "" {
		product.RowKey = product.ProductId
	}

	var blobName string
	if image != nil && len(image.Data) > 0 {
		var err error
		blobName, err = s.storeImage(ctx, product, image)
		if err != nil {
			return nil, err
		}
	} else if product.ImageUrl == "" {
		current, err := s.store.Get(ctx, product.PartitionKey, product.RowKey)
		if err != nil {
			return nil, mapStoreErr("products.get", err)
		}
		product.ImageUrl = current.ImageUrl
	}

	if _, err := s.store.Upsert(ctx, product, tablestore.ReplaceIfMatch); err != nil {
		return nil, mapStoreErr("products.replace", err)
	}
	s.logger.Info("product updated", "row", product.RowKey)

	if blobName != "" {
		sendBestEffort(ctx, s.logger, s.notify, s.cfg.InventoryQueue,
			fmt.Sprintf("Uploading image: %s", blobName))
	}
	return product, nil
}

// Get resolves a product by its id, which is its row key.
func (s *ProductService) Get(ctx context.Context, productId string) (*models.Product, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	product, err := s.store.Get(ctx, partitionFor[models.Product](models.ProductPartition), productId)
	if err != nil {
		return nil, mapStoreErr("products.get", err)
	}
	return product, nil
}

// Delete removes a product by id, resolving the row across partitions
// first. A missing product is a no-op. The stored image blob is removed
// best-effort after the row.
func (s *ProductService) Delete(ctx context.Context, productId string) error {
	if err := s.ready(); err != nil {
		return err
	}

	matches, err := s.store.Query(ctx, &tablestore.QueryParams{Row: productId, Limit: 1})
	if err != nil {
		return mapStoreErr("products.query", err)
	}
	if len(matches) == 0 {
		return nil
	}
	product := matches[0]

	if err := s.store.Delete(ctx, product.PartitionKey, product.RowKey); err != nil {
		return mapStoreErr("products.delete", err)
	}
	s.logger.Info("product deleted", "row", product.RowKey)

	if product.ImageUrl != "" && s.blobs != nil {
		if err := s.blobs.Delete(ctx, s.cfg.ImageContainer, imagePath(&product)); err != nil {
			s.logger.Error("image delete failed", "row", product.RowKey, "error", err)
		}
	}
	return nil
}

// List returns every product in the default partition.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := s.store.EnsureTable(ctx); err != nil {
		return nil, mapStoreErr("products.ensure", err)
	}
	products, err := s.store.Query(ctx, &tablestore.QueryParams{
		Partition: partitionFor[models.Product](models.ProductPartition),
	})
	if err != nil {
		return nil, mapStoreErr("products.query", err)
	}
	return products, nil
}

// storeImage uploads the attachment for product and records its locator.
// Returns the blob name used in notifications.
func (s *ProductService) storeImage(ctx context.Context, product *models.Product, image *Attachment) (string, error) {
	if s.blobs == nil {
		return "", errors.ErrUnavailable
	}
	if err := s.blobs.EnsureContainer(ctx, s.cfg.ImageContainer); err != nil {
		return "", mapStoreErr("images.ensure", err)
	}

	blobName := fmt.Sprintf("%s/%s", product.ProductId, image.FileName)
	url, err := s.blobs.Put(ctx, s.cfg.ImageContainer, blobName, image.Data, image.ContentType)
	if err != nil {
		return "", mapStoreErr("images.put", err)
	}
	product.ImageUrl = url
	return blobName, nil
}

// imagePath recovers the blob path for a product's stored image from its
// locator: the product id directory plus the final URL segment.
func imagePath(product *models.Product) string {
	segments := strings.Split(product.ImageUrl, "/")
	fileName := segments[len(segments)-1]
	return product.ProductId + "/" + fileName
}
