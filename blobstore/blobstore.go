/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package blobstore defines the binary attachment store used for product
// images and uploaded contracts. Blobs live under a named container at a
// caller-chosen path; writes are last-write-wins and no version token is
// exposed.
package blobstore

import "context"

// BlobStore stores and retrieves named binary blobs.
type BlobStore interface {
	// EnsureContainer creates the named container when missing. Idempotent.
	EnsureContainer(ctx context.Context, name string) error

	// Put writes data at (container, path), overwriting any existing blob,
	// and returns a stable dereferenceable locator for it.
	Put(ctx context.Context, container, path string, data []byte, contentType string) (string, error)

	// Delete removes the blob at (container, path). Deleting an absent
	// blob is not an error.
	Delete(ctx context.Context, container, path string) error
}
