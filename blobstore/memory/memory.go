/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides an in-memory BlobStore for tests and local
// development. Locators use the mem:// scheme.
package memory

import (
	"context"
	"fmt"
	"sync"
)

type blob struct {
	data        []byte
	contentType string
}

// BlobStore is an in-memory implementation of blobstore.BlobStore.
type BlobStore struct {
	mu         sync.RWMutex
	containers map[string]map[string]blob

	putError error
}

// New creates an empty in-memory BlobStore.
func New() *BlobStore {
	return &BlobStore{
		containers: make(map[string]map[string]blob),
	}
}

// WithPutError makes Put operations return err
func (s *BlobStore) WithPutError(err error) *BlobStore {
	s.putError = err
	return s
}

// EnsureContainer creates the named container when missing.
func (s *BlobStore) EnsureContainer(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.containers[name]; !ok {
		s.containers[name] = make(map[string]blob)
	}
	return nil
}

// Put stores data at (container, path), creating the container on demand.
func (s *BlobStore) Put(ctx context.Context, container, path string, data []byte, contentType string) (string, error) {
	if s.putError != nil {
		return "", s.putError
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.containers[container]
	if !ok {
		c = make(map[string]blob)
		s.containers[container] = c
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	c[path] = blob{data: stored, contentType: contentType}

	return fmt.Sprintf("mem://%s/%s", container, path), nil
}

// Delete removes the blob at (container, path); absent blobs are fine.
func (s *BlobStore) Delete(ctx context.Context, container, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.containers[container]; ok {
		delete(c, path)
	}
	return nil
}

// Get returns the stored blob and its content type (for tests).
func (s *BlobStore) Get(container, path string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.containers[container]
	if !ok {
		return nil, "", false
	}
	b, ok := c[path]
	if !ok {
		return nil, "", false
	}
	return b.data, b.contentType, true
}

// Count returns the number of blobs in a container (for tests).
func (s *BlobStore) Count(container string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.containers[container])
}
