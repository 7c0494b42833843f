/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package s3 provides the S3 implementation of the BlobStore interface.
// Containers map to buckets, paths to object keys, and the returned locator
// is the object's HTTPS URL.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// BlobStore implements blobstore.BlobStore on top of AWS S3.
type BlobStore struct {
	client      *sdk.Client
	region      string
	endpointURL string
}

// NewClient initializes an S3 client from static credentials. An empty
// endpointURL uses the default AWS endpoint; otherwise the client targets a
// custom endpoint with path-style addressing (e.g. a local emulator).
func NewClient(ctx context.Context, accessKey, secretKey, region, endpointURL string) (*sdk.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if endpointURL != "" {
			o.BaseEndpoint = aws.String(endpointURL)
			o.UsePathStyle = true
		}
	})
	return client, nil
}

// New constructs a BlobStore around an S3 client.
func New(client *sdk.Client, region, endpointURL string) *BlobStore {
	return &BlobStore{
		client:      client,
		region:      region,
		endpointURL: endpointURL,
	}
}

// EnsureContainer creates the bucket when missing. A bucket this account
// already owns is not an error.
func (s *BlobStore) EnsureContainer(ctx context.Context, name string) error {
	input := &sdk.CreateBucketInput{
		Bucket: aws.String(name),
	}
	// us-east-1 rejects an explicit location constraint.
	if s.region != "" && s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}

	_, err := s.client.CreateBucket(ctx, input)
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("CreateBucket %s failed: %w", name, err)
	}
	return nil
}

// Put writes data at (container, path) and returns the object URL.
func (s *BlobStore) Put(ctx context.Context, container, path string, data []byte, contentType string) (string, error) {
	input := &sdk.PutObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(path),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("PutObject %s/%s failed: %w", container, path, err)
	}
	return s.locator(container, path), nil
}

// Delete removes the blob at (container, path). S3 DeleteObject succeeds for
// absent keys, which matches the idempotency this store promises.
func (s *BlobStore) Delete(ctx context.Context, container, path string) error {
	_, err := s.client.DeleteObject(ctx, &sdk.DeleteObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("DeleteObject %s/%s failed: %w", container, path, err)
	}
	return nil
}

// locator builds the stable URL for a stored object.
func (s *BlobStore) locator(container, path string) string {
	if s.endpointURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.endpointURL, "/"), container, path)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", container, s.region, path)
}
