/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package sqs provides the SQS implementation of the Queue interface.
// Creating a queue that already exists with the same attributes is a no-op
// on the SQS side, so EnsureQueue is naturally idempotent.
package sqs

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Queue implements queue.Queue on top of AWS SQS.
type Queue struct {
	client *sdk.Client

	mu   sync.Mutex
	urls map[string]string
}

// NewClient initializes an SQS client from static credentials. An empty
// endpointURL uses the default AWS endpoint.
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
		}
	})
	return client, nil
}

// New constructs a Queue around an SQS client.
func New(client *sdk.Client) *Queue {
	return &Queue{
		client: client,
		urls:   make(map[string]string),
	}
}

// EnsureQueue creates the named queue when missing and caches its URL.
func (q *Queue) EnsureQueue(ctx context.Context, name string) error {
	out, err := q.client.CreateQueue(ctx, &sdk.CreateQueueInput{
		QueueName: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("CreateQueue %s failed: %w", name, err)
	}

	q.mu.Lock()
	q.urls[name] = aws.ToString(out.QueueUrl)
	q.mu.Unlock()
	return nil
}

// Send appends message to the named queue.
func (q *Queue) Send(ctx context.Context, queueName, message string) error {
	url, err := q.queueURL(ctx, queueName)
	if err != nil {
		return err
	}

	_, err = q.client.SendMessage(ctx, &sdk.SendMessageInput{
		QueueUrl:    aws.String(url),
		MessageBody: aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("SendMessage to %s failed: %w", queueName, err)
	}
	return nil
}

// queueURL resolves and caches the URL for a queue name.
func (q *Queue) queueURL(ctx context.Context, name string) (string, error) {
	q.mu.Lock()
	url, ok := q.urls[name]
	q.mu.Unlock()
	if ok {
		return url, nil
	}

	out, err := q.client.GetQueueUrl(ctx, &sdk.GetQueueUrlInput{
		QueueName: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("GetQueueUrl %s failed: %w", name, err)
	}

	url = aws.ToString(out.QueueUrl)
	q.mu.Lock()
	q.urls[name] = url
	q.mu.Unlock()
	return url, nil
}
