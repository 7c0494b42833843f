/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides an in-memory Queue recording sent messages, used
// by the workflow tests to assert on the notification side channel.
package memory

import (
	"context"
	"sync"
)

// Queue is an in-memory implementation of queue.Queue.
type Queue struct {
	mu       sync.Mutex
	messages map[string][]string

	sendError error
}

// New creates an empty in-memory Queue.
func New() *Queue {
	return &Queue{
		messages: make(map[string][]string),
	}
}

// WithSendError makes Send operations return err
func (q *Queue) WithSendError(err error) *Queue {
	q.sendError = err
	return q
}

// EnsureQueue creates the named queue when missing.
func (q *Queue) EnsureQueue(ctx context.Context, name string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.messages[name]; !ok {
		q.messages[name] = nil
	}
	return nil
}

// Send appends message to the named queue, creating it on demand.
func (q *Queue) Send(ctx context.Context, queueName, message string) error {
	if q.sendError != nil {
		return q.sendError
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages[queueName] = append(q.messages[queueName], message)
	return nil
}

// Messages returns a copy of everything sent to the named queue (for tests).
func (q *Queue) Messages(queueName string) []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.messages[queueName]))
	copy(out, q.messages[queueName])
	return out
}
