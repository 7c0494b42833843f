/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package queue defines the notification queue the workflows append
// side-effect messages to. Delivery is at-least-once and unordered across
// producers; no consumer logic lives in this module. The queue is a durable
// mailbox for downstream systems.
//
// Sends are a best-effort side channel, distinct from the authoritative
// entity write: the workflows log a failed send and carry on.
package queue

import "context"

// Queue appends messages for out-of-process consumers.
type Queue interface {
	// EnsureQueue creates the named queue when missing. Idempotent.
	EnsureQueue(ctx context.Context, name string) error

	// Send appends message to the named queue, returning once the store
	// accepted it, not once any consumer processed it.
	Send(ctx context.Context, queueName, message string) error
}
