/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a conditional replace loses an ETag race
	ErrConflict = errors.New("concurrency conflict")

	// ErrDependency is returned when an underlying store is unreachable
	// or returns a transient failure
	ErrDependency = errors.New("dependency failed")

	// ErrUnavailable is returned when a required store connection was
	// never configured
	ErrUnavailable = errors.New("service unavailable")
)

// ValidationError represents an input validation failure on a specific field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError represents a missing entity.
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError represents an ETag mismatch on a conditional replace.
type ConflictError struct {
	Type string
	Key  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with key %q was modified concurrently", e.Type, e.Key)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// DependencyError wraps a transient failure from an underlying store.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: dependency failed: %v", e.Op, e.Err)
}

func (e *DependencyError) Is(target error) bool {
	return target == ErrDependency
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewConflictError creates a new ConflictError
func NewConflictError(entityType, key string) error {
	return &ConflictError{Type: entityType, Key: key}
}

// NewDependencyError creates a new DependencyError wrapping err
func NewDependencyError(op string, err error) error {
	return &DependencyError{Op: op, Err: err}
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a concurrency conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsDependency checks if an error is a dependency failure
func IsDependency(err error) bool {
	return errors.Is(err, ErrDependency)
}

// IsUnavailable checks if an error signals a missing store connection
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
