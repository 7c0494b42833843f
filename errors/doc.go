/*
Package errors provides the semantic error taxonomy for the retail store core.

The package defines one sentinel per failure class, plus typed errors that
carry enough detail for a caller to correct its input. All types support the
standard errors.Is() function as well as the provided helper predicates.

Common Errors:

	var (
	    ErrValidation  = errors.New("validation failed")
	    ErrNotFound    = errors.New("entity not found")
	    ErrConflict    = errors.New("concurrency conflict")
	    ErrDependency  = errors.New("dependency failed")
	    ErrUnavailable = errors.New("service unavailable")
	)

Usage:

	// Check error class
	order, err := svc.CreateOrder(ctx, in)
	if err != nil {
	    switch {
	    case errors.IsValidation(err):
	        // Caller can fix the input and retry
	    case errors.IsConflict(err):
	        // Caller lost an ETag race; re-read and retry if desired
	    case errors.IsDependency(err):
	        // Transient store failure; surfaced as a generic error upstream
	    }
	}

	// Create typed errors
	err := errors.NewValidationError("email", "invalid format")
	err := errors.NewNotFoundError("Product", "P1")
	err := errors.NewConflictError("Order", "abc-123")
	err := errors.NewDependencyError("orders.upsert", cause)

DependencyError wraps its cause, so errors.Is/errors.As reach the underlying
store error when callers need it for logging.
*/
package errors
