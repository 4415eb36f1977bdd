/*
errors.go - Centralized error types for the ledger engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The HTTP layer maps these onto status codes without knowing anything
  about individual operations.

ERROR CATEGORIES:
  1. Validation errors - malformed or out-of-range input
  2. Conflict errors   - unique-code collisions on create/update
  3. Not-found errors  - referenced book/seller/ID does not exist
  4. Stock errors      - requested quantity exceeds current stock
  5. Persistence errors - the document store failed to load or save

USAGE:
  Callers match with errors.Is against the sentinels, or errors.As
  against the structured types when they need the context fields:

    var stockErr *ledger.InsufficientStockError
    if errors.As(err, &stockErr) {
        // stockErr.Available, stockErr.Requested, ...
    }

SEE ALSO:
  - inventory.go, sales.go, importer.go: produce these errors
  - api/handlers.go: maps them to HTTP statuses via HTTPStatus
*/
package ledger

import (
	"errors"
	"fmt"
	"net/http"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned for malformed, missing, or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a unique code is already taken.
	ErrConflict = errors.New("code already in use")

	// ErrNotFound is returned when a referenced book, seller, or identifier
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock is returned when a sale requests more than the
	// book's current quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrPersistence is returned when the document store fails to load or
	// save the snapshot. The in-memory state is discarded in that case.
	ErrPersistence = errors.New("persistence failure")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports which field failed and, for batch sales and
// imports, the 1-based index of the offending item or row.
type ValidationError struct {
	Field string
	Index int // 1-based item/row index, 0 when not applicable
	Msg   string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Index > 0 && e.Field != "":
		return fmt.Sprintf("item %d: invalid %s: %s", e.Index, e.Field, e.Msg)
	case e.Field != "":
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
	default:
		return e.Msg
	}
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError reports a unique-code collision.
type ConflictError struct {
	Code string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("code %q is already in use", e.Code)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NotFoundError reports a missing book, seller, or identifier.
type NotFoundError struct {
	Kind  string // "book", "seller"
	Key   string // the code or ID that failed to resolve
	Index int    // 1-based batch item index, 0 when not applicable
}

func (e *NotFoundError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("item %d: %s %q not found", e.Index, e.Kind, e.Key)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError reports a stock shortage for one book.
type InsufficientStockError struct {
	BookCode  string
	Index     int // 1-based batch item index, 0 when not applicable
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("item %d: insufficient stock for %q: available %d, requested %d",
			e.Index, e.BookCode, e.Available, e.Requested)
	}
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d",
		e.BookCode, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// PersistenceError wraps a document store failure.
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("document store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return ErrPersistence }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// HTTPStatus maps a ledger error onto its HTTP status equivalent.
// Conflicts map to 400 (not 409): the caller sent a code that cannot be
// used, which is a problem with the request payload.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientStock)
}
