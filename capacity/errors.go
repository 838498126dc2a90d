/*
errors.go - Centralized error types for the capacity engine

ERROR CATEGORIES:
 1. Validation errors - bad input, rejected before any store write
 2. Not-found errors  - operations referencing missing records
 3. Store errors      - persistence failures, propagated unchanged

The engine never logs, retries, or swallows errors; it fails fast and
returns them to the caller, which owns retry and presentation policy.
*/
package capacity

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the root of all input validation failures.
	ErrValidation = errors.New("validation failed")

	// ErrAllocationNotFound is returned when an allocation id does not exist.
	ErrAllocationNotFound = errors.New("allocation not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports which field failed validation and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation returns true if the error is due to invalid caller input.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool { return errors.Is(err, ErrAllocationNotFound) }
