// Package domain defines the value types and error taxonomy for the
// deployment pipeline.
package domain

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Taxonomy
// =============================================================================

var (
	// ErrFetchFailed is returned when a record store call does not succeed.
	// Fetches are attempted exactly once; nothing is retried.
	ErrFetchFailed = errors.New("record store fetch failed")

	// ErrMalformedRecord is returned when a required property (the Reference
	// title) is missing or empty on a fetched page.
	ErrMalformedRecord = errors.New("required record property missing or empty")

	// ErrSeedNotFound is returned when no seed matches the requested name.
	// Terminal for the run.
	ErrSeedNotFound = errors.New("seed not found")

	// ErrNoLinkedModules is returned when a seed has no module relations.
	// Terminal for the run; the bootstrap command is not dispatched.
	ErrNoLinkedModules = errors.New("seed has no linked modules")

	// ErrPaginationProtocol is returned when the store claims more results
	// exist but supplies no continuation cursor.
	ErrPaginationProtocol = errors.New("store reported more results without a cursor")
)

// RecordError wraps a pipeline error with the operation and record involved.
type RecordError struct {
	Op      string // Operation that failed (e.g., "Deploy", "ListAll")
	Record  string // Record ID or name if applicable
	Message string
	Err     error
}

func (e *RecordError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Record, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError creates a new RecordError.
func NewRecordError(op, record, message string, err error) *RecordError {
	return &RecordError{
		Op:      op,
		Record:  record,
		Message: message,
		Err:     err,
	}
}
