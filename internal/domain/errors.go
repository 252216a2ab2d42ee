package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an operation targets an id with no current record.
var ErrNotFound = errors.New("not found")

// ValidationError reports required fields that were missing or empty.
// Callers must correct the input; it is never retried.
type ValidationError struct {
	Fields []string
}

// NewValidationError returns a ValidationError for the given field names.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f+" is required")
	}
	return strings.Join(msgs, "; ")
}

// StorageError wraps a failure of the durable store itself (I/O, connectivity, timeout).
// No partial mutation is assumed, so the whole operation is safe to retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
