// Package apperrors defines the error taxonomy shared by services and
// handlers. Handlers map each kind to a distinct HTTP status so a caller can
// tell invalid input, a calendar conflict, an unavailable vehicle, and an
// infrastructure failure apart.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBookingConflict is returned when an existing non-cancelled booking
	// overlaps the requested window for the same vehicle. Maps to HTTP 409.
	ErrBookingConflict = errors.New("vehicle already booked for the requested window")

	// ErrVehicleUnavailable is returned when the referenced vehicle does not
	// exist or its availability flag is off. Maps to HTTP 409.
	ErrVehicleUnavailable = errors.New("vehicle not available for booking")

	// ErrNotFound is returned when a requested record does not exist.
	// Maps to HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrCancelWindowClosed is returned when a cancellation arrives less
	// than the required notice before the ride starts. Maps to HTTP 409.
	ErrCancelWindowClosed = errors.New("bookings can only be cancelled more than 12 hours before the start time")
)

// FieldError describes a single violated constraint on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field-level problem found in a request, not
// just the first. Maps to HTTP 400.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a field violation.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Empty reports whether no violations were recorded.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// StorageError wraps a persistence failure. Maps to HTTP 500; the underlying
// cause is logged server-side, not sent to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError wraps err with the failing operation name.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
