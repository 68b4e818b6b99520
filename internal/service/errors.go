package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/timetable-api/internal/domain"
	"github.com/phrazzld/timetable-api/internal/store"
)

// Common sentinel errors for TimetableService.
var (
	// ErrSlotNotFound indicates the referenced schedule item does not exist
	// in the owner's timetable.
	ErrSlotNotFound = errors.New("schedule item not found")

	// ErrTimetableNotFound indicates the owner has no timetable. Only
	// operations that refuse to lazy-create (remove, clear) surface it.
	ErrTimetableNotFound = errors.New("timetable not found")
)

// TimetableServiceError wraps errors from the timetable service with
// context about the failed operation.
type TimetableServiceError struct {
	// Operation is the operation that failed (e.g., "add_slot").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for TimetableServiceError.
func (e *TimetableServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("timetable service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("timetable service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TimetableServiceError) Unwrap() error {
	return e.Err
}

// NewTimetableServiceError creates a new TimetableServiceError. Sentinel and
// conflict errors pass through unwrapped so callers can match on them
// directly; everything else gets operation context.
func NewTimetableServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return err
	}

	if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrTimetableNotFound) {
		return err
	}

	if errors.Is(err, domain.ErrSlotNotFound) {
		return ErrSlotNotFound
	}

	if errors.Is(err, store.ErrTimetableNotFound) {
		return ErrTimetableNotFound
	}

	if errors.Is(err, domain.ErrMalformedTime) ||
		errors.Is(err, domain.ErrEndNotAfterStart) ||
		errors.Is(err, domain.ErrValidation) {
		return err
	}

	return &TimetableServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
