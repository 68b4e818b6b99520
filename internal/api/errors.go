package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/timetable-api/internal/api/shared"
	"github.com/phrazzld/timetable-api/internal/domain"
	"github.com/phrazzld/timetable-api/internal/service"
	"github.com/phrazzld/timetable-api/internal/service/auth"
	"github.com/phrazzld/timetable-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error types
// or messages to clients.
func MapErrorToStatusCode(err error) int {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return http.StatusConflict
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, service.ErrSlotNotFound),
		errors.Is(err, service.ErrTimetableNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrMalformedTime),
		errors.Is(err, domain.ErrEndNotAfterStart),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal
// details. Conflict messages are intentionally passed through verbatim;
// they are the product's feedback, not an internal detail.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return conflict.Message
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return "Invalid " + validation.Field
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, service.ErrSlotNotFound):
		return "Time slot not found"

	case errors.Is(err, service.ErrTimetableNotFound):
		return "Timetable not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, domain.ErrMalformedTime):
		return "Invalid time format, expected HH:MM"

	case errors.Is(err, domain.ErrEndNotAfterStart):
		return "End time must be after start time"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the response for an internal error: the status code
// from MapErrorToStatusCode and either the provided fallback message or the
// safe message derived from the error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if message == "An unexpected error occurred" && fallbackMessage != "" {
		message = fallbackMessage
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
