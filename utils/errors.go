// utils/errors.go
package utils

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidRequest covers missing or malformed identifiers and dates.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFound covers unknown providers, services and bookings.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers requested dates that are already booked or blocked.
	ErrConflict = errors.New("conflict")
	// ErrServiceUnavailable covers storage failures; the detail stays server-side.
	ErrServiceUnavailable = errors.New("service unavailable")

	ErrUserIDNotFound = errors.New("authentication required: user ID not found")
	ErrUnauthorized   = errors.New("unauthorized access")
)

// StatusCode maps a taxonomy error to its HTTP status. Unknown errors are
// treated as storage failures and never leak their message to the client.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUserIDNotFound), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
