// Package apperror defines the shared error vocabulary and its HTTP mapping.
package apperror

import (
	"errors"
	"net/http"
)

// Sentinel errors for the outcomes the rest of the system branches on.
// Not-found and already-exists are ordinary results of store operations,
// not exceptional conditions; callers match them with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrCorrupt       = errors.New("stored document is not valid JSON")
	ErrValidation    = errors.New("data validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
)

// Status maps an error to the HTTP status code the API returns for it.
// Anything outside the known taxonomy is a storage or internal failure.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
