package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel error kinds for the core. Services wrap them with context via
// fmt.Errorf("...: %w", Err...) and handlers map them to status codes with
// HTTPStatus.
var (
	// ErrConflict marks duplicate edges, repeated likes and similar
	// already-exists violations, including unique-index races.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks a missing edge, message, notification or user.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an actor acting on a resource it has no rights
	// over, e.g. responding to someone else's friend request.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState marks a state-machine violation, e.g. accepting a
	// request that is no longer pending.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidInput marks self-referential pairs, malformed enum values
	// and other rejected arguments.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuth marks a bad or expired credential.
	ErrAuth = errors.New("authentication failed")
)

// HTTPStatus maps an error to the conventional client-facing status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
