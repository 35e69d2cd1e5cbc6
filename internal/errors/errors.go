package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services return these (usually wrapped with fmt.Errorf and %w) instead of
// HTTP status codes; the API layer recognizes them with errors.Is() and maps
// them to the correct response.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client-supplied input failed business rule
	// validation. Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrAuthentication signifies a missing or invalid API key on a request
	// that requires one. Mapped to 401 Unauthorized.
	ErrAuthentication = errors.New("authentication failed")

	// ErrInternal signifies an unexpected server-side failure. Used to avoid
	// leaking implementation details to the client. Mapped to 500.
	ErrInternal = errors.New("internal server error")
)
