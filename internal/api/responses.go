package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	app_errors "convo-api/internal/errors"

	"convo-api/internal/model"
)

// This file contains shared DTOs (Data Transfer Objects) for API responses
// and helper functions for sending consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Code    int    `json:"code" example:"404"`
	Message string `json:"message" example:"Resource not found"`
	Details any    `json:"details"`
}

// StatusResponse defines a generic success response for operations that don't
// return a full resource.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// MessageResponse is the create-message payload. AssistantResponse carries the
// generated reply in synchronous mode; it is omitted in deferred mode and when
// the reply could not be persisted.
type MessageResponse struct {
	model.Message
	AssistantResponse *model.Message `json:"assistant_response,omitempty"`
}

// MessagePage is the paginated listing envelope. Next and Previous are URLs
// for the adjacent pages, null at the edges.
type MessagePage struct {
	Count    int             `json:"count" example:"25"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []model.Message `json:"results"`
}

// respondWithError is the centralized error handling function for the API
// layer. It maps business-layer sentinel errors to HTTP status codes and
// formats the standard error envelope.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string
	var details any

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		message = "Validation error"
		details = validationDetails(err)
	case errors.Is(err, app_errors.ErrAuthentication):
		statusCode = http.StatusUnauthorized
		message = "Authentication failed"
	default:
		// Any unhandled error is an internal server error. The generic message
		// prevents leaking implementation details to the client.
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	// The original, more detailed error is logged for debugging purposes.
	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{
		Status:  "error",
		Code:    statusCode,
		Message: message,
		Details: details,
	})
}

// validationDetails extracts the field-level reasons from a wrapped
// validation error for the envelope's details slot.
func validationDetails(err error) any {
	msg := err.Error()
	prefix := app_errors.ErrValidation.Error() + ": "
	if rest, ok := strings.CutPrefix(msg, prefix); ok {
		return strings.Split(rest, "; ")
	}
	return []string{msg}
}

// respondWithJSON is a low-level helper for marshaling a payload to JSON
// and writing it to the http.ResponseWriter with a given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		// This indicates a server-side programming error.
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
