// Package api provides the HTTP handlers of the scoring server and its
// standardized JSON error format.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/onnwee/homemixer/internal/middleware"
)

// Error codes returned in the error body.
const (
	// ErrCodeValidation indicates a well-formed request that fails validation.
	ErrCodeValidation = "validation_error"

	// ErrCodeBadRequest indicates a malformed request body.
	ErrCodeBadRequest = "bad_request"

	// ErrCodeMethodNotAllowed indicates the route does not accept the method.
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound = "not_found"

	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
)

// ErrorResponse represents the standard error response format:
// {"error": {"code": "...", "message": "..."}}
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error code and human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response and records code for
// the logging middleware.
func WriteError(w http.ResponseWriter, ctx context.Context, status int, code, message string) {
	middleware.SetErrorCode(ctx, code)

	data, err := json.Marshal(ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal error response", "error", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.ErrorContext(ctx, "failed to write error response", "error", err)
	}
}

// writeJSON writes v as a JSON body with the given status.
func writeJSON(w http.ResponseWriter, ctx context.Context, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// NotFound writes the standard 404 body.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r.Context(), http.StatusNotFound, ErrCodeNotFound, "The requested resource was not found")
}
