// Package respond provides utilities for sending HTTP responses in JSON format.
// It maps domain errors onto status codes and keeps store failures from
// leaking into response bodies.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"newspaper-agency/internal/domain/entity"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{Error: err.Error()})
}

// safeFragments mark messages that may be shown to clients as-is.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"cannot be",
	"forbidden",
	"authentication",
	"too many requests",
}

// SafeError sanitizes error messages before returning them to users.
// Internal errors (e.g., database errors) are returned as "internal server error",
// with details logged for debugging.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, safe := range safeFragments {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}
	// 5xx bodies never carry the cause
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		JSON(w, code, ErrorBody{Error: msg})
		return
	}
	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.Any("error", SanitizeError(err)))
	JSON(w, code, ErrorBody{Error: "internal server error"})
}

// ValidationFailed writes 400 with every failing field and its messages.
func ValidationFailed(w http.ResponseWriter, v *entity.ValidationErrors) {
	JSON(w, http.StatusBadRequest, ErrorBody{Error: "validation failed", Fields: v.ByField()})
}

// StatusOf maps a domain error onto an HTTP status code.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, entity.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrAuthenticationRequired), errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// DomainError writes the response for an error returned by a use case.
func DomainError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	var v *entity.ValidationErrors
	if errors.As(err, &v) {
		ValidationFailed(w, v)
		return
	}

	code := StatusOf(err)
	switch code {
	case http.StatusUnauthorized:
		if errors.Is(err, entity.ErrInvalidCredentials) {
			JSON(w, code, ErrorBody{Error: "invalid credentials"})
			return
		}
		w.Header().Set("WWW-Authenticate", `Bearer realm="newspaper-agency"`)
		JSON(w, code, ErrorBody{Error: "authentication required"})
	case http.StatusForbidden:
		JSON(w, code, ErrorBody{Error: "forbidden"})
	case http.StatusNotFound:
		JSON(w, code, ErrorBody{Error: "not found"})
	default:
		SafeError(w, code, err)
	}
}
