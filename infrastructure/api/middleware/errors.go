// Package middleware provides HTTP middleware and response helpers for
// the API server.
package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/affiche-studio/affiche/domain/entity"
	"github.com/affiche-studio/affiche/internal/database"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError maps an error to an HTTP status and writes a JSON error
// body. Unrecognized errors become 500 without leaking their message.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, database.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, entity.ErrInvalidName), errors.Is(err, entity.ErrUnknownKind):
		status = http.StatusBadRequest
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
	}

	WriteJSON(w, status, map[string]string{"error": message})
}
