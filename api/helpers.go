package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeError emits the generic {"message": ...} error body used by every
// non-validation failure.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, map[string]any{"message": message}, status)
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeValidationError emits a 400 with per-field messages.
func writeValidationError(w http.ResponseWriter, errs []fieldError) {
	writeJSON(w, map[string]any{
		"message": "Validation error",
		"errors":  errs,
	}, http.StatusBadRequest)
}
