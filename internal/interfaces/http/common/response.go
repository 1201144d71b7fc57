package common

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// MaxRequestBody caps JSON request bodies.
const MaxRequestBody = 1 << 20

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("no se pudo codificar la respuesta JSON", zap.Error(err))
	}
}

// WriteError writes a JSON error message with status.
func WriteError(logger *zap.Logger, w http.ResponseWriter, status int, message string) {
	WriteJSON(logger, w, status, map[string]string{"error": message})
}
