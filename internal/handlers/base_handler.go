// Package handlers implements the HTTP layer of the catalog service
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondData sends a successful response in the API envelope
func (h *BaseHandler) RespondData(w http.ResponseWriter, status int, data any) {
	h.RespondJSON(w, status, map[string]any{
		"success": true,
		"data":    data,
	})
}

// RespondError sends an error response in the API envelope
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// RespondErrorCode sends an error response carrying a machine-readable error code
func (h *BaseHandler) RespondErrorCode(w http.ResponseWriter, status int, message, code string) {
	h.RespondJSON(w, status, map[string]any{
		"success": false,
		"message": message,
		"error":   code,
	})
}
