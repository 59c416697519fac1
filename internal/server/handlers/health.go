package handlers

import (
	"log/slog"
	"net/http"
)

// HealthHandler answers liveness probes
type HealthHandler struct {
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(h.logger, w, map[string]string{"status": "ok"}, http.StatusOK)
}
