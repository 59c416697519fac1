package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/avasiliev/punchclock/internal/server/apperr"
	"github.com/avasiliev/punchclock/pkg/api"
)

// sendJSON writes a JSON response with the given status code
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError renders a failure through the central apperr status mapping.
// Unclassified errors are reported as internal failures without leaking
// their message to the client.
func sendError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.New(apperr.KindInternal, "internal server error")
	}

	sendJSON(logger, w, api.ErrorResponse{Message: appErr.Message}, apperr.Status(appErr.Kind))
}
