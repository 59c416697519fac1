package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avasiliev/punchclock/internal/models"
	"github.com/avasiliev/punchclock/internal/server/apperr"
	"github.com/avasiliev/punchclock/internal/server/storage"
	"github.com/avasiliev/punchclock/pkg/api"
)

// PunchHandler handles the punch-clock resource. All routes sit behind the
// auth middleware, so claims are always present in the context.
type PunchHandler struct {
	logger       *slog.Logger
	punchStorage storage.PunchStorage
}

// NewPunchHandler creates a new punch-clock handler
func NewPunchHandler(logger *slog.Logger, punchStorage storage.PunchStorage) *PunchHandler {
	return &PunchHandler{
		logger:       logger,
		punchStorage: punchStorage,
	}
}

// ClockIn handles POST /punchclock/in
func (h *PunchHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		sendError(h.logger, w, apperr.New(apperr.KindUnauthorized, "unauthorized"))
		return
	}

	entry := &models.PunchEntry{
		ID:      uuid.New().String(),
		UserID:  claims.UserID,
		ClockIn: time.Now(),
	}

	if err := h.punchStorage.ClockIn(ctx, entry); err != nil {
		if errors.Is(err, storage.ErrEntryOpen) {
			sendError(h.logger, w, apperr.New(apperr.KindConflict, "already clocked in"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to clock in", slog.Any("error", err))
		sendError(h.logger, w, apperr.New(apperr.KindInternal, "internal server error"))
		return
	}

	h.logger.InfoContext(ctx, "clocked in", slog.String("user_id", claims.UserID))

	sendJSON(h.logger, w, api.PunchResponse{Entry: toAPIEntry(entry)}, http.StatusOK)
}

// ClockOut handles POST /punchclock/out
func (h *PunchHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		sendError(h.logger, w, apperr.New(apperr.KindUnauthorized, "unauthorized"))
		return
	}

	entry, err := h.punchStorage.ClockOut(ctx, claims.UserID, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrNoOpenEntry) {
			sendError(h.logger, w, apperr.New(apperr.KindConflict, "not clocked in"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to clock out", slog.Any("error", err))
		sendError(h.logger, w, apperr.New(apperr.KindInternal, "internal server error"))
		return
	}

	h.logger.InfoContext(ctx, "clocked out", slog.String("user_id", claims.UserID))

	sendJSON(h.logger, w, api.PunchResponse{Entry: toAPIEntry(entry)}, http.StatusOK)
}

// List handles GET /punchclock
func (h *PunchHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		sendError(h.logger, w, apperr.New(apperr.KindUnauthorized, "unauthorized"))
		return
	}

	entries, err := h.punchStorage.ListEntries(ctx, claims.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list punch entries", slog.Any("error", err))
		sendError(h.logger, w, apperr.New(apperr.KindInternal, "internal server error"))
		return
	}

	resp := api.PunchListResponse{Entries: make([]api.PunchEntry, 0, len(entries))}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, toAPIEntry(entry))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

func toAPIEntry(entry *models.PunchEntry) api.PunchEntry {
	return api.PunchEntry{
		ID:       entry.ID,
		ClockIn:  entry.ClockIn,
		ClockOut: entry.ClockOut,
	}
}
