package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/avasiliev/punchclock/internal/server/apperr"
	"github.com/avasiliev/punchclock/internal/server/storage"
	"github.com/avasiliev/punchclock/pkg/api"
)

// UserHandler serves the caller's stored profile
type UserHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
}

// NewUserHandler creates a new user profile handler
func NewUserHandler(logger *slog.Logger, userStorage storage.UserStorage) *UserHandler {
	return &UserHandler{
		logger:      logger,
		userStorage: userStorage,
	}
}

// Me handles GET /users/me (behind the auth middleware).
// Returns the stored record minus the password digest.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		sendError(h.logger, w, apperr.New(apperr.KindUnauthorized, "unauthorized"))
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Token outlived the account
			sendError(h.logger, w, apperr.New(apperr.KindUnauthorized, "unauthorized"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, apperr.New(apperr.KindInternal, "internal server error"))
		return
	}

	resp := api.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
