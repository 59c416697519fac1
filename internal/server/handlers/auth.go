package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avasiliev/punchclock/internal/crypto"
	"github.com/avasiliev/punchclock/internal/models"
	"github.com/avasiliev/punchclock/internal/server/apperr"
	"github.com/avasiliev/punchclock/internal/server/jwt"
	"github.com/avasiliev/punchclock/internal/server/storage"
	"github.com/avasiliev/punchclock/internal/validation"
	"github.com/avasiliev/punchclock/pkg/api"
)

// Both "no such user" and "wrong password" collapse into this message so
// login responses cannot be used to enumerate registered emails.
const msgBadCredentials = "Incorrect Email or Password"

// AuthHandler handles signup, login, and token verification
type AuthHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	tokens      *jwt.Service
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, tokens *jwt.Service) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userStorage: userStorage,
		tokens:      tokens,
	}
}

// Signup handles POST /auth/signup.
// Validates input, checks uniqueness, hashes the password, persists the
// user, and responds with a signed bearer token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode signup request", slog.Any("error", err))
		sendError(h.logger, w, apperr.New(apperr.KindInvalidInput, "invalid request body"))
		return
	}

	if req.Email == "" || req.Password == "" || req.Username == "" {
		sendError(h.logger, w, apperr.New(apperr.KindInvalidInput, "provide email, password and username"))
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		h.logger.WarnContext(ctx, "invalid email", slog.Any("error", err))
		sendError(h.logger, w, apperr.New(apperr.KindInvalidInput, err.Error()))
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		sendError(h.logger, w, apperr.New(apperr.KindInvalidInput, err.Error()))
		return
	}

	// Convenience pre-check; the unique index remains authoritative
	if _, err := h.userStorage.GetUserByEmail(ctx, req.Email); err == nil {
		h.logger.WarnContext(ctx, "signup for existing email")
		sendError(h.logger, w, apperr.New(apperr.KindConflict, "user already exists"))
		return
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		h.logger.ErrorContext(ctx, "failed to check existing user", slog.Any("error", err))
		sendError(h.logger, w, apperr.New(apperr.KindInternal, "internal server error"))
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, apperr.New(apperr.KindInternal, "internal server error"))
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, storage.ErrUserAlreadyExists):
			// Lost the race against a concurrent signup
			h.logger.WarnContext(ctx, "duplicate email on insert")
			sendError(h.logger, w, apperr.New(apperr.KindConflict, "user already exists"))
		case errors.Is(err, storage.ErrValidation):
			h.logger.WarnContext(ctx, "user record rejected", slog.Any("error", err))
			sendError(h.logger, w, apperr.New(apperr.KindValidationFailed, "invalid user record"))
		default:
			h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
			sendError(h.logger, w, apperr.New(apperr.KindInternal, "internal server error"))
		}
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		sendError(h.logger, w, apperr.New(apperr.KindInternal, "internal server error"))
		return
	}

	h.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.AuthResponse{AuthToken: token}, http.StatusOK)
}

// Login handles POST /auth/login.
// Verifies the password against the stored digest and responds with a
// signed bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, apperr.New(apperr.KindInvalidInput, "invalid request body"))
		return
	}

	if req.Email == "" || req.Password == "" {
		sendError(h.logger, w, apperr.New(apperr.KindInvalidInput, "provide email and password"))
		return
	}

	user, err := h.userStorage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found")
			sendError(h.logger, w, apperr.New(apperr.KindUnauthorized, msgBadCredentials))
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, apperr.New(apperr.KindInternal, "internal server error"))
		return
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("user_id", user.ID))
		sendError(h.logger, w, apperr.New(apperr.KindUnauthorized, msgBadCredentials))
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		sendError(h.logger, w, apperr.New(apperr.KindInternal, "internal server error"))
		return
	}

	h.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.AuthResponse{AuthToken: token}, http.StatusOK)
}

// Verify handles GET /auth/verify (behind the auth middleware).
// Echoes the claims the middleware decoded from the bearer token.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		sendError(h.logger, w, apperr.New(apperr.KindUnauthorized, "unauthorized"))
		return
	}

	resp := api.VerifyResponse{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
