package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avasiliev/punchclock/internal/server/handlers"
	"github.com/avasiliev/punchclock/internal/server/jwt"
	"github.com/avasiliev/punchclock/pkg/api"
)

// Auth creates middleware that verifies the bearer token and attaches its
// claims to the request context. All failure modes (missing header, bad
// format, expired, forged, malformed) collapse into one 401 body so the
// response does not aid forgery attempts.
func Auth(logger *slog.Logger, tokens *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header")
				unauthorized(logger, w)
				return
			}

			// Expected format: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				logger.Warn("invalid Authorization header format")
				unauthorized(logger, w)
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				// The sub-reason is logged, never sent to the client
				logger.Warn("token verification failed", slog.Any("error", err))
				unauthorized(logger, w)
				return
			}

			ctx := handlers.WithClaims(r.Context(), claims)

			logger.Debug("user authenticated", slog.String("user_id", claims.UserID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(logger *slog.Logger, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(api.ErrorResponse{Message: "unauthorized"}); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}
