// Package server wires handlers, middleware, and the HTTP listener into a
// runnable service.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avasiliev/punchclock/internal/server/config"
	"github.com/avasiliev/punchclock/internal/server/handlers"
	"github.com/avasiliev/punchclock/internal/server/jwt"
	"github.com/avasiliev/punchclock/internal/server/middleware"
	"github.com/avasiliev/punchclock/internal/server/storage"
)

const shutdownTimeout = 10 * time.Second

// Storage bundles the persistence interfaces the server depends on.
type Storage interface {
	storage.UserStorage
	storage.PunchStorage
}

// Server is the punchclock HTTP server.
type Server struct {
	logger *slog.Logger
	http   *http.Server
}

// New builds the router and HTTP server.
func New(logger *slog.Logger, cfg *config.Config, store Storage, tokens *jwt.Service) *Server {
	authHandler := handlers.NewAuthHandler(logger, store, tokens)
	userHandler := handlers.NewUserHandler(logger, store)
	punchHandler := handlers.NewPunchHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger)

	requireAuth := middleware.Auth(logger, tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("POST /auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.Handle("GET /auth/verify", requireAuth(http.HandlerFunc(authHandler.Verify)))
	mux.Handle("GET /users/me", requireAuth(http.HandlerFunc(userHandler.Me)))
	mux.Handle("POST /punchclock/in", requireAuth(http.HandlerFunc(punchHandler.ClockIn)))
	mux.Handle("POST /punchclock/out", requireAuth(http.HandlerFunc(punchHandler.ClockOut)))
	mux.Handle("GET /punchclock", requireAuth(http.HandlerFunc(punchHandler.List)))

	// Outermost first: recovery, then logging, then CORS
	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSOrigin)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return &Server{
		logger: logger,
		http: &http.Server{
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", slog.String("address", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	return nil
}
