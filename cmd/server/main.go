package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/avasiliev/punchclock/internal/server"
	"github.com/avasiliev/punchclock/internal/server/config"
	"github.com/avasiliev/punchclock/internal/server/jwt"
	"github.com/avasiliev/punchclock/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	tokens, err := jwt.NewService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	logger.Info("starting punchclock server",
		slog.String("version", Version),
		slog.String("build_date", BuildDate),
		slog.String("git_commit", GitCommit),
	)

	srv := server.New(logger, cfg, store, tokens)
	return srv.Run(ctx)
}
