package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"kharcha/internal/cli"
	"kharcha/internal/config"
	"kharcha/internal/gateway"
	"kharcha/internal/log"
	"kharcha/internal/session"
	"kharcha/internal/storage"
)

func main() {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     parseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	local, err := storage.NewLocalStore(cfg.SessionDBPath)
	if err != nil {
		logger.Error("Failed to open local session store", log.FieldError, err, "path", cfg.SessionDBPath)
		os.Exit(1)
	}
	defer local.Close()

	sess := session.NewStore(local, logger)
	gw := gateway.New(cfg.APIBaseURL, cfg.HTTPTimeout, sess, logger)
	app := cli.NewApp(cfg, logger, sess, gw, os.Stdin, os.Stdout, os.Stderr)

	// An interrupt cancels the in-flight round trip; the partial result is
	// discarded with the process rather than applied to any state.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
