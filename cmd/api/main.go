package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/analytics"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/api"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/budgets"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/config"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/export"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/identity"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/ledger"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/lib/archive"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/lib/mailer"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage/memory"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting application",
		slog.String("env", cfg.Env),
		slog.String("host", cfg.ApiHost),
		slog.Int("port", cfg.ApiPort),
		slog.String("storage", cfg.Storage),
	)

	store, err := setupStorage(cfg, log)
	if err != nil {
		log.Error("Failed to set up storage", "error", err)
		os.Exit(1)
	}

	mail, err := setupMailer(cfg, log)
	if err != nil {
		log.Error("Failed to set up mailer", "error", err)
		os.Exit(1)
	}

	var archiver export.Archiver
	if cfg.S3.Enabled {
		a, err := archive.New(context.Background(), cfg.S3)
		if err != nil {
			log.Error("Failed to set up export archive", "error", err)
			os.Exit(1)
		}
		archiver = a
	}

	apiServer := api.New(cfg, log, api.Services{
		Identity: identity.New(store, mail, identity.Config{
			Secret:      cfg.JWT.Secret,
			SessionTTL:  cfg.JWT.SessionTTL,
			VerifyTTL:   cfg.JWT.VerifyTTL,
			ResetTTL:    cfg.JWT.ResetTTL,
			FrontendURL: cfg.Mail.FrontendURL,
		}, log),
		Ledger:    ledger.New(store, log),
		Analytics: analytics.New(store),
		Budgets:   budgets.New(store, log),
		Export:    export.New(store, archiver, log),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		apiServer.MustStart()
	}()

	<-sigChan
	log.Info("Got signal to shutdown server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Stop(ctx); err != nil {
		log.Error("Stopping server error", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Closing storage error", "error", err)
	}
}

func setupStorage(cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn("Using in-memory storage, data is lost on exit")
		return memory.New(), nil
	}

	pg, err := postgres.New(cfg.Postgres.DSN(), log)
	if err != nil {
		return nil, err
	}

	if cfg.Postgres.AutoMigrate {
		if err := pg.Migrate(); err != nil {
			_ = pg.Close()
			return nil, err
		}
		log.Info("Database migrations applied")
	}

	return pg, nil
}

func setupMailer(cfg *config.Config, log *slog.Logger) (identity.Mailer, error) {
	if !cfg.Mail.Enabled {
		log.Warn("Mail delivery disabled, messages are written to the log")
		return mailer.NewLog(log), nil
	}

	return mailer.New(cfg.Mail, log)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}
