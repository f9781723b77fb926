package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m3rciful/dokonbot/config"
	"github.com/m3rciful/dokonbot/internal/bot"
	"github.com/m3rciful/dokonbot/internal/database"
	"github.com/m3rciful/dokonbot/internal/flow"
	"github.com/m3rciful/dokonbot/internal/logger"
	"github.com/m3rciful/dokonbot/internal/session"
	"github.com/m3rciful/dokonbot/internal/store"
	"log/slog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("dokonbot: %v", err)
	}
}

func run() error {
	startedAt := time.Now()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := logger.InitLogger(cfg); err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := database.RunMigrations(cfg.Database); err != nil {
		return err
	}

	engine := flow.New(store.NewPostgres(db), session.NewManager(), cfg.Telegram.AdminIDs)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.L.With("component", "app").Info("app ready",
		slog.String("event", "ready"),
		slog.Int("admins", len(cfg.Telegram.AdminIDs)),
		slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
	)

	err = bot.Run(ctx, cfg, engine)

	logger.L.With("component", "app").Info("shutting down...",
		slog.String("event", "shutdown"),
	)
	return err
}
