package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"restaurant-till/bot"
	"restaurant-till/config"
	"restaurant-till/db"
	"restaurant-till/logger"
	"restaurant-till/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New("restaurant-till", cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("fatal", zap.Error(err))
		cancel()
		// os.Exit skips deferred calls.
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	migrateOnly := len(os.Args) > 1 && os.Args[1] == "migrate"
	if !migrateOnly && cfg.Telegram.Token == "" {
		return fmt.Errorf("TOKEN not set")
	}

	if err := db.Init(ctx, cfg.DB); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer db.Close()

	if migrateOnly || cfg.AutoMigrate {
		if err := applyMigrations(ctx, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if migrateOnly {
			return nil
		}
	}

	r, err := services.LoadRestaurant(ctx, cfg.Restaurant)
	if err != nil {
		return err
	}
	log.Info("restaurant loaded",
		zap.String("name", r.Name()),
		zap.String("location", r.Location()),
		zap.Stringer("opening_time", r.OpeningTime()),
		zap.Stringer("closing_time", r.ClosingTime()),
		zap.Int("menu_items", len(r.Menu())),
	)

	till := bot.NewTill(r, bot.PostgresMenuStore{}, cfg.Telegram.AdminID, log.Named("till"))
	b, err := bot.New(cfg, till, log.Named("bot"))
	if err != nil {
		return fmt.Errorf("bot: %w", err)
	}
	b.Start(ctx)
	return nil
}
