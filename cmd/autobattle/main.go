package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/db"
	"github.com/udisondev/autobattle/internal/formation"
)

const ConfigPath = "config/autobattle.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("AUTOBATTLE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	formationPath := cfg.FormationPath
	if p := os.Getenv("AUTOBATTLE_FORMATION"); p != "" {
		formationPath = p
	}
	roster, err := formation.Load(formationPath)
	if err != nil {
		return fmt.Errorf("loading formation: %w", err)
	}
	if _, _, err := roster.Specs(); err != nil {
		return fmt.Errorf("validating formation: %w", err)
	}

	slog.Info("config loaded",
		"config", cfgPath,
		"formation", formationPath,
		"battles", cfg.Battles,
		"workers", cfg.Workers,
		"seed", cfg.Seed)

	sim := &Simulator{cfg: cfg, roster: roster}

	if cfg.Database.Enabled {
		dbCfg := cfg.Database
		if dbCfg.MaxConns == 0 {
			dbCfg.MaxConns = int32(cfg.Workers)
		}
		database, err := db.New(ctx, dbCfg)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")
		sim.store = database.Battles()
	}

	if cfg.Battles == 1 {
		report, err := sim.RunOne(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("battle %s: %s after %d rounds\n", report.ID, report.Outcome, report.Rounds)
		return nil
	}

	summary, err := sim.RunBatch(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d battles: %.1f%% victory, %.1f%% draw, %.1f%% defeat\n",
		summary.Total(),
		summary.Rate(summary.Victories),
		summary.Rate(summary.Draws),
		summary.Rate(summary.Defeats))
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
