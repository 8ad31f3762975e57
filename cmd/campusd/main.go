// Command campusd runs the school-life simulation engine behind an HTTP
// command surface. State is restored from the latest autosave when present
// and saved again on shutdown.
package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/avelinek/campusdays/internal/api"
	"github.com/avelinek/campusdays/internal/config"
	"github.com/avelinek/campusdays/internal/engine"
	"github.com/avelinek/campusdays/internal/persistence"
	"github.com/avelinek/campusdays/internal/rng"
	"github.com/avelinek/campusdays/internal/rules"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// ── Rule tables ───────────────────────────────────────────────────
	tables := rules.Default()
	if cfg.RulesPath != "" {
		tables, err = rules.Load(cfg.RulesPath)
		if err != nil {
			slog.Error("failed to load rules", "path", cfg.RulesPath, "error", err)
			os.Exit(1)
		}
		slog.Info("rules loaded", "path", cfg.RulesPath)
	}

	// ── Database ──────────────────────────────────────────────────────
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		slog.Error("failed to create data directory", "path", filepath.Dir(cfg.DBPath), "error", err)
		os.Exit(1)
	}
	store, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── World ─────────────────────────────────────────────────────────
	world, err := engine.New(tables, rng.NewSeeded(cfg.Seed), engine.Options{
		PlayerName:  cfg.Player,
		Personality: cfg.Personality,
		Wallet:      cfg.Wallet,
		Seed:        cfg.Seed,
		StartDate:   time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to create world", "error", err)
		os.Exit(1)
	}

	snap, err := store.LoadSnapshot("auto")
	switch {
	case err == nil:
		if err := world.Restore(snap); err != nil {
			slog.Error("saved state is corrupt, starting fresh", "error", err)
		} else {
			slog.Info("world state restored",
				"date", world.Calendar.Date.Format("2006-01-02"),
				"school_year", world.Calendar.SchoolYear,
				"relationships", len(world.Ledger.Names()),
			)
		}
	case errors.Is(err, persistence.ErrNoSnapshot):
		slog.Info("no saved state found, starting a new school year",
			"player", cfg.Player,
			"date", world.Calendar.Date.Format("2006-01-02"),
		)
	default:
		slog.Error("failed to load snapshot", "error", err)
		os.Exit(1)
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.AdminKey == "" {
		slog.Warn("CAMPUSD_ADMIN_KEY not set — command endpoints will be disabled")
	}
	server := &api.Server{
		World:    world,
		Store:    store,
		Port:     cfg.Port,
		AdminKey: cfg.AdminKey,
	}
	server.Start()

	// ── Run until signalled ───────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	if err := store.SaveSnapshot("auto", world.Snapshot()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	slog.Info("shutdown complete")
}
