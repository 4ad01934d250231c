package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Veraticus/tally/internal/budget"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/record"
	"github.com/Veraticus/tally/internal/search"
	"github.com/Veraticus/tally/internal/stats"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initStorage opens the configured database, migrates it and seeds the
// default categories into an empty category table.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	seeded, err := store.SeedCategories(ctx, cfg.Categories())
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}
	if seeded > 0 {
		common.LogInfo("Seeded default categories", common.Fields{"count": seeded, "database": cfg.DatabasePath})
	}

	return store, nil
}

// app bundles the services a command works with.
type app struct {
	cfg     *config.Config
	store   *storage.SQLiteStorage
	records *record.Service
	budgets *budget.Service
	search  *search.Engine
	stats   *stats.Service
	out     io.Writer
	now     func() time.Time
}

func openApp(cmd *cobra.Command, v *viper.Viper) (*app, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	store, err := initStorage(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}

	return newApp(cfg, store, cmd.OutOrStdout(), time.Now), nil
}

func newApp(cfg *config.Config, store *storage.SQLiteStorage, out io.Writer, now func() time.Time) *app {
	return &app{
		cfg:     cfg,
		store:   store,
		records: record.NewService(store, record.WithClock(now)),
		budgets: budget.NewService(store, budget.WithClock(now), budget.WithThreshold(cfg.Threshold)),
		search:  search.NewEngine(store),
		stats:   stats.NewService(store),
		out:     out,
		now:     now,
	}
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		common.LogError(err, "Failed to close database", common.Fields{"database": a.cfg.DatabasePath})
	}
}
