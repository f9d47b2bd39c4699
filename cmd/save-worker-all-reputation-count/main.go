// Command save-worker-all-reputation-count rebuilds reputation counts from
// the full marketplace history up to today's business-day boundary.
//
// Usage:
//
//	save-worker-all-reputation-count [flags] <run_mode>
//
// The upsert is additive, so run this against zeroed counter rows only.
// Exits 0 on success, 1 on bad arguments, 2 on runtime failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lancera-lab/lancera-reputation/internal/core/clock"
	corecfg "github.com/lancera-lab/lancera-reputation/internal/core/config"
	"github.com/lancera-lab/lancera-reputation/internal/core/storage/postgres"
	"github.com/lancera-lab/lancera-reputation/internal/migrations"
	"github.com/lancera-lab/lancera-reputation/internal/reputation"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "lancera.yaml", "Path to configuration file")
	roleName := flag.String("role", "worker", "Role to count (worker or client)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: save-worker-all-reputation-count [flags] <run_mode>")
		return 1
	}

	mode, err := reputation.ParseRunMode(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	role, err := reputation.ParseRole(*roleName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return 2
	}

	business, err := clock.NewBusiness(clock.System{}, cfg.Reputation.Timezone)
	if err != nil {
		slog.Error("Failed to load business timezone", "error", err)
		return 2
	}

	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return 2
	}
	defer dbAdapter.Close()

	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return 2
	}

	service := reputation.NewService(
		reputation.NewWorkerCount(dbAdapter),
		reputation.NewClientCount(dbAdapter),
		postgres.NewReputationStore(dbAdapter.DB(), clock.System{}),
	)
	job := reputation.NewBackfillJob(service, business, cfg.Reputation.BackfillPageSize)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := job.Run(ctx, role, mode)
	if err != nil {
		slog.Error("Full-history reputation count failed", "role", role, "error", err)
		return 2
	}

	slog.Info("Full-history reputation count finished",
		"run_id", result.RunID,
		"role", result.Role,
		"finish", result.Finish,
		"records", result.Records,
		"pages", result.Pages,
		"persisted", result.Persisted,
	)
	return 0
}
