// Command save-worker-reputation-count counts one business day of
// reputation events and accumulates them into the counter table.
//
// Usage:
//
//	save-worker-reputation-count [flags] <run_mode> [finish_date]
//
// run_mode is dry or run; finish_date (YYYY-MM-DD) shifts the one-day
// window, defaulting to yesterday. Exits 0 on success, 1 on bad
// arguments, 2 on runtime failure.
package main

import (
	"context"
	"errors"
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
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: save-worker-reputation-count [flags] <run_mode> [finish_date]")
		return 1
	}

	mode, err := reputation.ParseRunMode(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	finishDate := ""
	if len(args) == 2 {
		finishDate = args[1]
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
	job := reputation.NewDailyJob(service, business)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := job.Run(ctx, role, mode, finishDate)
	if err != nil {
		if errors.Is(err, reputation.ErrInvalidDate) {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		slog.Error("Daily reputation count failed", "role", role, "error", err)
		return 2
	}

	slog.Info("Daily reputation count finished",
		"run_id", result.RunID,
		"role", result.Role,
		"start", result.Start,
		"finish", result.Finish,
		"records", result.Records,
		"persisted", result.Persisted,
	)
	return 0
}
