package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/lancera-lab/lancera-reputation/internal/core/clock"
	corecfg "github.com/lancera-lab/lancera-reputation/internal/core/config"
	"github.com/lancera-lab/lancera-reputation/internal/core/storage/postgres"
	"github.com/lancera-lab/lancera-reputation/internal/migrations"
	"github.com/lancera-lab/lancera-reputation/internal/reputation"
	"github.com/lancera-lab/lancera-reputation/internal/server"
)

func main() {
	configPath := flag.String("config", "lancera.yaml", "Path to configuration file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	business, err := clock.NewBusiness(clock.System{}, cfg.Reputation.Timezone)
	if err != nil {
		slog.Error("Failed to load business timezone", "error", err)
		os.Exit(1)
	}

	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	// Counting pipeline: adapter serves both role stores and the counter
	// table writes.
	reputationStore := postgres.NewReputationStore(dbAdapter.DB(), clock.System{})
	service := reputation.NewService(
		reputation.NewWorkerCount(dbAdapter),
		reputation.NewClientCount(dbAdapter),
		reputationStore,
	)
	dailyJob := reputation.NewDailyJob(service, business)

	api := reputation.NewAPI(service, dailyJob)
	srv := server.New(
		fmtAddr(cfg.Server.Host, cfg.Server.Port),
		dbAdapter.DB(),
		cfg.Server.Mode,
		int64(cfg.Server.MaxBodySizeMB)*1024*1024,
	)
	api.RegisterRoutes(srv.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Reputation.SchedulerEnabled {
		delay, err := cfg.Reputation.EffectiveSchedulerDelay()
		if err != nil {
			slog.Error("Invalid scheduler delay", "error", err)
			os.Exit(1)
		}
		scheduler := reputation.NewScheduler(
			dailyJob,
			business,
			[]reputation.Role{reputation.RoleWorker, reputation.RoleClient},
			delay,
		)
		g.Go(func() error {
			return scheduler.Start(gctx)
		})
	} else {
		slog.Info("Daily scheduler disabled by config")
	}

	g.Go(func() error {
		return srv.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Service stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
