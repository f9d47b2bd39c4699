package reputation

import (
	"context"
	"log/slog"
	"time"

	"github.com/lancera-lab/lancera-reputation/internal/core/clock"
	core "github.com/lancera-lab/lancera-reputation/internal/core/reputation"
)

// Scheduler runs the daily job once per business day, shortly after the day
// boundary. It is stateless across restarts: each firing counts yesterday's
// window, so the process must not miss or repeat a boundary while alive.
type Scheduler struct {
	job      *DailyJob
	business *clock.Business
	roles    []core.Role
	delay    time.Duration
}

// NewScheduler creates a scheduler that fires the daily job for each role in
// order. delay pads the firing past midnight so late-arriving rows with
// boundary timestamps are visible.
func NewScheduler(job *DailyJob, business *clock.Business, roles []core.Role, delay time.Duration) *Scheduler {
	if delay < 0 {
		delay = 0
	}
	return &Scheduler{job: job, business: business, roles: roles, delay: delay}
}

// Start blocks until the context is cancelled, firing once after each
// business-day boundary. A failed run is logged and retried at the next
// boundary rather than immediately, to avoid double counting on transient
// partial saves.
func (s *Scheduler) Start(ctx context.Context) error {
	slog.Info("[Scheduler] Starting daily reputation scheduler",
		"timezone", s.business.Location().String(),
		"roles", s.roles,
		"boundary_delay", s.delay,
	)

	for {
		wait := s.untilNextFiring()
		slog.Info("[Scheduler] Sleeping until next business-day boundary", "wait", wait)

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			s.fire(ctx)
		case <-ctx.Done():
			timer.Stop()
			slog.Info("[Scheduler] Stopping (context cancelled)")
			return nil
		}
	}
}

func (s *Scheduler) untilNextFiring() time.Duration {
	now := s.business.Now()
	next := s.business.StartOfToday().Add(s.delay)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func (s *Scheduler) fire(ctx context.Context) {
	for _, role := range s.roles {
		result, err := s.job.Run(ctx, role, RunModeRun, "")
		if err != nil {
			slog.Error("[Scheduler] Daily run failed",
				"role", role,
				"error", err,
			)
			continue
		}
		slog.Info("[Scheduler] Daily run complete",
			"run_id", result.RunID,
			"role", role,
			"records", result.Records,
		)
	}
}
