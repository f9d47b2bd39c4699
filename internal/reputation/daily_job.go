package reputation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lancera-lab/lancera-reputation/internal/core/clock"
	"github.com/lancera-lab/lancera-reputation/internal/core/condition"
	core "github.com/lancera-lab/lancera-reputation/internal/core/reputation"
)

// RunMode selects whether a driver persists or only reports what it would
// have persisted.
type RunMode string

const (
	RunModeDry RunMode = "dry"
	RunModeRun RunMode = "run"
)

// ParseRunMode validates a run-mode argument.
func ParseRunMode(s string) (RunMode, error) {
	switch RunMode(s) {
	case RunModeDry, RunModeRun:
		return RunMode(s), nil
	default:
		return "", fmt.Errorf("unknown run mode %q (want dry or run)", s)
	}
}

// ErrInvalidDate marks a malformed finish-date argument, rejected before any
// query runs. The CLI maps it to its own exit code.
var ErrInvalidDate = errors.New("invalid finish date")

// DailyJob counts one role's reputation events for a single business day and
// accumulates them. Default window is [yesterday 00:00, today 00:00) in the
// business timezone; an explicit YYYY-MM-DD finish date shifts the window to
// the day ending at that date's midnight.
//
// The window must be applied exactly once: re-running the same day doubles
// the stored counts. Dry-run exists so operators can check the volume before
// committing the write.
type DailyJob struct {
	service  *Service
	business *clock.Business
}

// DailyResult summarizes one invocation.
type DailyResult struct {
	RunID     string
	Role      core.Role
	Start     time.Time
	Finish    time.Time
	Records   int
	Persisted bool
}

// NewDailyJob wires the driver.
func NewDailyJob(service *Service, business *clock.Business) *DailyJob {
	return &DailyJob{service: service, business: business}
}

// Run executes the daily count. finishDate is optional; empty means
// "yesterday". A malformed finishDate fails with ErrInvalidDate before any
// query executes.
func (j *DailyJob) Run(ctx context.Context, role core.Role, mode RunMode, finishDate string) (DailyResult, error) {
	var start, finish time.Time
	if finishDate == "" {
		start, finish = j.business.YesterdayWindow()
	} else {
		var err error
		start, finish, err = j.business.DayWindowEndingAt(finishDate)
		if err != nil {
			return DailyResult{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
	}

	result := DailyResult{
		RunID:  uuid.New().String(),
		Role:   role,
		Start:  start,
		Finish: finish,
	}

	slog.Info("[DailyJob] Counting reputation events",
		"run_id", result.RunID,
		"role", role,
		"start", start,
		"finish", finish,
		"mode", mode,
	)

	records, err := j.service.GetAll(ctx, role, condition.Windowed(start, finish))
	if err != nil {
		return DailyResult{}, fmt.Errorf("count %s reputation: %w", role, err)
	}
	result.Records = len(records)

	if mode == RunModeDry {
		slog.Info("[DailyJob] Dry run, nothing persisted",
			"run_id", result.RunID,
			"records", result.Records,
		)
		return result, nil
	}

	if err := j.service.SaveByRecords(ctx, records); err != nil {
		return DailyResult{}, fmt.Errorf("save %s reputation: %w", role, err)
	}
	result.Persisted = true

	slog.Info("[DailyJob] Saved reputation counts",
		"run_id", result.RunID,
		"role", role,
		"records", result.Records,
	)
	return result, nil
}
