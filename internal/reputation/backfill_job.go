package reputation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lancera-lab/lancera-reputation/internal/core/clock"
	"github.com/lancera-lab/lancera-reputation/internal/core/condition"
	core "github.com/lancera-lab/lancera-reputation/internal/core/reputation"
)

// DefaultBackfillPageSize bounds how many users a single backfill query
// touches.
const DefaultBackfillPageSize = 5000

// BackfillJob rebuilds a role's counts from the beginning of history up to
// today's business-day boundary. It pages each query group by user so a
// large user base never materializes in one result set.
//
// The upsert is additive, so backfill assumes the target rows start at zero.
// Truncating score_user_reputation_counts first is the operator's job.
type BackfillJob struct {
	service  *Service
	business *clock.Business
	pageSize int
}

// BackfillResult summarizes one invocation.
type BackfillResult struct {
	RunID     string
	Role      core.Role
	Finish    time.Time
	Records   int
	Pages     int
	Persisted bool
}

// NewBackfillJob wires the driver. pageSize <= 0 falls back to the default.
func NewBackfillJob(service *Service, business *clock.Business, pageSize int) *BackfillJob {
	if pageSize <= 0 {
		pageSize = DefaultBackfillPageSize
	}
	return &BackfillJob{service: service, business: business, pageSize: pageSize}
}

// Run executes the full-history count for one role.
func (j *BackfillJob) Run(ctx context.Context, role core.Role, mode RunMode) (BackfillResult, error) {
	finish := j.business.StartOfToday()

	result := BackfillResult{
		RunID:  uuid.New().String(),
		Role:   role,
		Finish: finish,
	}

	slog.Info("[BackfillJob] Counting full reputation history",
		"run_id", result.RunID,
		"role", role,
		"finish", finish,
		"mode", mode,
		"page_size", j.pageSize,
	)

	groups, err := j.roleGroups(role)
	if err != nil {
		return BackfillResult{}, err
	}

	base := condition.Spec{Finish: &finish}
	for _, group := range groups {
		pages, records, err := j.runGroup(ctx, group, base, mode)
		if err != nil {
			return BackfillResult{}, fmt.Errorf("backfill actions %v: %w", group.actions, err)
		}
		result.Pages += pages
		result.Records += records
	}
	result.Persisted = mode == RunModeRun

	slog.Info("[BackfillJob] Finished",
		"run_id", result.RunID,
		"role", role,
		"records", result.Records,
		"pages", result.Pages,
		"persisted", result.Persisted,
	)
	return result, nil
}

func (j *BackfillJob) roleGroups(role core.Role) ([]queryGroup, error) {
	switch role {
	case core.RoleWorker:
		return j.service.worker.groups, nil
	case core.RoleClient:
		return j.service.client.groups, nil
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

func (j *BackfillJob) runGroup(ctx context.Context, group queryGroup, base condition.Spec, mode RunMode) (pages, records int, err error) {
	for offset := 0; ; offset += j.pageSize {
		rows, err := group.run(ctx, base.Paged(j.pageSize, offset))
		if err != nil {
			return pages, records, fmt.Errorf("page at offset %d: %w", offset, err)
		}
		if len(rows) == 0 {
			return pages, records, nil
		}
		pages++

		flattened := core.Flatten(rows)
		records += len(flattened)
		if mode == RunModeDry {
			continue
		}
		if err := j.service.SaveByRecords(ctx, flattened); err != nil {
			return pages, records, fmt.Errorf("save page at offset %d: %w", offset, err)
		}
	}
}
