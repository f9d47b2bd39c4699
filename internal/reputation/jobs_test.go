package reputation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lancera-lab/lancera-reputation/internal/core/clock"
	"github.com/lancera-lab/lancera-reputation/internal/core/condition"
	core "github.com/lancera-lab/lancera-reputation/internal/core/reputation"
)

// 2026-03-10 18:30 JST.
func fixedBusiness(t *testing.T) *clock.Business {
	t.Helper()
	business, err := clock.NewBusiness(
		clock.Fixed{Instant: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)},
		"",
	)
	require.NoError(t, err)
	return business
}

type specRecorder struct {
	mockWorkerStore
	specs []condition.Spec
}

func (r *specRecorder) WorkerRegistrations(ctx context.Context, spec condition.Spec) ([]core.Row, error) {
	r.specs = append(r.specs, spec)
	return r.mockWorkerStore.WorkerRegistrations(ctx, spec)
}

func newJobService(worker *specRecorder, store *mockReputationStore) *Service {
	return NewService(NewWorkerCount(worker), NewClientCount(&mockClientStore{}), store)
}

func TestDailyJobDefaultsToYesterdayWindow(t *testing.T) {
	worker := &specRecorder{mockWorkerStore: mockWorkerStore{rows: map[string][]core.Row{
		"registrations": {singleRow(1, core.WorkerRegistered, 1)},
	}}}
	store := &mockReputationStore{}
	job := NewDailyJob(newJobService(worker, store), fixedBusiness(t))

	result, err := job.Run(context.Background(), core.RoleWorker, RunModeRun, "")
	require.NoError(t, err)

	jst, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, jst), result.Start)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, jst), result.Finish)
	assert.Equal(t, 1, result.Records)
	assert.True(t, result.Persisted)
	assert.NotEmpty(t, result.RunID)

	require.NotEmpty(t, worker.specs)
	spec := worker.specs[0]
	require.NotNil(t, spec.Start)
	require.NotNil(t, spec.Finish)
	assert.True(t, spec.Start.Equal(result.Start))
	assert.True(t, spec.Finish.Equal(result.Finish))
	assert.Nil(t, spec.Limit)

	require.Len(t, store.saved, 1)
	assert.Equal(t, []core.Record{{UserID: 1, ActionID: core.WorkerRegistered, Count: 1}}, store.saved[0])
}

func TestDailyJobExplicitFinishDate(t *testing.T) {
	worker := &specRecorder{}
	job := NewDailyJob(newJobService(worker, &mockReputationStore{}), fixedBusiness(t))

	result, err := job.Run(context.Background(), core.RoleWorker, RunModeRun, "2026-02-01")
	require.NoError(t, err)

	jst, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, jst), result.Start)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, jst), result.Finish)
}

func TestDailyJobRejectsMalformedDateBeforeQuerying(t *testing.T) {
	worker := &specRecorder{}
	job := NewDailyJob(newJobService(worker, &mockReputationStore{}), fixedBusiness(t))

	_, err := job.Run(context.Background(), core.RoleWorker, RunModeRun, "02/01/2026")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Empty(t, worker.specs)
}

func TestDailyJobDryRunDoesNotPersist(t *testing.T) {
	worker := &specRecorder{mockWorkerStore: mockWorkerStore{rows: map[string][]core.Row{
		"registrations": {singleRow(1, core.WorkerRegistered, 1)},
	}}}
	store := &mockReputationStore{}
	job := NewDailyJob(newJobService(worker, store), fixedBusiness(t))

	result, err := job.Run(context.Background(), core.RoleWorker, RunModeDry, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Records)
	assert.False(t, result.Persisted)
	assert.Empty(t, store.saved)
}

func TestDailyJobPropagatesQueryError(t *testing.T) {
	worker := &specRecorder{mockWorkerStore: mockWorkerStore{errOn: "task_deliveries"}}
	store := &mockReputationStore{}
	job := NewDailyJob(newJobService(worker, store), fixedBusiness(t))

	_, err := job.Run(context.Background(), core.RoleWorker, RunModeRun, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, store.saved)
}

func TestParseRunMode(t *testing.T) {
	mode, err := ParseRunMode("dry")
	require.NoError(t, err)
	assert.Equal(t, RunModeDry, mode)

	mode, err = ParseRunMode("run")
	require.NoError(t, err)
	assert.Equal(t, RunModeRun, mode)

	_, err = ParseRunMode("wet")
	require.Error(t, err)
}

// pagedWorkerStore serves registrations in fixed-size pages so the backfill
// pagination loop can be exercised; every other query returns nothing.
type pagedWorkerStore struct {
	mockWorkerStore
	pages [][]core.Row
	specs []condition.Spec
}

func (p *pagedWorkerStore) WorkerRegistrations(ctx context.Context, spec condition.Spec) ([]core.Row, error) {
	p.specs = append(p.specs, spec)
	if page := len(p.specs) - 1; page < len(p.pages) {
		return p.pages[page], nil
	}
	return nil, nil
}

func TestBackfillJobPagesUntilEmpty(t *testing.T) {
	worker := &pagedWorkerStore{pages: [][]core.Row{
		{singleRow(1, core.WorkerRegistered, 1), singleRow(2, core.WorkerRegistered, 1)},
		{singleRow(3, core.WorkerRegistered, 1)},
	}}
	store := &mockReputationStore{}
	service := NewService(NewWorkerCount(worker), NewClientCount(&mockClientStore{}), store)
	job := NewBackfillJob(service, fixedBusiness(t), 2)

	result, err := job.Run(context.Background(), core.RoleWorker, RunModeRun)
	require.NoError(t, err)

	jst, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, jst), result.Finish)
	assert.Equal(t, 3, result.Records)
	assert.True(t, result.Persisted)

	// Two full-or-partial pages of registrations were saved separately.
	require.Len(t, store.saved, 2)
	assert.Len(t, store.saved[0], 2)
	assert.Len(t, store.saved[1], 1)

	// First registration page at offset 0, second at 2, probe at 4.
	require.GreaterOrEqual(t, len(worker.specs), 3)
	assert.Equal(t, 0, *worker.specs[0].Offset)
	assert.Equal(t, 2, *worker.specs[1].Offset)
	assert.Equal(t, 4, *worker.specs[2].Offset)
	for _, spec := range worker.specs {
		require.NotNil(t, spec.Finish)
		assert.Nil(t, spec.Start)
		assert.Equal(t, 2, *spec.Limit)
	}
}

func TestBackfillJobDryRunCountsWithoutSaving(t *testing.T) {
	worker := &pagedWorkerStore{pages: [][]core.Row{
		{singleRow(1, core.WorkerRegistered, 1)},
	}}
	store := &mockReputationStore{}
	service := NewService(NewWorkerCount(worker), NewClientCount(&mockClientStore{}), store)
	job := NewBackfillJob(service, fixedBusiness(t), 10)

	result, err := job.Run(context.Background(), core.RoleWorker, RunModeDry)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Records)
	assert.False(t, result.Persisted)
	assert.Empty(t, store.saved)
}

func TestBackfillJobRejectsUnknownRole(t *testing.T) {
	service := NewService(NewWorkerCount(&mockWorkerStore{}), NewClientCount(&mockClientStore{}), &mockReputationStore{})
	job := NewBackfillJob(service, fixedBusiness(t), 0)

	_, err := job.Run(context.Background(), core.Role("admin"), RunModeRun)
	require.Error(t, err)
}
