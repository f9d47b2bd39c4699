package reputation

import (
	"context"

	"github.com/lancera-lab/lancera-reputation/internal/core/condition"
	core "github.com/lancera-lab/lancera-reputation/internal/core/reputation"
	"github.com/lancera-lab/lancera-reputation/internal/core/storage"
)

// WorkerCount owns the worker-side registry mapping actions to their
// queries. Registry order is fixed and is the iteration order of GetAll.
type WorkerCount struct {
	groups []queryGroup
}

// NewWorkerCount builds the registry over a WorkerActionStore.
func NewWorkerCount(store storage.WorkerActionStore) *WorkerCount {
	return &WorkerCount{groups: []queryGroup{
		{actions: []core.ActionID{core.WorkerRegistered}, run: store.WorkerRegistrations},
		{actions: []core.ActionID{core.WorkerProfileFilled}, run: store.WorkerProfileFills},
		{actions: []core.ActionID{core.WorkerIconSet}, run: store.WorkerIconSets},
		{actions: []core.ActionID{core.WorkerIdentitySubmitted}, run: store.WorkerIdentitySubmissions},
		{actions: []core.ActionID{core.WorkerProposalSubmitted}, run: store.WorkerProposals},
		{actions: []core.ActionID{core.WorkerTaskDelivered}, run: store.WorkerTaskDeliveries},
		{
			actions: []core.ActionID{
				core.WorkerTaskDeliveryAccepted,
				core.WorkerTaskDeliveryRejected,
			},
			run: store.WorkerTaskJudgements,
		},
		{
			actions: []core.ActionID{
				core.WorkerProjectProposed,
				core.WorkerProjectContracted,
				core.WorkerProjectDelivered,
				core.WorkerProjectApproved,
				core.WorkerProjectEvaluated,
			},
			run: store.WorkerProjectLifecycle,
		},
		{actions: []core.ActionID{core.WorkerPaymentReceived}, run: store.WorkerPaymentsReceived},
	}}
}

// GetAll runs every registered query against the spec.
func (w *WorkerCount) GetAll(ctx context.Context, spec condition.Spec) ([]core.Record, error) {
	return runAll(ctx, w.groups, spec)
}

// GetTarget runs only the queries whose actions intersect the requested set.
func (w *WorkerCount) GetTarget(ctx context.Context, actionIDs []core.ActionID, spec condition.Spec) ([]core.Record, error) {
	return runTarget(ctx, w.groups, actionIDs, spec)
}
