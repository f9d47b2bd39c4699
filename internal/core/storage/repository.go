package storage

import (
	"context"

	"github.com/lancera-lab/lancera-reputation/internal/core/condition"
	"github.com/lancera-lab/lancera-reputation/internal/core/reputation"
)

// WorkerActionStore runs the worker-side action queries. Each method covers
// one query; combined methods return multi-column rows for every action
// sharing that query's join.
type WorkerActionStore interface {
	WorkerRegistrations(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)
	WorkerProfileFills(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)
	WorkerIconSets(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)
	WorkerIdentitySubmissions(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)
	WorkerProposals(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)
	WorkerTaskDeliveries(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)

	// WorkerTaskJudgements counts accepted and rejected task deliveries in
	// one pass over task_trades.
	WorkerTaskJudgements(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)

	// WorkerProjectLifecycle counts the five project-trade lifecycle actions
	// (proposed, contracted, delivered, approved, evaluated) in one pass.
	WorkerProjectLifecycle(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)

	WorkerPaymentsReceived(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)
}

// ClientActionStore runs the client-side action queries.
type ClientActionStore interface {
	ClientRegistrations(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)
	ClientProfileFills(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)
	ClientIconSets(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)
	ClientTaskJobPosts(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)
	ClientProjectJobPosts(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)

	// ClientTaskJudgements counts task deliveries the client accepted and
	// rejected in one pass over task_trades.
	ClientTaskJudgements(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)

	ClientProjectContracts(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)
	ClientProjectApprovals(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)
	ClientPaymentsMade(ctx context.Context, spec condition.Spec) ([]reputation.Row, error)
}

// ReputationStore persists flat records into the running per-user-per-action
// counter table.
//
// Contract: the write is additive, not a replace. Saving the same records
// twice doubles the stored counts, so each qualifying event must be
// represented in exactly one successful SaveRecords call over the lifetime
// of the system. An empty record list is a no-op.
type ReputationStore interface {
	SaveRecords(ctx context.Context, records []reputation.Record) error
}
