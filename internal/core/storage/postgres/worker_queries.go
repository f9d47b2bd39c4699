package postgres

import (
	"context"

	"github.com/lancera-lab/lancera-reputation/internal/core/condition"
	"github.com/lancera-lab/lancera-reputation/internal/core/reputation"
)

// Worker action queries. Every query filters users down to eligible
// contractor accounts, applies the spec's optional window against the
// timestamp column that marks the qualifying event, and emits one row per
// user ordered by user id so limit/offset paging is deterministic.
//
// Binary actions ("did this ever happen") select a constant 1; the window
// runs against the users row's own timestamps, with updated_at standing in
// for "most recent occurrence".

// WorkerRegistrations emits 1 per contractor registered inside the window.
func (a *Adapter) WorkerRegistrations(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{workerEligible}
	where = append(where, b.window("u.created_at", spec)...)
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id, 1
FROM users u
` + whereClause(where) + `
ORDER BY u.id` + b.page(spec)

	return a.querySingle(ctx, reputation.WorkerRegistered, query, b.args)
}

// WorkerProfileFills emits 1 per contractor whose self introduction is set.
func (a *Adapter) WorkerProfileFills(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{
		workerEligible,
		"u.self_introduction IS NOT NULL",
		"u.self_introduction <> ''",
	}
	where = append(where, b.window("u.updated_at", spec)...)
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id, 1
FROM users u
` + whereClause(where) + `
ORDER BY u.id` + b.page(spec)

	return a.querySingle(ctx, reputation.WorkerProfileFilled, query, b.args)
}

// WorkerIconSets emits 1 per contractor with a profile icon.
func (a *Adapter) WorkerIconSets(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{
		workerEligible,
		"u.icon_path IS NOT NULL",
		"u.icon_path <> ''",
	}
	where = append(where, b.window("u.updated_at", spec)...)
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id, 1
FROM users u
` + whereClause(where) + `
ORDER BY u.id` + b.page(spec)

	return a.querySingle(ctx, reputation.WorkerIconSet, query, b.args)
}

// WorkerIdentitySubmissions emits 1 per contractor who submitted identity
// verification documents inside the window. EXISTS keeps the count at
// exactly 1 regardless of how many documents were filed.
func (a *Adapter) WorkerIdentitySubmissions(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}
	sub := []string{"d.user_id = u.id"}
	sub = append(sub, b.window("d.created_at", spec)...)

	where := []string{
		workerEligible,
		"EXISTS (SELECT 1 FROM identification_documents d WHERE " + joinAnd(sub) + ")",
	}
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id, 1
FROM users u
` + whereClause(where) + `
ORDER BY u.id` + b.page(spec)

	return a.querySingle(ctx, reputation.WorkerIdentitySubmitted, query, b.args)
}

// WorkerProposals counts project-job proposals submitted per contractor.
func (a *Adapter) WorkerProposals(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{workerEligible}
	where = append(where, b.window("p.created_at", spec)...)
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id, COUNT(p.id)
FROM users u
JOIN proposals p ON p.worker_id = u.id
` + whereClause(where) + `
GROUP BY u.id
ORDER BY u.id` + b.page(spec)

	return a.querySingle(ctx, reputation.WorkerProposalSubmitted, query, b.args)
}

// WorkerTaskDeliveries counts task-trade deliveries per contractor.
func (a *Adapter) WorkerTaskDeliveries(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{workerEligible, "t.delivered_at IS NOT NULL"}
	where = append(where, b.window("t.delivered_at", spec)...)
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id, COUNT(t.id)
FROM users u
JOIN task_trades t ON t.worker_id = u.id
` + whereClause(where) + `
GROUP BY u.id
ORDER BY u.id` + b.page(spec)

	return a.querySingle(ctx, reputation.WorkerTaskDelivered, query, b.args)
}

// WorkerTaskJudgements counts accepted and rejected task deliveries in one
// pass. The two actions share the task_trades join, so they are computed as
// two columns of the same query.
func (a *Adapter) WorkerTaskJudgements(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{workerEligible, "t.judged_at IS NOT NULL"}
	where = append(where, b.window("t.judged_at", spec)...)
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id,
       COUNT(t.id) FILTER (WHERE t.status = 'accepted'),
       COUNT(t.id) FILTER (WHERE t.status = 'rejected')
FROM users u
JOIN task_trades t ON t.worker_id = u.id
` + whereClause(where) + `
GROUP BY u.id
ORDER BY u.id` + b.page(spec)

	actions := []reputation.ActionID{
		reputation.WorkerTaskDeliveryAccepted,
		reputation.WorkerTaskDeliveryRejected,
	}
	return a.queryCombined(ctx, actions, query, b.args)
}

// WorkerProjectLifecycle counts the five project-trade lifecycle actions in
// one pass over project_trades. Each lifecycle stamp carries its own window
// predicate inside its FILTER clause, since "proposed yesterday" and
// "approved yesterday" are independent facts about the same trade row.
func (a *Adapter) WorkerProjectLifecycle(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}

	filters := []string{
		b.occurred("pt.proposed_at", spec),
		b.occurred("pt.contracted_at", spec),
		b.occurred("pt.delivered_at", spec),
		b.occurred("pt.approved_at", spec),
		b.occurred("pt.evaluated_at", spec),
	}

	where := []string{workerEligible}
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id,
       COUNT(pt.id) FILTER (WHERE ` + filters[0] + `),
       COUNT(pt.id) FILTER (WHERE ` + filters[1] + `),
       COUNT(pt.id) FILTER (WHERE ` + filters[2] + `),
       COUNT(pt.id) FILTER (WHERE ` + filters[3] + `),
       COUNT(pt.id) FILTER (WHERE ` + filters[4] + `)
FROM users u
JOIN project_trades pt ON pt.worker_id = u.id
` + whereClause(where) + `
GROUP BY u.id
ORDER BY u.id` + b.page(spec)

	actions := []reputation.ActionID{
		reputation.WorkerProjectProposed,
		reputation.WorkerProjectContracted,
		reputation.WorkerProjectDelivered,
		reputation.WorkerProjectApproved,
		reputation.WorkerProjectEvaluated,
	}
	return a.queryCombined(ctx, actions, query, b.args)
}

// WorkerPaymentsReceived counts completed payments credited to a contractor.
func (a *Adapter) WorkerPaymentsReceived(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{workerEligible, "pay.paid_at IS NOT NULL"}
	where = append(where, b.window("pay.paid_at", spec)...)
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id, COUNT(pay.id)
FROM users u
JOIN payments pay ON pay.payee_id = u.id
` + whereClause(where) + `
GROUP BY u.id
ORDER BY u.id` + b.page(spec)

	return a.querySingle(ctx, reputation.WorkerPaymentReceived, query, b.args)
}
