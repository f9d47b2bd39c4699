package postgres

import (
	"context"

	"github.com/lancera-lab/lancera-reputation/internal/core/condition"
	"github.com/lancera-lab/lancera-reputation/internal/core/reputation"
)

// Client action queries. Same shape as the worker side, filtered to
// eligible outsourcer accounts; trade-derived actions reach the client
// through the jobs table, since trades hang off the job rather than the
// client directly.

// ClientRegistrations emits 1 per outsourcer registered inside the window.
func (a *Adapter) ClientRegistrations(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{clientEligible}
	where = append(where, b.window("u.created_at", spec)...)
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id, 1
FROM users u
` + whereClause(where) + `
ORDER BY u.id` + b.page(spec)

	return a.querySingle(ctx, reputation.ClientRegistered, query, b.args)
}

// ClientProfileFills emits 1 per outsourcer whose self introduction is set.
func (a *Adapter) ClientProfileFills(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{
		clientEligible,
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

	return a.querySingle(ctx, reputation.ClientProfileFilled, query, b.args)
}

// ClientIconSets emits 1 per outsourcer with a profile icon.
func (a *Adapter) ClientIconSets(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{
		clientEligible,
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

	return a.querySingle(ctx, reputation.ClientIconSet, query, b.args)
}

// ClientTaskJobPosts counts task-category jobs posted per client.
func (a *Adapter) ClientTaskJobPosts(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	return a.clientJobPosts(ctx, spec, "task", reputation.ClientTaskJobPosted)
}

// ClientProjectJobPosts counts project-category jobs posted per client.
func (a *Adapter) ClientProjectJobPosts(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	return a.clientJobPosts(ctx, spec, "project", reputation.ClientProjectJobPosted)
}

func (a *Adapter) clientJobPosts(
	ctx context.Context,
	spec condition.Spec,
	category string,
	action reputation.ActionID,
) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{clientEligible, "j.category = " + b.bind(category)}
	where = append(where, b.window("j.created_at", spec)...)
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id, COUNT(j.id)
FROM users u
JOIN jobs j ON j.client_id = u.id
` + whereClause(where) + `
GROUP BY u.id
ORDER BY u.id` + b.page(spec)

	return a.querySingle(ctx, action, query, b.args)
}

// ClientTaskJudgements counts task deliveries the client accepted and
// rejected, in one pass over task_trades joined through the client's jobs.
func (a *Adapter) ClientTaskJudgements(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{clientEligible, "t.judged_at IS NOT NULL"}
	where = append(where, b.window("t.judged_at", spec)...)
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id,
       COUNT(t.id) FILTER (WHERE t.status = 'accepted'),
       COUNT(t.id) FILTER (WHERE t.status = 'rejected')
FROM users u
JOIN jobs j ON j.client_id = u.id
JOIN task_trades t ON t.job_id = j.id
` + whereClause(where) + `
GROUP BY u.id
ORDER BY u.id` + b.page(spec)

	actions := []reputation.ActionID{
		reputation.ClientTaskDeliveryAccepted,
		reputation.ClientTaskDeliveryRejected,
	}
	return a.queryCombined(ctx, actions, query, b.args)
}

// ClientProjectContracts counts project trades the client contracted.
func (a *Adapter) ClientProjectContracts(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	return a.clientProjectStamp(ctx, spec, "pt.contracted_at", reputation.ClientProjectContracted)
}

// ClientProjectApprovals counts project deliveries the client approved.
func (a *Adapter) ClientProjectApprovals(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	return a.clientProjectStamp(ctx, spec, "pt.approved_at", reputation.ClientProjectApproved)
}

func (a *Adapter) clientProjectStamp(
	ctx context.Context,
	spec condition.Spec,
	column string,
	action reputation.ActionID,
) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{clientEligible, column + " IS NOT NULL"}
	where = append(where, b.window(column, spec)...)
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id, COUNT(pt.id)
FROM users u
JOIN jobs j ON j.client_id = u.id
JOIN project_trades pt ON pt.job_id = j.id
` + whereClause(where) + `
GROUP BY u.id
ORDER BY u.id` + b.page(spec)

	return a.querySingle(ctx, action, query, b.args)
}

// ClientPaymentsMade counts completed payments the client made.
func (a *Adapter) ClientPaymentsMade(ctx context.Context, spec condition.Spec) ([]reputation.Row, error) {
	b := &builder{}
	where := []string{clientEligible, "pay.paid_at IS NOT NULL"}
	where = append(where, b.window("pay.paid_at", spec)...)
	where = append(where, b.userFilter("u.id", spec)...)

	query := `
SELECT u.id, COUNT(pay.id)
FROM users u
JOIN payments pay ON pay.payer_id = u.id
` + whereClause(where) + `
GROUP BY u.id
ORDER BY u.id` + b.page(spec)

	return a.querySingle(ctx, reputation.ClientPaymentMade, query, b.args)
}
