package reputation

import (
	"context"

	"github.com/lancera-lab/lancera-reputation/internal/core/condition"
	core "github.com/lancera-lab/lancera-reputation/internal/core/reputation"
	"github.com/lancera-lab/lancera-reputation/internal/core/storage"
)

// ClientCount owns the client-side registry.
type ClientCount struct {
	groups []queryGroup
}

// NewClientCount builds the registry over a ClientActionStore.
func NewClientCount(store storage.ClientActionStore) *ClientCount {
	return &ClientCount{groups: []queryGroup{
		{actions: []core.ActionID{core.ClientRegistered}, run: store.ClientRegistrations},
		{actions: []core.ActionID{core.ClientProfileFilled}, run: store.ClientProfileFills},
		{actions: []core.ActionID{core.ClientIconSet}, run: store.ClientIconSets},
		{actions: []core.ActionID{core.ClientTaskJobPosted}, run: store.ClientTaskJobPosts},
		{actions: []core.ActionID{core.ClientProjectJobPosted}, run: store.ClientProjectJobPosts},
		{
			actions: []core.ActionID{
				core.ClientTaskDeliveryAccepted,
				core.ClientTaskDeliveryRejected,
			},
			run: store.ClientTaskJudgements,
		},
		{actions: []core.ActionID{core.ClientProjectContracted}, run: store.ClientProjectContracts},
		{actions: []core.ActionID{core.ClientProjectApproved}, run: store.ClientProjectApprovals},
		{actions: []core.ActionID{core.ClientPaymentMade}, run: store.ClientPaymentsMade},
	}}
}

// GetAll runs every registered query against the spec.
func (c *ClientCount) GetAll(ctx context.Context, spec condition.Spec) ([]core.Record, error) {
	return runAll(ctx, c.groups, spec)
}

// GetTarget runs only the queries whose actions intersect the requested set.
func (c *ClientCount) GetTarget(ctx context.Context, actionIDs []core.ActionID, spec condition.Spec) ([]core.Record, error) {
	return runTarget(ctx, c.groups, actionIDs, spec)
}
