package reputation

import (
	"context"
	"fmt"

	"github.com/lancera-lab/lancera-reputation/internal/core/condition"
	core "github.com/lancera-lab/lancera-reputation/internal/core/reputation"
	"github.com/lancera-lab/lancera-reputation/internal/core/storage"
)

// Service composes the two role aggregators and the persistence store into
// the facade the drivers and the HTTP layer consume.
type Service struct {
	worker *WorkerCount
	client *ClientCount
	store  storage.ReputationStore
}

// NewService wires the facade.
func NewService(worker *WorkerCount, client *ClientCount, store storage.ReputationStore) *Service {
	return &Service{worker: worker, client: client, store: store}
}

// GetAllWorkerReputationCount runs the full worker catalog.
func (s *Service) GetAllWorkerReputationCount(ctx context.Context, spec condition.Spec) ([]core.Record, error) {
	return s.worker.GetAll(ctx, spec)
}

// GetAllClientReputationCount runs the full client catalog.
func (s *Service) GetAllClientReputationCount(ctx context.Context, spec condition.Spec) ([]core.Record, error) {
	return s.client.GetAll(ctx, spec)
}

// GetTargetWorkerReputationCount runs the requested subset of worker actions.
func (s *Service) GetTargetWorkerReputationCount(ctx context.Context, actionIDs []core.ActionID, spec condition.Spec) ([]core.Record, error) {
	return s.worker.GetTarget(ctx, actionIDs, spec)
}

// GetTargetClientReputationCount runs the requested subset of client actions.
func (s *Service) GetTargetClientReputationCount(ctx context.Context, actionIDs []core.ActionID, spec condition.Spec) ([]core.Record, error) {
	return s.client.GetTarget(ctx, actionIDs, spec)
}

// GetAll dispatches on role.
func (s *Service) GetAll(ctx context.Context, role core.Role, spec condition.Spec) ([]core.Record, error) {
	switch role {
	case core.RoleWorker:
		return s.worker.GetAll(ctx, spec)
	case core.RoleClient:
		return s.client.GetAll(ctx, spec)
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

// GetTarget dispatches on role.
func (s *Service) GetTarget(ctx context.Context, role core.Role, actionIDs []core.ActionID, spec condition.Spec) ([]core.Record, error) {
	switch role {
	case core.RoleWorker:
		return s.worker.GetTarget(ctx, actionIDs, spec)
	case core.RoleClient:
		return s.client.GetTarget(ctx, actionIDs, spec)
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

// SaveByRecords accumulates records into the counter store.
func (s *Service) SaveByRecords(ctx context.Context, records []core.Record) error {
	return s.store.SaveRecords(ctx, records)
}
