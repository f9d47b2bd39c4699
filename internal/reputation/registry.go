package reputation

import (
	"context"
	"fmt"

	"github.com/lancera-lab/lancera-reputation/internal/core/condition"
	core "github.com/lancera-lab/lancera-reputation/internal/core/reputation"
)

// queryGroup binds a set of action IDs to the one query that computes them.
// Single-action groups hold one ID; combined queries hold every action that
// shares their join and are indivisible: triggering any member runs the
// query, and the whole group's records come back.
type queryGroup struct {
	actions []core.ActionID
	run     func(ctx context.Context, spec condition.Spec) ([]core.Row, error)
}

func (g queryGroup) matches(requested map[core.ActionID]bool) bool {
	for _, id := range g.actions {
		if requested[id] {
			return true
		}
	}
	return false
}

// runAll executes every group in registry order, flattening and
// concatenating results. The spec is validated once, before any query runs.
func runAll(ctx context.Context, groups []queryGroup, spec condition.Spec) ([]core.Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var records []core.Record
	for _, g := range groups {
		rows, err := g.run(ctx, spec)
		if err != nil {
			return nil, fmt.Errorf("run %s query: %w", g.actions[0], err)
		}
		records = append(records, core.Flatten(rows)...)
	}
	return records, nil
}

// runTarget executes only the groups whose action set intersects the
// requested IDs. Unknown IDs are silently ignored. Combined groups
// contribute all of their actions even when only one was requested.
func runTarget(
	ctx context.Context,
	groups []queryGroup,
	actionIDs []core.ActionID,
	spec condition.Spec,
) ([]core.Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	requested := make(map[core.ActionID]bool, len(actionIDs))
	for _, id := range actionIDs {
		requested[id] = true
	}

	var records []core.Record
	for _, g := range groups {
		if !g.matches(requested) {
			continue
		}
		rows, err := g.run(ctx, spec)
		if err != nil {
			return nil, fmt.Errorf("run %s query: %w", g.actions[0], err)
		}
		records = append(records, core.Flatten(rows)...)
	}
	return records, nil
}
