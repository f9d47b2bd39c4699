package postgres

import (
	"context"
	"fmt"

	"github.com/lancera-lab/lancera-reputation/internal/core/reputation"
)

// querySingle executes a (user_id, count) query and tags every row with the
// given action.
func (a *Adapter) querySingle(
	ctx context.Context,
	action reputation.ActionID,
	query string,
	args []any,
) ([]reputation.Row, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", action, err)
	}
	defer rows.Close()

	var result []reputation.Row
	for rows.Next() {
		var userID, count int64
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", action, err)
		}
		result = append(result, reputation.Row{
			UserID:  userID,
			Columns: []reputation.CountColumn{{Action: action, Count: count}},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", action, err)
	}
	return result, nil
}

// queryCombined executes a query whose select list is user_id followed by
// one count column per action, in the given order.
func (a *Adapter) queryCombined(
	ctx context.Context,
	actions []reputation.ActionID,
	query string,
	args []any,
) ([]reputation.Row, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", actions[0], err)
	}
	defer rows.Close()

	var result []reputation.Row
	for rows.Next() {
		var userID int64
		counts := make([]int64, len(actions))
		dest := make([]any, 0, len(actions)+1)
		dest = append(dest, &userID)
		for i := range counts {
			dest = append(dest, &counts[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", actions[0], err)
		}

		columns := make([]reputation.CountColumn, len(actions))
		for i, action := range actions {
			columns[i] = reputation.CountColumn{Action: action, Count: counts[i]}
		}
		result = append(result, reputation.Row{UserID: userID, Columns: columns})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", actions[0], err)
	}
	return result, nil
}
