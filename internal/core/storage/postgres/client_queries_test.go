package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lancera-lab/lancera-reputation/internal/core/condition"
	"github.com/lancera-lab/lancera-reputation/internal/core/reputation"
)

func TestClientRegistrations_EligibilityPredicate(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery(`SELECT u\.id, 1\nFROM users u\nWHERE u\.view_mode = 'outsourcer' AND u\.is_active AND u\.resigned_at IS NULL\nORDER BY u\.id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "count"}).AddRow(int64(100), int64(1)))

	rows, err := adapter.ClientRegistrations(context.Background(), condition.Spec{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, reputation.ClientRegistered, rows[0].Columns[0].Action)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientTaskJobPosts_BindsCategory(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	start := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	finish := start.AddDate(0, 0, 1)

	mock.ExpectQuery(`(?s)SELECT u\.id, COUNT\(j\.id\)\nFROM users u\nJOIN jobs j ON j\.client_id = u\.id\nWHERE .*j\.category = \$1\n  AND j\.created_at >= \$2\n  AND j\.created_at < \$3`).
		WithArgs("task", start, finish).
		WillReturnRows(sqlmock.NewRows([]string{"id", "count"}).AddRow(int64(5), int64(2)))

	rows, err := adapter.ClientTaskJobPosts(context.Background(), condition.Windowed(start, finish))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, reputation.Row{
		UserID:  5,
		Columns: []reputation.CountColumn{{Action: reputation.ClientTaskJobPosted, Count: 2}},
	}, rows[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientProjectJobPosts_BindsCategory(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery(`(?s)JOIN jobs j ON j\.client_id = u\.id\nWHERE .*j\.category = \$1`).
		WithArgs("project").
		WillReturnRows(sqlmock.NewRows([]string{"id", "count"}))

	_, err := adapter.ClientProjectJobPosts(context.Background(), condition.Spec{})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientTaskJudgements_JoinsThroughJobs(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery(`(?s)FROM users u\nJOIN jobs j ON j\.client_id = u\.id\nJOIN task_trades t ON t\.job_id = j\.id\nWHERE .*t\.judged_at IS NOT NULL`).
		WithArgs(pq.Array([]int64{5, 6})).
		WillReturnRows(sqlmock.NewRows([]string{"id", "accepted", "rejected"}).
			AddRow(int64(5), int64(4), int64(1)))

	rows, err := adapter.ClientTaskJudgements(context.Background(), condition.Spec{UserIDs: []int64{5, 6}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []reputation.CountColumn{
		{Action: reputation.ClientTaskDeliveryAccepted, Count: 4},
		{Action: reputation.ClientTaskDeliveryRejected, Count: 1},
	}, rows[0].Columns)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientProjectApprovals_WindowOnApprovedAt(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	start := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)JOIN project_trades pt ON pt\.job_id = j\.id\nWHERE .*pt\.approved_at IS NOT NULL\n  AND pt\.approved_at >= \$1`).
		WithArgs(start).
		WillReturnRows(sqlmock.NewRows([]string{"id", "count"}).AddRow(int64(8), int64(3)))

	rows, err := adapter.ClientProjectApprovals(context.Background(), condition.Spec{Start: &start})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, reputation.ClientProjectApproved, rows[0].Columns[0].Action)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientPaymentsMade_PayerJoin(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery(`(?s)JOIN payments pay ON pay\.payer_id = u\.id\nWHERE .*pay\.paid_at IS NOT NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "count"}).AddRow(int64(11), int64(7)))

	rows, err := adapter.ClientPaymentsMade(context.Background(), condition.Spec{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].Columns[0].Count)
	require.NoError(t, mock.ExpectationsWereMet())
}
