package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lancera-lab/lancera-reputation/internal/core/clock"
	"github.com/lancera-lab/lancera-reputation/internal/core/reputation"
)

// saveChunkSize bounds one bulk upsert to 3 bound values per record plus the
// shared timestamp, keeping each statement far below the driver's parameter
// limit.
const saveChunkSize = 1000

// ReputationStore accumulates flat records into score_user_reputation_counts.
//
// The write is an additive upsert: a new (user, action) pair inserts a fresh
// row, an existing pair has the incoming count added to its stored count.
// Saving the same records twice therefore doubles them; callers own the
// guarantee that each qualifying event reaches exactly one successful save.
type ReputationStore struct {
	db    *sql.DB
	clock clock.Clock
}

// NewReputationStore shares the adapter's connection pool.
func NewReputationStore(db *sql.DB, clk clock.Clock) *ReputationStore {
	return &ReputationStore{db: db, clock: clk}
}

// SaveRecords persists records in fixed-size chunks. Each chunk is one bulk
// statement that fully applies or fully fails; chunks already committed stay
// committed if a later chunk errors.
func (s *ReputationStore) SaveRecords(ctx context.Context, records []reputation.Record) error {
	if len(records) == 0 {
		slog.Info("[ReputationStore] No records to save")
		return nil
	}

	chunks := 0
	for start := 0; start < len(records); start += saveChunkSize {
		end := start + saveChunkSize
		if end > len(records) {
			end = len(records)
		}
		if err := s.saveChunk(ctx, records[start:end]); err != nil {
			return fmt.Errorf("save records chunk %d (records %d-%d): %w", chunks+1, start, end-1, err)
		}
		chunks++
	}

	slog.Info("[ReputationStore] Saved records", "records", len(records), "chunks", chunks)
	return nil
}

func (s *ReputationStore) saveChunk(ctx context.Context, chunk []reputation.Record) error {
	now := s.clock.Now().UTC()

	// $1 is the shared timestamp; each record binds three more values.
	args := make([]any, 0, len(chunk)*3+1)
	args = append(args, now)

	values := make([]string, 0, len(chunk))
	for _, r := range chunk {
		base := len(args)
		args = append(args, r.UserID, int64(r.ActionID), r.Count)
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $1, $1)", base+1, base+2, base+3))
	}

	query := `
INSERT INTO score_user_reputation_counts (user_id, score_reputation_id, count, created_at, updated_at)
VALUES ` + strings.Join(values, ",\n       ") + `
ON CONFLICT (user_id, score_reputation_id)
DO UPDATE SET
	count      = score_user_reputation_counts.count + EXCLUDED.count,
	updated_at = EXCLUDED.updated_at`

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("bulk upsert %d records: %w", len(chunk), err)
	}
	return nil
}
