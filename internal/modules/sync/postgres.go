package sync

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL sync-run repository.
func NewPostgresRepository(db *sql.DB) RunRepository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateRun(ctx context.Context, run *Run) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, synced_count, error_count, ran_at)
		VALUES ($1,$2,$3,$4)`,
		run.ID, run.SyncedCount, run.ErrorCount, run.RanAt)
	return err
}

func (r *postgresRepo) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, synced_count, error_count, ran_at
		FROM sync_runs ORDER BY ran_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(&run.ID, &run.SyncedCount, &run.ErrorCount, &run.RanAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
