package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/bloglab/notion-sync/internal/core/domain"
	"github.com/bloglab/notion-sync/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// Record stores the outcome of one sync run.
func (r *runStore) Record(ctx context.Context, run domain.SyncRun) error {
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, started_at, finished_at, pages_fetched, processed, skipped, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.PagesFetched, run.Processed, run.Skipped, run.Errors)
	if err != nil {
		return fmt.Errorf("inserting sync run: %w", err)
	}

	return nil
}

// Recent returns up to limit runs, newest first.
func (r *runStore) Recent(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, pages_fetched, processed, skipped, errors
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sync runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun
	for rows.Next() {
		var run domain.SyncRun
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &startedAt, &finishedAt,
			&run.PagesFetched, &run.Processed, &run.Skipped, &run.Errors); err != nil {
			return nil, fmt.Errorf("scanning sync run: %w", err)
		}

		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parsing started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, fmt.Errorf("parsing finished_at: %w", err)
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sync runs: %w", err)
	}

	return runs, nil
}
