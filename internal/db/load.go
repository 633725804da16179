package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/kdigstats/internal/model"
	embedsql "github.com/gyeh/kdigstats/internal/sql"
)

const copyBufferSize = 1024

// LoadResult holds metrics from a load.
type LoadResult struct {
	RowsCopied int64
	Duration   time.Duration
}

// Load registers the run and COPYs its records into kdig.records in a single
// transaction, so a failed copy leaves no partial run behind.
func Load(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, sum *model.RunSummary, records []model.Record) (*LoadResult, error) {
	start := time.Now()
	var copied int64

	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, embedsql.InsertRun,
			sum.RunID, sum.InputDir, sum.Candidates, sum.Parsed, sum.Skipped, sum.Failed,
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		n, err := copyRecords(ctx, tx, sum.RunID, records)
		if err != nil {
			return err
		}
		copied = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	dur := time.Since(start)
	log.Info().
		Str("run_id", sum.RunID.String()).
		Int64("rows_copied", copied).
		Str("duration", dur.String()).
		Msg("load complete")

	return &LoadResult{RowsCopied: copied, Duration: dur}, nil
}

// copyRecords streams records through a channel-backed CopyFromSource.
func copyRecords(ctx context.Context, tx pgx.Tx, runID uuid.UUID, records []model.Record) (int64, error) {
	ch := make(chan model.Record, copyBufferSize)
	done := make(chan struct{})

	go func() {
		defer close(ch)
		for _, r := range records {
			select {
			case ch <- r:
			case <-done:
				return
			}
		}
	}()

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"kdig", "records"},
		model.CopyColumns(),
		NewChannelSource(runID, ch),
	)
	close(done)
	if err != nil {
		return 0, fmt.Errorf("copy records: %w", err)
	}
	return n, nil
}

// CountRunRecords returns how many records are stored for runID.
func CountRunRecords(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID) (int64, error) {
	var n int64
	if err := pool.QueryRow(ctx, embedsql.CountRunRecords, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count run records: %w", err)
	}
	return n, nil
}

// DeleteRun removes a run and, by cascade, its records.
func DeleteRun(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID) error {
	if _, err := pool.Exec(ctx, embedsql.DeleteRun, runID); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}
