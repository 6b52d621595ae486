package storage

import (
	"context"

	"golang.org/x/sync/errgroup"

	"csvclean/internal/table"
)

// DefaultBatchSize is used by Export when the configured batch size is not
// positive.
const DefaultBatchSize = 1000

// Export appends every row of the cleaned table to the repository in batches.
// Missing cells become SQL NULL; all other values are passed through as
// strings. It returns the number of rows the backend reported as inserted.
//
// The table is fed to LoadBatches through a channel so the batching, logging,
// and cancellation behavior is identical for every backend.
func Export(ctx context.Context, repo Repository, t *table.Table, batchSize int) (int64, error) {
	if t == nil || t.NumCols() == 0 || t.NumRows() == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	g, ctx := errgroup.WithContext(ctx)
	rows := make(chan []any, batchSize)

	g.Go(func() error {
		defer close(rows)
		for _, row := range t.Rows {
			vals := make([]any, len(row))
			for i, c := range row {
				if c.Missing {
					continue // nil encodes as NULL
				}
				vals[i] = c.Val
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case rows <- vals:
			}
		}
		return nil
	})

	var total int64
	g.Go(func() error {
		n, err := LoadBatches(ctx, t.Columns, rows, batchSize, repo.CopyFrom)
		total = n
		return err
	})

	if err := g.Wait(); err != nil {
		return total, err
	}
	return total, nil
}
