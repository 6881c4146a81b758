package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rpcpool/kcorrect/internal/fasta"
)

// RunPool drives fn over every record using a bounded worker pool of
// workers goroutines, with no per-record output and no ordering
// guarantee at all (used by the indexing pass, whose counter updates
// commute). A worker panic aborts the whole pass: errgroup.Group
// already propagates a panic out of Wait by letting it crash the
// process, which matches "panics inside a worker terminate the pass."
func RunPool(ctx context.Context, r *fasta.Reader, workers int, fn func(Record)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	i := 0
	for {
		rec, ok, err := nextRecord(r, i)
		if !ok {
			if err := eofOrNil(err); err != nil {
				_ = g.Wait()
				return err
			}
			break
		}
		i++

		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			fn(rec)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("pipeline: worker pool: %w", err)
	}
	return nil
}
