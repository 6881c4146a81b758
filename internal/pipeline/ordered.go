package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	concurrently "github.com/tejzpr/ordered-concurrently/v3"

	"github.com/rpcpool/kcorrect/internal/fasta"
)

// Scratch is the per-worker state a RunOrdered caller wants reused
// across records: default-constructible and safe to hand to exactly one
// worker at a time.
type Scratch any

// orderedResult is what a correctionWork.Run hands back on the output
// channel: the record, its populated scratch, and the scratch's pool so
// the draining goroutine can return it once the sink has read it.
type orderedResult struct {
	rec     Record
	scratch Scratch
	pool    *sync.Pool
}

// correctionWork is one concurrently.WorkFunction: one record plus the
// process closure and the sync.Pool it borrows its scratch object from.
// It only runs process — never the sink — because workers complete out
// of order; the sink must run from the single goroutine draining the
// library's output channel, which is where the in-order guarantee
// actually lives.
type correctionWork struct {
	rec     Record
	pool    *sync.Pool
	process func(Record, Scratch)
}

// Run implements concurrently.WorkFunction. Scratch objects are borrowed
// from a sync.Pool rather than pinned one-per-goroutine, because the
// ordered-concurrently pool does not expose worker identity; pooling
// still reuses scratch objects across records instead of allocating one
// per record, and under a pool of size `workers` converges to one
// scratch per worker in steady state.
func (w *correctionWork) Run(ctx context.Context) interface{} {
	scratch := w.pool.Get().(Scratch)
	w.process(w.rec, scratch)
	return orderedResult{rec: w.rec, scratch: scratch, pool: w.pool}
}

// RunOrdered drives process(record, scratch) across a bounded pool of
// workers workers, each borrowing a Scratch value from a shared pool,
// then calls sink(record, scratch) from a single goroutine once the
// scratch has been populated. Despite running unordered internally,
// github.com/tejzpr/ordered-concurrently/v3 delivers completions on its
// output channel in input order, so sink observes records in input
// order, matching the "the sink runs on the producer's ordering"
// guarantee. A worker or sink error aborts the run.
func RunOrdered(
	ctx context.Context,
	r *fasta.Reader,
	workers int,
	newScratch func() Scratch,
	process func(Record, Scratch),
	sink func(Record, Scratch) error,
) error {
	pool := &sync.Pool{New: func() interface{} { return newScratch() }}

	inputChan := make(chan concurrently.WorkFunction, workers)
	outputChan := concurrently.Process(ctx, inputChan, &concurrently.Options{
		PoolSize:         workers,
		OutChannelBuffer: workers,
	})

	var firstErr error
	var once sync.Once
	var failed atomic.Bool
	recordErr := func(err error) {
		once.Do(func() { firstErr = err })
		failed.Store(true)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for result := range outputChan {
			switch v := result.Value.(type) {
			case error:
				recordErr(fmt.Errorf("pipeline: ordered worker: %w", v))
			case orderedResult:
				if !failed.Load() {
					if err := sink(v.rec, v.scratch); err != nil {
						recordErr(fmt.Errorf("pipeline: ordered sink: %w", err))
					}
				}
				v.pool.Put(v.scratch)
			default:
				recordErr(fmt.Errorf("pipeline: unexpected result type %T", result.Value))
			}
		}
	}()

	i := 0
	for !failed.Load() {
		rec, ok, err := nextRecord(r, i)
		if !ok {
			if err := eofOrNil(err); err != nil {
				close(inputChan)
				<-done
				return err
			}
			break
		}
		i++
		inputChan <- &correctionWork{rec: rec, pool: pool, process: process}
	}
	close(inputChan)
	<-done

	return firstErr
}
