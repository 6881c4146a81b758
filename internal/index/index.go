// Package index implements the parallel indexing pass: it ingests all
// reads and builds the two approximate counters (minimizer counter,
// k-mer counter) that the correction pass later queries as a solidity
// oracle.
package index

import (
	"context"

	"github.com/rpcpool/kcorrect/internal/fasta"
	"github.com/rpcpool/kcorrect/internal/kmer"
	"github.com/rpcpool/kcorrect/internal/pipeline"
	"github.com/rpcpool/kcorrect/internal/sketch"
)

// Oracle bundles the two counters built by the indexing pass and
// queried read-only by the correction pass.
type Oracle struct {
	K, M          int
	MinThreshold  uint8
	KmerThreshold uint8

	MinCounter  *sketch.Sketch
	KmerCounter *sketch.Sketch
}

// Solid reports whether a k-mer's canonical form has crossed
// kmer_threshold.
func (o *Oracle) Solid(k kmer.Packed) bool {
	return o.KmerCounter.Count(k.Canonical().Value) >= o.KmerThreshold
}

// Config controls the indexing pass.
type Config struct {
	K, M       int
	Abundance  uint8
	Hashes     int
	Seed       uint64
	ShardCount int
	SketchSize int // logical cell count per counter
	Workers    int
}

// thresholds derives min_threshold and kmer_threshold from the user
// abundance parameter A, per the per-base update rule.
func thresholds(a uint8) (minThreshold, kmerThreshold uint8) {
	minThreshold = uint8((int(a) + 1) / 2)
	kmerThreshold = uint8(int(a) + 1 - int(minThreshold))
	return
}

// NewOracle allocates the two counters for a Config.
func NewOracle(cfg Config) *Oracle {
	minT, kmerT := thresholds(cfg.Abundance)
	return &Oracle{
		K:             cfg.K,
		M:             cfg.M,
		MinThreshold:  minT,
		KmerThreshold: kmerT,
		MinCounter:    sketch.New(cfg.SketchSize, cfg.Hashes, cfg.ShardCount, cfg.Seed),
		KmerCounter:   sketch.New(cfg.SketchSize, cfg.Hashes, cfg.ShardCount, cfg.Seed+1),
	}
}

// readState is the five pieces of per-read local scratch named by the
// design: one k-mer register, one m-mer register, one minimizer queue,
// one "previous minimizer" register, one "current minimizer solid"
// flag.
type readState struct {
	kmerIter *kmer.Iterator
	mmerIter *kmer.Iterator
	queue    *kmer.MinimizerQueue

	havePrevMin bool
	prevMin     kmer.Packed
	curMinSolid bool
}

func newReadState(o *Oracle, seed uint64) *readState {
	w := kmer.Window(o.K, o.M)
	return &readState{
		kmerIter: kmer.NewIterator(o.K),
		mmerIter: kmer.NewIterator(o.M),
		queue:    kmer.NewMinimizerQueue(w, seed),
	}
}

// processBase implements the four-step per-base update.
func (rs *readState) processBase(o *Oracle, b kmer.Base) {
	mval := rs.mmerIter.PushBase(b)
	mReady := rs.mmerIter.Ready()
	if mReady {
		rs.queue.Insert(mval.Canonical())
	}

	kval := rs.kmerIter.PushBase(b)
	if !rs.kmerIter.Ready() {
		return
	}

	min, ok := rs.queue.GetMin()
	if !ok {
		return
	}

	if rs.havePrevMin && min == rs.prevMin {
		if rs.curMinSolid {
			o.KmerCounter.Add(kval.Canonical().Value)
		}
		return
	}

	rs.curMinSolid = o.MinCounter.AddAndCount(min.Value) >= o.MinThreshold
	if rs.curMinSolid {
		o.KmerCounter.Add(kval.Canonical().Value)
	}
	rs.prevMin = min
	rs.havePrevMin = true
}

// processRead drives the per-base update across one read's bases. A
// non-ACGT byte breaks the stream: no correction is attempted across
// the gap, so a fresh readState (fresh k-mer/m-mer registers, fresh
// minimizer queue) takes over from the next base.
func processRead(o *Oracle, seed uint64, seq []byte) {
	rs := newReadState(o, seed)
	for _, c := range seq {
		b, ok := kmer.FromNuc(c)
		if !ok {
			rs = newReadState(o, seed)
			continue
		}
		rs.processBase(o, b)
	}
}

// Run executes the indexing pass over every record from r, using a
// bounded worker pool (counter updates commute, so no output ordering
// is needed).
func Run(ctx context.Context, r *fasta.Reader, o *Oracle, workers int, minimizerSeed uint64) error {
	return pipeline.RunPool(ctx, r, workers, func(rec pipeline.Record) {
		processRead(o, minimizerSeed, rec.Seq)
	})
}
