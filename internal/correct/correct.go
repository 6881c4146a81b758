// Package correct implements the parallel correction pass: for each
// read, a streaming per-base state machine separates solid from weak
// regions using the solidity oracle built by the indexing pass, and
// attempts to patch weak regions by bridging adjacent solid k-mers with
// a bounded bidirectional search (see repair.go).
package correct

import (
	"github.com/rpcpool/kcorrect/internal/index"
	"github.com/rpcpool/kcorrect/internal/kmer"
)

// Stats accumulates the two summary counters, merged into a global
// total only on the writer/sink side.
type Stats struct {
	Errors      int64
	Corrections int64
}

// Add merges other into s.
func (s *Stats) Add(other Stats) {
	s.Errors += other.Errors
	s.Corrections += other.Corrections
}

type runState int

const (
	solidRun runState = iota
	weakRun
)

// scratch is the per-worker correction state reused across records by
// RunOrdered's scratch pool: an output byte buffer, the error-run
// state, and a local Stats accumulator.
type scratch struct {
	k int

	out []byte

	st        runState
	errorSize int
	weakBases []kmer.Base
	lastSolid kmer.Packed
	haveSolid bool

	kmerIter *kmer.Iterator

	stats Stats
}

func newScratch(o *index.Oracle) *scratch {
	return &scratch{k: o.K, kmerIter: kmer.NewIterator(o.K)}
}

// reset clears per-read state so the same scratch can be reused for the
// next record.
func (s *scratch) reset() {
	s.out = s.out[:0]
	s.st = solidRun
	s.errorSize = 0
	s.weakBases = s.weakBases[:0]
	s.haveSolid = false
	s.kmerIter = kmer.NewIterator(s.k)
}
