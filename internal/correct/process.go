package correct

import (
	"context"
	"slices"

	"github.com/rpcpool/kcorrect/internal/fasta"
	"github.com/rpcpool/kcorrect/internal/index"
	"github.com/rpcpool/kcorrect/internal/kmer"
	"github.com/rpcpool/kcorrect/internal/pipeline"
)

// processRead runs the streaming state machine over one read's raw
// sequence bytes, appending the corrected sequence to s.out and
// updating s.stats. A non-ACGT byte splits the read into independent
// segments: the segment in progress is flushed as-is (no correction
// across the gap) and a fresh segment begins at the next byte.
func processRead(o *index.Oracle, s *scratch, seq []byte) {
	s.reset()

	for _, c := range seq {
		b, valid := kmer.FromNuc(c)
		if !valid {
			flushWeak(s)
			s.kmerIter = kmer.NewIterator(s.k)
			s.st = solidRun
			s.errorSize = 0
			s.haveSolid = false
			s.weakBases = s.weakBases[:0]
			continue
		}

		kval := s.kmerIter.PushBase(b)
		if !s.kmerIter.Ready() {
			s.out = append(s.out, b.Nuc())
			continue
		}

		solid := o.Solid(kval)
		switch {
		case solid && s.st == solidRun:
			s.out = append(s.out, b.Nuc())
			s.lastSolid = kval
			s.haveSolid = true

		case !solid && s.st == solidRun:
			s.st = weakRun
			s.errorSize = 1
			s.weakBases = append(s.weakBases[:0], kval.Bases()...)
			s.stats.Errors++

		case !solid && s.st == weakRun:
			s.errorSize++
			s.weakBases = append(s.weakBases, b)

		case solid && s.st == weakRun:
			emitRepaired(o, s, kval, b)
			s.lastSolid = kval
			s.errorSize = 0
			s.st = solidRun
			s.weakBases = s.weakBases[:0]
		}
	}

	flushWeak(s)
}

// flushWeak emits the in-progress weak run verbatim, used both at a
// non-ACGT gap and at end-of-read.
func flushWeak(s *scratch) {
	if s.errorSize == 0 || len(s.weakBases) < s.k-1 {
		return
	}
	for _, b := range s.weakBases[s.k-1:] {
		s.out = append(s.out, b.Nuc())
	}
}

// emitRepaired attempts find_path and writes either the reconstructed
// bridge or, on failure/ambiguity, the original weak bases, followed in
// both cases by last — the base that re-established solidity, which
// reconstruct never includes (its backward flank stops one short of
// current) and so must always be appended separately.
func emitRepaired(o *index.Oracle, s *scratch, current kmer.Packed, last kmer.Base) {
	k := s.k
	eligible := s.haveSolid && s.errorSize >= k-1 && s.errorSize <= 2*k-1

	if eligible {
		if bridge, dF, dB, ok := findPath(o, s.lastSolid, current, s.errorSize); ok {
			// Like the weak bases, the reconstructed window starts one base
			// after lastSolid; only its part past the first K-1 bases is new.
			run := reconstruct(s.lastSolid, bridge, current, dF, dB)
			run = classifyAndRebuild(s.weakBases[k-1:], run[k-1:])
			for _, b := range run {
				s.out = append(s.out, b.Nuc())
			}
			s.out = append(s.out, last.Nuc())
			s.stats.Corrections++
			return
		}
	}

	// No repair: pass the weak bases through unchanged, plus the base
	// that re-established solidity.
	for _, b := range s.weakBases[k-1:] {
		s.out = append(s.out, b.Nuc())
	}
	s.out = append(s.out, last.Nuc())
}

// classifyAndRebuild re-derives the corrected run from the original
// (pre-repair) run using the single-edit mutation iterators when the
// repair reduces to one insertion, deletion, or substitution. When the
// bridge's length delta does not correspond to a single edit (a
// multi-error bridge), the BFS-reconstructed run is used directly; the
// iterators only have a single-edit vocabulary.
func classifyAndRebuild(original, reconstructed []kmer.Base) []kmer.Base {
	switch len(reconstructed) - len(original) {
	case 0:
		for i := range original {
			if original[i] != reconstructed[i] {
				if !slices.Equal(original[i+1:], reconstructed[i+1:]) {
					return reconstructed
				}
				return kmer.Collect(kmer.Substitution(kmer.All(original), i, reconstructed[i]))
			}
		}
		return reconstructed
	case 1:
		for i := 0; i <= len(original); i++ {
			if matchesInsertion(original, reconstructed, i) {
				return kmer.Collect(kmer.Insertion(kmer.All(original), i, reconstructed[i]))
			}
		}
		return reconstructed
	case -1:
		for i := 0; i < len(reconstructed); i++ {
			if matchesDeletion(original, reconstructed, i) {
				return kmer.Collect(kmer.Deletion(kmer.All(original), i))
			}
		}
		return reconstructed
	default:
		return reconstructed
	}
}

func matchesInsertion(original, reconstructed []kmer.Base, at int) bool {
	if len(reconstructed) != len(original)+1 {
		return false
	}
	for i := 0; i < at; i++ {
		if original[i] != reconstructed[i] {
			return false
		}
	}
	for i := at; i < len(original); i++ {
		if original[i] != reconstructed[i+1] {
			return false
		}
	}
	return true
}

func matchesDeletion(original, reconstructed []kmer.Base, at int) bool {
	if len(reconstructed) != len(original)-1 {
		return false
	}
	for i := 0; i < at; i++ {
		if original[i] != reconstructed[i] {
			return false
		}
	}
	for i := at; i < len(reconstructed); i++ {
		if original[i+1] != reconstructed[i] {
			return false
		}
	}
	return true
}

// Run executes the correction pass over every record from r, writing
// corrected records to w in input order, and returns the accumulated
// Stats.
func Run(ctx context.Context, r *fasta.Reader, w *fasta.Writer, o *index.Oracle, workers int) (Stats, error) {
	var total Stats

	err := pipeline.RunOrdered(
		ctx, r, workers,
		func() pipeline.Scratch { return newScratch(o) },
		func(rec pipeline.Record, sc pipeline.Scratch) {
			s := sc.(*scratch)
			processRead(o, s, rec.Seq)
		},
		func(rec pipeline.Record, sc pipeline.Scratch) error {
			s := sc.(*scratch)
			if err := w.Write(rec.Header, s.out); err != nil {
				return err
			}
			total.Add(s.stats)
			s.stats = Stats{}
			return nil
		},
	)
	if err != nil {
		return total, err
	}
	return total, nil
}
