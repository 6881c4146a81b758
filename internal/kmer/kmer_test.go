package kmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromNucsRejectsNonACGT(t *testing.T) {
	_, ok := FromNucs([]byte("ACGTN"), 5)
	assert.False(t, ok)

	p, ok := FromNucs([]byte("ACGTA"), 5)
	require.True(t, ok)
	assert.Equal(t, 5, p.Length)
}

func TestCanonicalIsReverseComplementInvariant(t *testing.T) {
	p, ok := FromNucs([]byte("ACGTA"), 5)
	require.True(t, ok)

	rc := p.ReverseComplement()
	assert.Equal(t, p.Canonical(), rc.Canonical())
}

func TestSuccessorPredecessorRoundTrip(t *testing.T) {
	p, ok := FromNucs([]byte("ACGTA"), 5)
	require.True(t, ok)

	succs := p.Successors()
	for b := Base(0); b < 4; b++ {
		preds := succs[b].Predecessors()
		// Prepending the base that was dropped by the append must
		// reconstruct the original register.
		first := p.Bases()[0]
		assert.Equal(t, p, preds[first])
	}
}

func TestAppendMasksToWindow(t *testing.T) {
	p, ok := FromNucs([]byte("AAAAA"), 5)
	require.True(t, ok)
	p = p.Append(T) // AAAAT
	assert.Equal(t, []Base{A, A, A, A, T}, p.Bases())
}

func TestIterFromNucsSkipsNonACGT(t *testing.T) {
	var got []Packed
	IterFromNucs([]byte("ACGTNACGTA"), 5, func(p Packed) bool {
		got = append(got, p)
		return true
	})
	// "ACGTN" yields nothing (N resets before window completes again
	// mid-stream); "ACGTA" after the reset yields exactly one 5-mer.
	require.Len(t, got, 1)
	assert.Equal(t, []Base{A, C, G, T, A}, got[0].Bases())
}

func TestFromBasesBasesRoundTrip(t *testing.T) {
	bases := []Base{A, C, G, T, A, C, G}
	p := FromBases(bases)
	assert.Equal(t, bases, p.Bases())
}
