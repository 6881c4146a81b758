package index

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpcpool/kcorrect/internal/fasta"
	"github.com/rpcpool/kcorrect/internal/kmer"
)

func testOracle(k, m int, abundance uint8) *Oracle {
	return NewOracle(Config{
		K: k, M: m,
		Abundance:  abundance,
		Hashes:     3,
		Seed:       101010,
		ShardCount: 4,
		SketchSize: 1 << 16,
		Workers:    1,
	})
}

func TestThresholds(t *testing.T) {
	minT, kmerT := thresholds(5)
	assert.Equal(t, uint8(3), minT)
	assert.Equal(t, uint8(3), kmerT)

	minT, kmerT = thresholds(1)
	assert.Equal(t, uint8(1), minT)
	assert.Equal(t, uint8(1), kmerT)
}

// TestRunMakesRepeatedKmersSolid mirrors scenario 2 loosely: a read
// whose every k-mer occurs often enough crosses kmer_threshold.
func TestRunMakesRepeatedKmersSolid(t *testing.T) {
	const k, m = 5, 3
	o := testOracle(k, m, 2)

	// Repeat the same read several times so every k-mer and its
	// governing minimizer individually cross their thresholds.
	var sb strings.Builder
	for i := 0; i < 5; i++ {
		sb.WriteString(">r\nACGTACGTACGT\n")
	}
	r := fasta.NewReader(strings.NewReader(sb.String()))

	err := Run(context.Background(), r, o, 1, 101010)
	require.NoError(t, err)

	p, ok := kmer.FromNucs([]byte("ACGTA"), k)
	require.True(t, ok)
	assert.True(t, o.Solid(p))
}

// TestRunSkipsNonACGT checks that an N in the middle of a read does not
// crash the pass and does not let a k-mer span the gap.
func TestRunSkipsNonACGT(t *testing.T) {
	const k, m = 5, 3
	o := testOracle(k, m, 1)
	r := fasta.NewReader(strings.NewReader(">r\nACGTANNNACGTA\n"))

	err := Run(context.Background(), r, o, 1, 101010)
	require.NoError(t, err)

	// The 5-mers that would straddle the N run if it were simply dropped
	// were never counted.
	for _, s := range []string{"CGTAA", "GTAAC", "TAACG", "AACGT"} {
		p, ok := kmer.FromNucs([]byte(s), k)
		require.True(t, ok)
		assert.False(t, o.Solid(p), s)
	}
}
