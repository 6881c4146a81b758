package correct

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpcpool/kcorrect/internal/fasta"
	"github.com/rpcpool/kcorrect/internal/index"
)

func buildOracle(k, m int, abundance uint8, reads ...string) *index.Oracle {
	o := index.NewOracle(index.Config{
		K: k, M: m,
		Abundance:  abundance,
		Hashes:     3,
		Seed:       101010,
		ShardCount: 4,
		SketchSize: 1 << 16,
	})
	var sb strings.Builder
	for i, r := range reads {
		sb.WriteString(">r")
		sb.WriteByte(byte('0' + i))
		sb.WriteByte('\n')
		sb.WriteString(r)
		sb.WriteByte('\n')
	}
	rd := fasta.NewReader(strings.NewReader(sb.String()))
	_ = index.Run(context.Background(), rd, o, 1, 101010)
	return o
}

func runCorrection(t *testing.T, o *index.Oracle, input string) (string, Stats) {
	t.Helper()
	rd := fasta.NewReader(strings.NewReader(input))
	var out strings.Builder
	w := fasta.NewWriter(&out)
	stats, err := Run(context.Background(), rd, w, o, 1)
	require.NoError(t, err)
	return out.String(), stats
}

func TestEmptyInputProducesEmptyOutput(t *testing.T) {
	o := buildOracle(5, 3, 1)
	out, stats := runCorrection(t, o, "")
	assert.Empty(t, out)
	assert.Equal(t, int64(0), stats.Errors)
	assert.Equal(t, int64(0), stats.Corrections)
}

func TestUniformAbundanceReadPassesThroughUnchanged(t *testing.T) {
	const read = "ACGTACGTACGT"
	// Every 5-mer in this read occurs multiple times across several
	// copies, crossing kmer_threshold at A=1.
	o := buildOracle(5, 3, 1, read, read, read)
	out, stats := runCorrection(t, o, ">r\n"+read+"\n")
	assert.Contains(t, out, read)
	assert.Equal(t, int64(0), stats.Errors)
}

func TestNSplitsReadIntoIndependentSegments(t *testing.T) {
	o := buildOracle(5, 3, 1, "ACGTACGTA", "ACGTACGTA")
	out, _ := runCorrection(t, o, ">r\nACGTACGTANACGTACGTA\n")
	// The N is elided; both flanking segments still appear.
	assert.Equal(t, ">r\nACGTACGTAACGTACGTA\n", out)
}

func TestSingleSubstitutionIsRepaired(t *testing.T) {
	// 24 bases with no repeated 6-mer; a single substitution at position
	// 10 (G->A) makes exactly one K=7 error region, which find_path should
	// bridge. (A periodic read would let the search meet early on a
	// shorter cycle through the same k-mers.)
	const clean = "ACGGTCATTCGCATGACCTAGTTC"
	mutated := clean[:10] + "A" + clean[11:]
	require.NotEqual(t, clean, mutated)

	o := buildOracle(7, 3, 2, clean, clean, clean, clean)
	out, stats := runCorrection(t, o, ">r\n"+mutated+"\n")

	assert.Equal(t, int64(1), stats.Errors)
	assert.Equal(t, int64(1), stats.Corrections)
	assert.Equal(t, ">r\n"+clean+"\n", out)
}

func TestIdempotenceSecondPassDoesNotIncreaseErrors(t *testing.T) {
	read := "ACGTACGTACGTACGTACGT"
	o := buildOracle(7, 3, 2, read, read, read, read)

	out1, stats1 := runCorrection(t, o, ">r\n"+read+"\n")

	o2 := buildOracle(7, 3, 2, read, read, read, read)
	_, stats2 := runCorrection(t, o2, out1)

	assert.LessOrEqual(t, stats2.Errors, stats1.Errors)
}
