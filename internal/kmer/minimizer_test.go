package kmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mmer(t *testing.T, s string) Packed {
	t.Helper()
	p, ok := FromNucs([]byte(s), len(s))
	require.True(t, ok)
	return p
}

// TestMinimizerExpiry mirrors scenario 6: feeding "AAATAGT" with K=7,M=3
// (W=5) and then a further m-mer must report a minimum different from
// the now-expired front, once that front's slot has cycled back around.
func TestMinimizerExpiry(t *testing.T) {
	const k, m = 7, 3
	w := Window(k, m)
	q := NewMinimizerQueue(w, 101010)

	mers := []string{"AAA", "AAT", "ATA", "TAG", "AGT"}
	for _, s := range mers {
		q.Insert(mmer(t, s))
	}
	firstMin, ok := q.GetMin()
	require.True(t, ok)

	// One more insertion ages out whichever entry is at the current
	// slot; if that was the front, the minimum must change.
	q.Insert(mmer(t, "AAT"))
	secondMin, ok := q.GetMin()
	require.True(t, ok)

	if firstMin == mmer(t, "AAA") {
		assert.NotEqual(t, firstMin, secondMin)
	}
}

// TestMinimizerQueueMatchesBruteForce checks the queue against a naive
// O(N*W) reference over a longer stream of m-mers.
func TestMinimizerQueueMatchesBruteForce(t *testing.T) {
	const w = 4
	q := NewMinimizerQueue(w, 42)

	stream := []string{"AAA", "CCC", "GGG", "TTT", "ACG", "TGA", "CAT", "GTA", "AAC", "CCA"}
	packed := make([]Packed, len(stream))
	for i, s := range stream {
		packed[i] = mmer(t, s)
	}

	for i, p := range packed {
		q.Insert(p)

		lo := i - w + 1
		if lo < 0 {
			lo = 0
		}
		window := packed[lo : i+1]

		var best Packed
		var bestHash uint64
		for j, cand := range window {
			h := q.Hash(cand)
			if j == 0 || h <= bestHash {
				best, bestHash = cand, h
			}
		}

		got, ok := q.GetMin()
		require.True(t, ok)
		assert.Equal(t, best, got, "mismatch at step %d", i)
	}
}
