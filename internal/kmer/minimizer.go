package kmer

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// minimizerEntry is one slot of the monotone deque: an m-mer paired with
// the window slot it was inserted at.
type minimizerEntry struct {
	mmer Packed
	hash uint64
	slot int
}

// MinimizerQueue is a monotone deque over a sliding window of width W,
// holding (m-mer, slot) pairs whose hashes are strictly increasing from
// front to back; the front is always the argmin-by-hash of the last
// (up to) W inserted m-mers.
type MinimizerQueue struct {
	w       int
	seed    uint64
	slot    int
	entries []minimizerEntry
}

// NewMinimizerQueue returns an empty queue over a window of width w,
// using seed to perturb the hash ordering (fixed at construction).
func NewMinimizerQueue(w int, seed uint64) *MinimizerQueue {
	return &MinimizerQueue{w: w, seed: seed}
}

// Hash computes the seeded 64-bit ordering key for an m-mer.
func (q *MinimizerQueue) Hash(m Packed) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], q.seed)
	binary.LittleEndian.PutUint64(buf[8:16], m.Value)
	return xxhash.Sum64(buf[:])
}

// Insert pushes m-mer u into the window, aging out the entry whose slot
// equals the current insertion slot and popping back entries with a
// hash greater than or equal to u's before appending.
func (q *MinimizerQueue) Insert(u Packed) {
	if len(q.entries) > 0 && q.entries[0].slot == q.slot {
		q.entries = q.entries[1:]
	}
	h := q.Hash(u)
	for len(q.entries) > 0 && q.entries[len(q.entries)-1].hash >= h {
		q.entries = q.entries[:len(q.entries)-1]
	}
	q.entries = append(q.entries, minimizerEntry{mmer: u, hash: h, slot: q.slot})
	q.slot = (q.slot + 1) % q.w
}

// GetMin returns the front's m-mer, the argmin-by-hash of the last ≤W
// inserted m-mers. ok is false when the queue is empty.
func (q *MinimizerQueue) GetMin() (Packed, bool) {
	if len(q.entries) == 0 {
		return Packed{}, false
	}
	return q.entries[0].mmer, true
}

// Len reports the number of entries currently held (at most W).
func (q *MinimizerQueue) Len() int {
	return len(q.entries)
}
