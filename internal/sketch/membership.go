package sketch

import "sync"

// bitShard is one independently latched partition of a pure-membership
// bit array.
type bitShard struct {
	mu   sync.RWMutex
	bits []uint64 // 64 membership bits per word
}

func (b *bitShard) get(i int) bool {
	return b.bits[i/64]&(uint64(1)<<uint(i%64)) != 0
}

func (b *bitShard) set(i int) {
	b.bits[i/64] |= uint64(1) << uint(i%64)
}

// BitSketch is the pure-membership (bit, not counting) variant of
// Sketch, used both standalone and as one level of a Cascade.
type BitSketch struct {
	shardShift uint
	shardSize  int // in bits
	hashes     int
	seed       uint64
	shards     []*bitShard
}

// NewBitSketch allocates a BitSketch sized to hold approximately `size`
// logical bits across shardCount shards.
func NewBitSketch(size, hashesPerKey, shardCount int, seed uint64) *BitSketch {
	shardCount = nextPow2(shardCount)
	shardShift := trailingZeros(shardCount)
	perShard := size / shardCount
	shardSize := ceilToBlock(perShard, membershipBlockBits)

	shards := make([]*bitShard, shardCount)
	for i := range shards {
		shards[i] = &bitShard{bits: make([]uint64, shardSize/64)}
	}

	return &BitSketch{
		shardShift: shardShift,
		shardSize:  shardSize,
		hashes:     hashesPerKey,
		seed:       seed,
		shards:     shards,
	}
}

func (s *BitSketch) locate(key uint64) (*bitShard, []int) {
	h0, h1 := hashPair(s.seed, key)
	shard := s.shards[shardIndex(h0, s.shardShift)]
	idx := probeIndices(h0, h1, s.shardSize, membershipBlockBits, s.hashes)
	return shard, idx
}

// Contains returns true only if all H probe bits for key are set.
func (s *BitSketch) Contains(key uint64) bool {
	shard, idx := s.locate(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	for _, i := range idx {
		if !shard.get(i) {
			return false
		}
	}
	return true
}

// Insert sets all H probe bits for key.
func (s *BitSketch) Insert(key uint64) {
	shard, idx := s.locate(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	for _, i := range idx {
		shard.set(i)
	}
}

// InsertIfMissing sets all H probe bits for key and reports whether any
// of them was previously unset.
func (s *BitSketch) InsertIfMissing(key uint64) bool {
	shard, idx := s.locate(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	missing := false
	for _, i := range idx {
		if !shard.get(i) {
			missing = true
			shard.set(i)
		}
	}
	return missing
}
