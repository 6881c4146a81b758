package sketch

import "sync"

// countShard is one independently latched partition of saturating u8
// cells. Exported operations take the shard's RWMutex internally; the
// struct itself never changes shape after construction.
type countShard struct {
	mu    sync.RWMutex
	cells []uint8
}

// Sketch is a sharded, blocked counting approximate-membership
// structure with saturating 8-bit cells. It is safe for concurrent use
// by many workers: reads take a shard read-lock, writes a shard write
// lock, and different keys almost always land in different shards.
type Sketch struct {
	shardShift uint
	shardSize  int
	hashes     int
	seed       uint64
	shards     []*countShard
}

// New allocates a Sketch sized to hold approximately `size` logical
// cells across shardCount shards (rounded up to a power of two), using
// hashes probes per key and seed to derive the two independent hash
// builders.
func New(size, hashesPerKey, shardCount int, seed uint64) *Sketch {
	shardCount = nextPow2(shardCount)
	shardShift := trailingZeros(shardCount)
	perShard := size / shardCount
	shardSize := ceilToBlock(perShard, countingBlockCells)

	shards := make([]*countShard, shardCount)
	for i := range shards {
		shards[i] = &countShard{cells: make([]uint8, shardSize)}
	}

	return &Sketch{
		shardShift: shardShift,
		shardSize:  shardSize,
		hashes:     hashesPerKey,
		seed:       seed,
		shards:     shards,
	}
}

// locate resolves the shard and in-shard probe positions for key.
func (s *Sketch) locate(key uint64) (*countShard, []int) {
	h0, h1 := hashPair(s.seed, key)
	shard := s.shards[shardIndex(h0, s.shardShift)]
	idx := probeIndices(h0, h1, s.shardSize, countingBlockCells, s.hashes)
	return shard, idx
}

// Count returns the minimum over the H cells for key: a one-sided
// approximation (true count <= reported count <= 255).
func (s *Sketch) Count(key uint64) uint8 {
	shard, idx := s.locate(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	return minCell(shard.cells, idx)
}

// Add saturating-increments each of the H cells for key.
func (s *Sketch) Add(key uint64) {
	shard, idx := s.locate(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	for _, i := range idx {
		incrSaturating(&shard.cells[i])
	}
}

// AddAndCount increments then returns the post-increment minimum,
// taking the shard lock only once.
func (s *Sketch) AddAndCount(key uint64) uint8 {
	shard, idx := s.locate(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	for _, i := range idx {
		incrSaturating(&shard.cells[i])
	}
	return minCell(shard.cells, idx)
}

func minCell(cells []uint8, idx []int) uint8 {
	min := cells[idx[0]]
	for _, i := range idx[1:] {
		if cells[i] < min {
			min = cells[i]
		}
	}
	return min
}

func incrSaturating(cell *uint8) {
	if *cell < 255 {
		*cell++
	}
}
