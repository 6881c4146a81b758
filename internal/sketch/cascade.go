package sketch

// Cascade is a stack of independent BitSketches implementing the
// "monotone count-to-saturation<=L" scheme: InsertIfMissing walks the
// levels and stops at the first one that reports the key as previously
// absent, inserting only there; Contains requires every level to report
// positive. This trades one extra level of indirection for a lower
// false-positive rate than a single sketch at the same total size.
type Cascade struct {
	levels []*BitSketch
}

// NewCascade builds a Cascade with one BitSketch per (size, hashes)
// pair, each seeded distinctly but deterministically from seed.
func NewCascade(sizes []int, hashesPerLevel []int, shardCount int, seed uint64) *Cascade {
	levels := make([]*BitSketch, len(sizes))
	for i := range sizes {
		// Distinct per-level seeds, still fully determined by the
		// single construction seed.
		levelSeed := seed ^ (uint64(i+1) * 0x9e3779b97f4a7c15)
		levels[i] = NewBitSketch(sizes[i], hashesPerLevel[i], shardCount, levelSeed)
	}
	return &Cascade{levels: levels}
}

// Contains reports whether every level reports key present.
func (c *Cascade) Contains(key uint64) bool {
	for _, lvl := range c.levels {
		if !lvl.Contains(key) {
			return false
		}
	}
	return true
}

// InsertIfMissing walks the levels and returns true as soon as one
// reports the key as previously absent, inserting it there and leaving
// subsequent levels untouched.
func (c *Cascade) InsertIfMissing(key uint64) bool {
	for _, lvl := range c.levels {
		if lvl.InsertIfMissing(key) {
			return true
		}
	}
	return false
}

// Insert is InsertIfMissing with the result discarded.
func (c *Cascade) Insert(key uint64) {
	c.InsertIfMissing(key)
}
