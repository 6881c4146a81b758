// Package sketch implements the sharded approximate counting and
// membership structures used as the two solidity oracles (minimizer
// counter, k-mer counter): a process-wide, interior-mutable structure
// partitioned into N independently latched shards, each addressed by a
// double-hash probing scheme confined to a single cache-line-sized
// block.
package sketch

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// countingBlockCells and membershipBlockBits are the block-alignment
// granularity in cells (counting sketch) or bits (membership sketch):
// all H probes for one key share the same block, guaranteeing one cache
// line per query.
const (
	countingBlockCells = 512
	membershipBlockBits = 4096
)

// hashPair returns two independent seeded 64-bit hashes of a uint64
// key, the (h0, h1) pair used for shard selection and in-shard probing.
func hashPair(seed uint64, key uint64) (h0, h1 uint64) {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], seed)
	binary.LittleEndian.PutUint64(buf[8:16], key)
	h0 = xxhash.Sum64(buf[:])

	binary.LittleEndian.PutUint64(buf[0:8], seed+1)
	binary.LittleEndian.PutUint64(buf[8:16], key)
	h1 = xxhash.Sum64(buf[:])
	return h0, h1
}

// probeIndices computes the H positions within a single shard's address
// space for a (h0,h1) pair, all confined to one block of the given
// size: p0 = u, pj = (p0 &^ (block-1)) | ((p0 + j*v) & (block-1)).
func probeIndices(h0, h1 uint64, shardSize, block, hashes int) []int {
	u := int(h0 % uint64(shardSize))
	v := int(h1)
	blockMask := block - 1
	blockAddr := u &^ blockMask

	out := make([]int, hashes)
	out[0] = u
	local := u
	for j := 1; j < hashes; j++ {
		local = (local + v) & blockMask
		out[j] = blockAddr | local
	}
	return out
}

// shardIndex returns the shard owning key, using the top bits of h0.
func shardIndex(h0 uint64, shardShift uint) int {
	if shardShift == 0 {
		return 0
	}
	return int(h0 >> (64 - shardShift))
}

// nextPow2 rounds n up to the next power of two (n itself if already
// one); n<=0 returns 1.
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// trailingZeros returns log2(n) for a power-of-two n.
func trailingZeros(n int) uint {
	var z uint
	for n > 1 {
		n >>= 1
		z++
	}
	return z
}

// ceilToBlock rounds n up to the next multiple of block.
func ceilToBlock(n, block int) int {
	if n <= 0 {
		return block
	}
	return (n + block - 1) / block * block
}
