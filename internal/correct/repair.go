package correct

import (
	"github.com/rpcpool/kcorrect/internal/index"
	"github.com/rpcpool/kcorrect/internal/kmer"
)

// findPath is the bidirectional BFS bridging repair: searches the
// implicit solid-k-mer successor graph between lastSolid and current
// for a single bridging k-mer, within a budget of errorSize+1 total
// edges split across alternating forward/backward expansions.
func findPath(o *index.Oracle, lastSolid, current kmer.Packed, errorSize int) (bridge kmer.Packed, dForward, dBackward int, ok bool) {
	budget := errorSize + 1

	forward := map[uint64]kmer.Packed{lastSolid.Value: lastSolid}
	backward := map[uint64]kmer.Packed{current.Value: current}

	// Each step expands one side by one edge, so the forward side takes
	// ceil(budget/2) steps and the backward side floor(budget/2).
	forwardTurn := true
	for step := 0; step < budget; step++ {
		if forwardTurn {
			forward = expand(forward, func(v kmer.Packed) [4]kmer.Packed { return v.Successors() }, o)
			dForward++
		} else {
			backward = expand(backward, func(v kmer.Packed) [4]kmer.Packed { return v.Predecessors() }, o)
			dBackward++
		}
		forwardTurn = !forwardTurn

		bridge, n := intersect(forward, backward)
		if n == 1 {
			return bridge, dForward, dBackward, true
		}
		if n > 1 {
			return kmer.Packed{}, 0, 0, false
		}
		if len(forward) == 0 || len(backward) == 0 {
			return kmer.Packed{}, 0, 0, false
		}
	}
	return kmer.Packed{}, 0, 0, false
}

// expand replaces a frontier with the solid neighbors (successors or
// predecessors, per neighbors) of its current members.
func expand(frontier map[uint64]kmer.Packed, neighbors func(kmer.Packed) [4]kmer.Packed, o *index.Oracle) map[uint64]kmer.Packed {
	next := make(map[uint64]kmer.Packed)
	for _, v := range frontier {
		for _, n := range neighbors(v) {
			if o.Solid(n) {
				next[n.Value] = n
			}
		}
	}
	return next
}

// intersect reports the single common member of forward and backward,
// and how many such members exist (0, 1, or >1 — the caller treats
// ambiguity as "no repair").
func intersect(forward, backward map[uint64]kmer.Packed) (kmer.Packed, int) {
	var found kmer.Packed
	n := 0
	for k, v := range forward {
		if _, ok := backward[k]; ok {
			found = v
			n++
			if n > 1 {
				return kmer.Packed{}, n
			}
		}
	}
	return found, n
}

// reconstruct builds the corrected weak window (the span that the weak
// bases cover, starting one base after last_solid's first) once
// find_path reports a unique bridge: last_solid's bases 1..dForward-1,
// then the bridge's bases, then the dBackward-1 bases of current just
// before its last. dForward or
// dBackward can be 0 (the bridge landed exactly on last_solid or
// current itself, found from the other direction); both flanking
// segments degrade to empty in that case rather than an invalid slice.
func reconstruct(lastSolid, bridge, current kmer.Packed, dForward, dBackward int) []kmer.Base {
	k := lastSolid.Length
	out := make([]kmer.Base, 0, dForward+k+dBackward)
	out = append(out, safeSlice(lastSolid.Bases(), 1, dForward)...)
	out = append(out, bridge.Bases()...)
	out = append(out, safeSlice(current.Bases(), k-dBackward, k-1)...)
	return out
}

// safeSlice returns bases[start:end] clamped to a valid, possibly-empty
// range instead of panicking when start >= end or either bound falls
// outside [0, len(bases)].
func safeSlice(bases []kmer.Base, start, end int) []kmer.Base {
	if start < 0 {
		start = 0
	}
	if end > len(bases) {
		end = len(bases)
	}
	if start >= end {
		return nil
	}
	return bases[start:end]
}
