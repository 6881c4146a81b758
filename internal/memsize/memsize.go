// Package memsize implements the file-size-based heuristic for sizing
// the approximate counters, plus a system-memory ceiling so a large
// input on a small machine cannot request more sketch memory than the
// box actually has. The latter is a real input the rough "bytes_in/2"
// heuristic lacked; it is not the full capacity-calibration routine the
// specification explicitly defers as future work.
package memsize

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/mem"
	"k8s.io/klog/v2"
)

// availableFraction is the share of currently-available system memory
// the default heuristic will not exceed, regardless of input size.
const availableFraction = 0.5

// Default returns the default sketch size in bytes for an input of
// inputBytes: half the input size, capped at half of currently
// available system memory. explicitMB, when >0, always wins and is
// returned converted from MiB to bytes, with no cap (a user who passed
// --memory knows better than the heuristic).
func Default(inputBytes int64, explicitMB int64) int64 {
	if explicitMB > 0 {
		return explicitMB * 1024 * 1024
	}

	guess := inputBytes / 2

	if vm, err := mem.VirtualMemory(); err == nil {
		ceiling := int64(float64(vm.Available) * availableFraction)
		if guess > ceiling {
			klog.Warningf(
				"memsize: input-derived guess %s exceeds %s of available memory (%s); capping",
				humanize.Bytes(uint64(guess)), fmt.Sprintf("%.0f%%", availableFraction*100), humanize.Bytes(vm.Available),
			)
			guess = ceiling
		}
	}

	if guess <= 0 {
		guess = 1 << 20 // 1 MiB floor, enough for a handful of shards.
	}
	return guess
}
