// Package sizing derives per-bucket capacity, degree-counter size and worker
// count for a solver run from the host's available memory and CPU count,
// the way the CLI's status line reads live CPU/RAM figures from gopsutil.
// Bucket and round counts keep their defaults.
package sizing

import (
	"fmt"
	"runtime"

	psmem "github.com/shirou/gopsutil/v3/mem"

	"github.com/opencuckoo/cuckaroo29/internal/solver"
)

// bytesPerEdgeSlot accounts for one graph.Edge (8 bytes) plus its share of
// the bucket's uint32 slot counter and a generous allowance for a second,
// alternate buffer the trim loop swaps into.
const bytesPerEdgeSlot = 8*2 + 4

// bytesPerCounterWord is a degree.Counters word: one uint32 packing 16
// 2-bit fields.
const bytesPerCounterWord = 4

// Budget describes how much memory and parallelism a solver run is allowed
// to use.
type Budget struct {
	MaxMemoryBytes uint64
	Workers        int
}

// DetectBudget reads the host's available memory and CPU count, reserving a
// fraction of memory for the rest of the system rather than claiming it all.
func DetectBudget(reserveFraction float64) (Budget, error) {
	vm, err := psmem.VirtualMemory()
	if err != nil {
		return Budget{}, fmt.Errorf("sizing: read virtual memory: %w", err)
	}
	if reserveFraction < 0 || reserveFraction >= 1 {
		reserveFraction = 0.25
	}
	usable := float64(vm.Available) * (1 - reserveFraction)
	return Budget{
		MaxMemoryBytes: uint64(usable),
		Workers:        runtime.NumCPU(),
	}, nil
}

// Plan fits a solver.Config inside budget, holding solver.DefaultConfig's
// Buckets and Rounds fixed (the algorithm's correctness depends on the node
// space dividing evenly across buckets) and scaling MaxPerBucket and
// CounterWords down until the estimated footprint fits.
func Plan(budget Budget) solver.Config {
	cfg := solver.DefaultConfig()
	cfg.Workers = budget.Workers
	cfg.RecoveryWorkers = budget.Workers

	for {
		if footprint(cfg) <= budget.MaxMemoryBytes || cfg.MaxPerBucket <= 1<<10 {
			break
		}
		cfg.MaxPerBucket /= 2
		if cfg.CounterWords > 1<<14 {
			cfg.CounterWords /= 2
		}
	}
	return cfg
}

func footprint(cfg solver.Config) uint64 {
	edgeBytes := uint64(cfg.Buckets) * uint64(cfg.MaxPerBucket) * bytesPerEdgeSlot
	counterBytes := uint64(cfg.CounterWords) * bytesPerCounterWord
	return edgeBytes + counterBytes
}
