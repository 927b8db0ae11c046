// Package controller implements the trim loop: it alternates
// node sides across rounds, double-buffers the edge set, and tracks
// survivor counts, cancelling cleanly at round boundaries.
package controller

import (
	"context"
	"log"
	"sync"

	"github.com/opencuckoo/cuckaroo29/internal/graph"
	"github.com/opencuckoo/cuckaroo29/internal/siphash"
	"github.com/opencuckoo/cuckaroo29/internal/solver/degree"
	"github.com/opencuckoo/cuckaroo29/internal/solver/generator"
	"github.com/opencuckoo/cuckaroo29/internal/solver/trim"
)

var logger = log.New(log.Writer(), "[controller] ", log.LstdFlags)

// Config tunes a trim run: bucket layout, round count, and worker
// parallelism for each stage.
type Config struct {
	Buckets      int
	MaxPerBucket int
	Rounds       int
	CounterWords int
	Workers      int
}

// Stats holds cumulative trim-loop statistics with internal synchronization,
// mirroring the generator's occupancy-tracking idiom so callers can poll
// progress from a separate goroutine (the monitor TUI) while a job runs.
type Stats struct {
	mu            sync.RWMutex
	roundsRun     int
	survivorCurve []uint64
	overflowed    uint64
}

// StatsSnapshot is a copy of Stats without its mutex, safe to hand to
// callers outside the controller.
type StatsSnapshot struct {
	RoundsRun     int
	SurvivorCurve []uint64
	Overflowed    uint64
}

// Snapshot returns a copy of the current stats.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	curve := make([]uint64, len(s.survivorCurve))
	copy(curve, s.survivorCurve)
	return StatsSnapshot{
		RoundsRun:     s.roundsRun,
		SurvivorCurve: curve,
		Overflowed:    s.overflowed,
	}
}

func (s *Stats) recordRound(survivors uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roundsRun++
	s.survivorCurve = append(s.survivorCurve, survivors)
}

func (s *Stats) recordOverflow(n uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overflowed += n
}

// Result is the consolidated, trimmed edge set remaining after the loop
// completes, ready for the cycle finder.
type Result struct {
	Edges        []graph.Edge
	Counts       []uint32
	MaxPerBucket int
}

// buffers is the minimal shape both generator.Buffers and trim.Buffers share,
// letting the round loop swap between them without caring which package
// allocated a given instance.
type buffers struct {
	edges        []graph.Edge
	counts       []uint32
	maxPerBucket int
}

// Run executes the full generate-then-trim pipeline: one generation pass
// seeds buffer A, then cfg.Rounds rounds alternate counting and trimming
// across node-side parity, swapping buffers each round. It returns the
// final survivor set, or ctx.Err() if cancelled at a round boundary.
func Run(ctx context.Context, keys siphash.Keys, stats *Stats, cfg Config) (Result, error) {
	genBuf := generator.NewBuffers(cfg.Buckets, cfg.MaxPerBucket)
	genStats, err := generator.Run(ctx, keys, genBuf, cfg.Workers)
	if err != nil {
		return Result{}, err
	}
	if genStats.Overflowed > 0 {
		stats.recordOverflow(genStats.Overflowed)
	}

	src := buffers{edges: genBuf.Edges, counts: genBuf.Counts, maxPerBucket: cfg.MaxPerBucket}
	dstAlloc := trim.NewBuffers(cfg.Buckets, cfg.MaxPerBucket)
	dst := buffers{edges: dstAlloc.Edges, counts: dstAlloc.Counts, maxPerBucket: cfg.MaxPerBucket}

	counters := degree.NewCounters(cfg.CounterWords)

	for r := 0; r < cfg.Rounds; r++ {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		parity := uint(r & 1)

		if err := degree.Run(ctx, counters, src.edges, src.counts, src.maxPerBucket, parity, cfg.Workers); err != nil {
			return Result{}, err
		}

		dstWrapper := &trim.Buffers{Edges: dst.edges, Counts: dst.counts, Buckets: cfg.Buckets, MaxPerBucket: dst.maxPerBucket}
		if err := trim.Run(ctx, counters, src.edges, src.counts, src.maxPerBucket, parity, dstWrapper, cfg.Workers); err != nil {
			return Result{}, err
		}

		var survivors uint64
		for _, c := range dstWrapper.Counts {
			survivors += uint64(c)
		}
		stats.recordRound(survivors)
		logger.Printf("round %d (parity %d): %d survivors", r, parity, survivors)

		src, dst = dst, src
	}

	return Result{Edges: src.edges, Counts: src.counts, MaxPerBucket: src.maxPerBucket}, nil
}
