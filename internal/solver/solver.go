package solver

import (
	"context"
	"errors"

	"github.com/opencuckoo/cuckaroo29/internal/graph"
	"github.com/opencuckoo/cuckaroo29/internal/solver/controller"
	"github.com/opencuckoo/cuckaroo29/internal/solver/cycle"
	"github.com/opencuckoo/cuckaroo29/internal/solver/recovery"
)

// Proof42 is the canonical 42-nonce proof: the originating nonces, sorted
// ascending.
type Proof42 = recovery.Proof42

// Solver runs generate/trim/find/recover pipelines with one tuning Config
// for many jobs. Edge buffers are not kept between jobs: every Solve call
// allocates its own.
type Solver struct {
	cfg   Config
	stats *controller.Stats
}

// New builds a Solver with the given tuning. The returned value allocates
// no buffers itself; controller.Run allocates per-call buffers sized by cfg.
func New(cfg Config) *Solver {
	return &Solver{cfg: cfg, stats: &controller.Stats{}}
}

// Stats returns a point-in-time snapshot of the trim-loop statistics
// accumulated over every Solve call on this Solver (rounds run, survivor
// curve, overflow count), safe to read from another goroutine while Solve
// runs.
func (s *Solver) Stats() controller.StatsSnapshot {
	return s.stats.Snapshot()
}

// Solve runs the full pipeline for job: generate edges, trim for
// s.cfg.Rounds rounds, search the survivors for a 42-cycle, and recover the
// originating nonces. ctx is checked at round boundaries and before the
// (expensive) recovery rescan; cancelling it yields a Cancelled SolveError.
func (s *Solver) Solve(ctx context.Context, job SolverJob) (Proof42, error) {
	overflowBefore := s.stats.Snapshot().Overflowed
	result, err := controller.Run(ctx, job.Keys, s.stats, s.cfg.controllerConfig())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Proof42{}, &SolveError{Kind: KindCancelled, Err: err}
		}
		return Proof42{}, &SolveError{Kind: KindDeviceError, Err: err}
	}

	if s.cfg.FailOnOverflow {
		if snap := s.stats.Snapshot(); snap.Overflowed > overflowBefore {
			return Proof42{}, &SolveError{Kind: KindCapacityOverflow}
		}
	}

	survivors := consolidate(result)

	found, err := cycle.Find(survivors)
	if err != nil {
		var noCycle cycle.NoCycle
		if errors.As(err, &noCycle) {
			return Proof42{}, &SolveError{Kind: KindNoCycle, Err: err}
		}
		return Proof42{}, &SolveError{Kind: KindDeviceError, Err: err}
	}

	select {
	case <-ctx.Done():
		return Proof42{}, &SolveError{Kind: KindCancelled, Err: ctx.Err()}
	default:
	}

	recoveryWorkers := s.cfg.RecoveryWorkers
	if recoveryWorkers < 1 {
		recoveryWorkers = 1
	}
	proof, err := recovery.Run(ctx, job.Keys, found.Edges, recoveryWorkers)
	if err != nil {
		var failure recovery.Failure
		if errors.As(err, &failure) {
			return Proof42{}, &SolveError{Kind: KindRecoveryFailure, Err: err}
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Proof42{}, &SolveError{Kind: KindCancelled, Err: err}
		}
		return Proof42{}, &SolveError{Kind: KindDeviceError, Err: err}
	}

	return proof, nil
}

// consolidate flattens the controller's bucketed result into a single dense
// edge slice for the cycle finder, which does not care about bucket
// boundaries.
func consolidate(r controller.Result) []graph.Edge {
	edges := make([]graph.Edge, 0, len(r.Counts)*r.MaxPerBucket/4)
	for b, n := range r.Counts {
		base := b * r.MaxPerBucket
		edges = append(edges, r.Edges[base:base+int(n)]...)
	}
	return edges
}
