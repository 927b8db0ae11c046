// Package recovery implements nonce recovery : given the
// edges of a found cycle, re-hash the full nonce space to map each cycle
// edge back to the nonce that generated it.
package recovery

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/opencuckoo/cuckaroo29/internal/graph"
	"github.com/opencuckoo/cuckaroo29/internal/siphash"
)

// Failure indicates fewer than graph.ProofSize nonces were found by the end
// of the rescan. This points at a correctness bug in the cycle finder or a
// hash-fold false positive that survived trimming; is treated as
// fatal to the job.
type Failure struct {
	Found int
}

func (f Failure) Error() string {
	return "recovery: found fewer than the required proof size during nonce rescan"
}

// Proof42 is the canonical representation of a found proof: the 42
// originating nonces, sorted ascending.
type Proof42 [graph.ProofSize]uint32

// Run performs a single linear pass over the nonce space, hashing each
// nonce and checking whether its normalized edge belongs to the target set,
// stopping once all graph.ProofSize nonces are found. The scan is
// partitioned across workers goroutines; the order nonces are discovered in
// is irrelevant since the result is sorted before return.
func Run(ctx context.Context, keys siphash.Keys, target [graph.ProofSize]graph.Edge, workers int) (Proof42, error) {
	if workers < 1 {
		workers = 1
	}

	want := make(map[graph.Edge]struct{}, len(target))
	for _, e := range target {
		want[normalize(e)] = struct{}{}
	}

	var mu sync.Mutex
	var found []uint32

	g, gctx := errgroup.WithContext(ctx)
	chunk := (graph.NumEdges + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > graph.NumEdges {
			end = graph.NumEdges
		}
		if start >= end {
			continue
		}

		g.Go(func() error {
			for n := start; n < end; n++ {
				if n%(1<<16) == 0 {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
				}

				e := graph.ComputeEdge(keys, graph.Nonce(n))
				if _, ok := want[normalize(e)]; !ok {
					continue
				}

				mu.Lock()
				found = append(found, uint32(n))
				done := len(found) >= len(target)
				mu.Unlock()

				if done {
					return errEarlyStop
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && err != errEarlyStop {
		return Proof42{}, err
	}

	if len(found) < len(target) {
		return Proof42{}, Failure{Found: len(found)}
	}

	sort.Slice(found, func(i, j int) bool { return found[i] < found[j] })

	var proof Proof42
	copy(proof[:], found[:len(target)])
	return proof, nil
}

// normalize reorders an edge's endpoints so the even one is first,
// matching the convention cycle edges are compared under regardless of the
// direction they were walked in during cycle finding.
func normalize(e graph.Edge) graph.Edge {
	if e.Node0().Even() {
		return e
	}
	return graph.PackEdge(e.Node1(), e.Node0())
}

// errEarlyStop is a sentinel used to unwind worker goroutines once enough
// nonces have been found; it is not propagated to callers.
var errEarlyStop = &earlyStopError{}

type earlyStopError struct{}

func (*earlyStopError) Error() string { return "recovery: early stop" }
