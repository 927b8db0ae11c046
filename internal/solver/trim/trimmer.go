// Package trim implements the trimming stage: copying
// through only those edges whose round-side endpoint has an observed
// degree of at least two.
package trim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/opencuckoo/cuckaroo29/internal/graph"
	"github.com/opencuckoo/cuckaroo29/internal/solver/degree"
)

// Buffers is a destination edge buffer and its per-bucket occupancy
// counters, shaped identically to generator.Buffers so the two can be
// swapped by the trim-loop controller.
type Buffers struct {
	Edges        []graph.Edge
	Counts       []uint32
	Buckets      int
	MaxPerBucket int
}

// NewBuffers allocates a destination Buffers sized for the given layout.
func NewBuffers(buckets, maxPerBucket int) *Buffers {
	return &Buffers{
		Edges:        make([]graph.Edge, buckets*maxPerBucket),
		Counts:       make([]uint32, buckets),
		Buckets:      buckets,
		MaxPerBucket: maxPerBucket,
	}
}

// Reset zeroes the destination's occupancy counters ahead of a round.
func (b *Buffers) Reset() {
	for i := range b.Counts {
		b.Counts[i] = 0
	}
}

// Run copies every edge from srcEdges (up to srcCounts[b] per bucket b)
// whose parity-selected endpoint has degree >= 2 under c, into the
// identically-indexed bucket of dst. One goroutine owns each bucket
// end-to-end, so no atomic is needed on the destination counters — the
// source bucket and destination bucket are always the same bucket, per
// the bucket being copied in place.
func Run(ctx context.Context, c *degree.Counters, srcEdges []graph.Edge, srcCounts []uint32, maxPerBucket int, parity uint, dst *Buffers, workers int) error {
	if workers < 1 {
		workers = 1
	}
	dst.Reset()

	g, gctx := errgroup.WithContext(ctx)
	buckets := len(srcCounts)
	chunk := (buckets + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > buckets {
			end = buckets
		}
		if start >= end {
			continue
		}

		g.Go(func() error {
			for b := start; b < end; b++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				n := int(srcCounts[b])
				srcBase := b * maxPerBucket
				dstBase := b * dst.MaxPerBucket
				kept := 0
				for i := 0; i < n; i++ {
					e := srcEdges[srcBase+i]
					if c.Get(e.Endpoint(parity)) < 2 {
						continue
					}
					if kept >= dst.MaxPerBucket {
						break
					}
					dst.Edges[dstBase+kept] = e
					kept++
				}
				dst.Counts[b] = uint32(kept)
			}
			return nil
		})
	}

	return g.Wait()
}
