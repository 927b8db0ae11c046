// Package generator implements the edge-generation stage:
// hashing every nonce in the graph's nonce space into a bucketed edge
// buffer with bounded per-bucket capacity.
package generator

import (
	"context"
	"log"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/opencuckoo/cuckaroo29/internal/graph"
	"github.com/opencuckoo/cuckaroo29/internal/siphash"
)

var logger = log.New(log.Writer(), "[generator] ", log.LstdFlags)

// Buffers holds the destination edge buffer and its per-bucket occupancy
// counters. Edges is sized buckets*maxPerBucket; Counts has one entry per
// bucket. Both are owned by the caller and reused across jobs.
type Buffers struct {
	Edges        []graph.Edge
	Counts       []uint32
	Buckets      int
	MaxPerBucket int
}

// NewBuffers allocates a Buffers value sized for the given bucket layout.
func NewBuffers(buckets, maxPerBucket int) *Buffers {
	return &Buffers{
		Edges:        make([]graph.Edge, buckets*maxPerBucket),
		Counts:       make([]uint32, buckets),
		Buckets:      buckets,
		MaxPerBucket: maxPerBucket,
	}
}

// Reset zeroes the occupancy counters so Buffers can be reused for the next
// generation pass. The edge slots themselves need not be cleared; overwritten
// slots are never read past their bucket's new count.
func (b *Buffers) Reset() {
	for i := range b.Counts {
		b.Counts[i] = 0
	}
}

// Stats reports the outcome of a generation pass. Overflowed counts edges
// that hashed into a bucket that was already at capacity and were dropped.
type Stats struct {
	Generated  uint64
	Overflowed uint64
}

// bucketShift is the number of high bits of node0 identifying its bucket,
// derived from the bucket count (which must be a power of two).
func bucketShift(buckets int) uint {
	shift := graph.NodeBits
	b := buckets
	for b > 1 {
		shift--
		b >>= 1
	}
	return uint(shift)
}

// Run hashes every nonce in [0, graph.NumEdges) under keys and scatters the
// resulting edges into buf's buckets, using workers goroutines partitioned
// by contiguous nonce ranges. It returns once all nonces have been
// processed or ctx is cancelled.
func Run(ctx context.Context, keys siphash.Keys, buf *Buffers, workers int) (Stats, error) {
	if workers < 1 {
		workers = 1
	}
	buf.Reset()

	shift := bucketShift(buf.Buckets)
	atomicCounts := make([]uint32, buf.Buckets)

	var generated, overflowed uint64

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
			var localGenerated, localOverflowed uint64
			for n := start; n < end; n++ {
				if n%(1<<16) == 0 {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
				}

				e := graph.ComputeEdge(keys, graph.Nonce(n))
				bucket := int(uint32(e.Node0()) >> shift)

				slot := atomic.AddUint32(&atomicCounts[bucket], 1) - 1
				if int(slot) >= buf.MaxPerBucket {
					localOverflowed++
					continue
				}
				buf.Edges[bucket*buf.MaxPerBucket+int(slot)] = e
				localGenerated++
			}
			atomic.AddUint64(&generated, localGenerated)
			atomic.AddUint64(&overflowed, localOverflowed)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	for i, c := range atomicCounts {
		if int(c) > buf.MaxPerBucket {
			c = uint32(buf.MaxPerBucket)
		}
		buf.Counts[i] = c
	}

	stats := Stats{Generated: generated, Overflowed: overflowed}
	if stats.Overflowed > 0 {
		logger.Printf("generation overflow: %d edges dropped across %d buckets", stats.Overflowed, buf.Buckets)
	}
	return stats, nil
}
