// Package degree implements the saturating 2-bit degree counter: for a
// chosen node side, tallies how many live edges touch each node, saturating
// at 2 so the trimmer can distinguish {0, 1, >=2}.
package degree

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/opencuckoo/cuckaroo29/internal/graph"
)

// Counters is the global hash-folded degree table: size words, each
// packing 16 saturating 2-bit fields. A node's field is found by folding
// its 30-bit value down to an index and a 4-bit shift.
type Counters struct {
	words []uint32
}

// NewCounters allocates a table of the given word count, which should be a
// power of two sized so the expected live-edge/word ratio stays under the
// a ~0.5 load factor.
func NewCounters(words int) *Counters {
	return &Counters{words: make([]uint32, words)}
}

// Reset zeroes every word touched by the previous round.
func (c *Counters) Reset() {
	for i := range c.words {
		c.words[i] = 0
	}
}

// index folds a node value into a word index and a bit shift within that
// word, following the global folding scheme: idx = (node ^ (node>>16)) >> 4
// masked to size, shift = (node & 0xF) * 2.
func (c *Counters) index(node graph.Node) (idx int, shift uint) {
	n := uint32(node)
	folded := (n ^ (n >> 16)) >> 4
	idx = int(folded) & (len(c.words) - 1)
	shift = uint(n&0xF) * 2
	return idx, shift
}

// field reads the current 2-bit saturating value at node's slot.
func (c *Counters) field(node graph.Node) uint32 {
	idx, shift := c.index(node)
	return (atomic.LoadUint32(&c.words[idx]) >> shift) & 0x3
}

// Get returns the saturated degree observed for node: 0, 1, or 2 (meaning
// "2 or more").
func (c *Counters) Get(node graph.Node) uint32 {
	return c.field(node)
}

// increment atomically bumps node's 2-bit field by one, unless it has
// already saturated at 2 or 3, using compare-and-swap rather than the
// source's plain atomic_add so an unrelated field sharing the word can
// never be corrupted by a carry the safer alternative.
func (c *Counters) increment(node graph.Node) {
	idx, shift := c.index(node)
	addr := &c.words[idx]
	mask := uint32(0x3) << shift

	for {
		old := atomic.LoadUint32(addr)
		field := (old >> shift) & 0x3
		if field >= 2 {
			return
		}
		updated := (old &^ mask) | ((field + 1) << shift)
		if atomic.CompareAndSwapUint32(addr, old, updated) {
			return
		}
	}
}

// Run scans every live edge in src (up to srcCounts[b] per bucket b),
// extracting the parity-selected endpoint and incrementing its degree
// field, c is zeroed first.
func Run(ctx context.Context, c *Counters, edges []graph.Edge, counts []uint32, maxPerBucket int, parity uint, workers int) error {
	if workers < 1 {
		workers = 1
	}
	c.Reset()

	g, gctx := errgroup.WithContext(ctx)
	buckets := len(counts)
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

				n := int(counts[b])
				base := b * maxPerBucket
				for i := 0; i < n; i++ {
					node := edges[base+i].Endpoint(parity)
					c.increment(node)
				}
			}
			return nil
		})
	}

	return g.Wait()
}
