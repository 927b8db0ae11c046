package generator

import (
	"context"
	"testing"

	"github.com/opencuckoo/cuckaroo29/internal/graph"
	"github.com/opencuckoo/cuckaroo29/internal/siphash"
)

func testKeys() siphash.Keys {
	return siphash.New(1, 2, 3, 4)
}

func TestBucketShift(t *testing.T) {
	if got := bucketShift(64); got != graph.NodeBits-6 {
		t.Fatalf("bucketShift(64) = %d, want %d", got, graph.NodeBits-6)
	}
	if got := bucketShift(32); got != graph.NodeBits-5 {
		t.Fatalf("bucketShift(32) = %d, want %d", got, graph.NodeBits-5)
	}
}

func TestRunScattersAllNonces(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full nonce-space scan in short mode")
	}
	buckets, maxPerBucket := 64, 1<<19
	buf := NewBuffers(buckets, maxPerBucket)

	stats, err := Run(context.Background(), testKeys(), buf, 4)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if stats.Generated+stats.Overflowed != graph.NumEdges {
		t.Fatalf("generated+overflowed = %d, want %d", stats.Generated+stats.Overflowed, uint64(graph.NumEdges))
	}

	var total uint64
	for _, c := range buf.Counts {
		total += uint64(c)
	}
	if total != stats.Generated {
		t.Fatalf("sum(counts) = %d, want generated = %d", total, stats.Generated)
	}
}

func TestRunRespectsBucketParity(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full nonce-space scan in short mode")
	}
	buckets, maxPerBucket := 32, 1<<19
	buf := NewBuffers(buckets, maxPerBucket)
	shift := bucketShift(buckets)

	if _, err := Run(context.Background(), testKeys(), buf, 2); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for b := 0; b < buckets; b++ {
		n := int(buf.Counts[b])
		for i := 0; i < n; i++ {
			e := buf.Edges[b*maxPerBucket+i]
			if got := uint32(e.Node0()) >> shift; int(got) != b {
				t.Fatalf("edge in bucket %d has node0 bucket %d", b, got)
			}
		}
	}
}

func TestRunCancellation(t *testing.T) {
	buf := NewBuffers(64, 1<<19)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, testKeys(), buf, 4)
	if err == nil {
		t.Fatalf("expected cancellation error, got nil")
	}
}

func TestResetClearsCounts(t *testing.T) {
	buf := NewBuffers(4, 16)
	buf.Counts[0] = 5
	buf.Reset()
	for _, c := range buf.Counts {
		if c != 0 {
			t.Fatalf("Reset did not clear counts: %v", buf.Counts)
		}
	}
}
