package cpu

import (
	"context"
	"testing"

	"github.com/opencuckoo/cuckaroo29/internal/graph"
	"github.com/opencuckoo/cuckaroo29/pkg/compute/core"
)

func TestCapabilitiesReportsName(t *testing.T) {
	b := New()
	defer b.Close()

	caps := b.Capabilities()
	if caps.Name == "" {
		t.Fatalf("expected a non-empty capability name")
	}
	if caps.IsHardware {
		t.Fatalf("CPU reference backend must not report IsHardware")
	}
}

func TestAllocFreeRoundTrip(t *testing.T) {
	b := New()
	defer b.Close()

	h, err := b.Alloc(context.Background(), core.BufferEdges, 16)
	if err != nil {
		t.Fatalf("Alloc returned error: %v", err)
	}
	if edges := b.Edges(h); len(edges) != 16 {
		t.Fatalf("Edges() returned %d elements, want 16", len(edges))
	}

	if err := b.Free(context.Background(), h); err != nil {
		t.Fatalf("Free returned error: %v", err)
	}
	if edges := b.Edges(h); edges != nil {
		t.Fatalf("Edges() after Free = %v, want nil", edges)
	}
}

func TestLaunchUnknownKernel(t *testing.T) {
	b := New()
	defer b.Close()

	err := b.Launch(context.Background(), core.KernelID(99), core.KernelArgs{})
	if err == nil {
		t.Fatalf("expected an error for an unknown kernel id")
	}
}

// TestLaunchCountAndTrimUseSeparateCountHandles exercises the count/trim
// kernels with a real edge buffer and its paired occupancy-count buffer
// allocated as distinct handles. Node 2 appears as node0 on two edges
// (degree 2, survives); node 4 appears on only one (degree 1, trimmed).
func TestLaunchCountAndTrimUseSeparateCountHandles(t *testing.T) {
	ctx := context.Background()
	b := New()
	defer b.Close()

	const maxPerBucket = 4

	src, err := b.Alloc(ctx, core.BufferEdges, maxPerBucket)
	if err != nil {
		t.Fatalf("Alloc(src edges) error: %v", err)
	}
	srcCounts, err := b.Alloc(ctx, core.BufferCounts, 1)
	if err != nil {
		t.Fatalf("Alloc(src counts) error: %v", err)
	}
	counters, err := b.Alloc(ctx, core.BufferDegreeCounters, 256)
	if err != nil {
		t.Fatalf("Alloc(counters) error: %v", err)
	}

	edges := b.Edges(src)
	edges[0] = graph.PackEdge(2, 3)
	edges[1] = graph.PackEdge(2, 5)
	edges[2] = graph.PackEdge(4, 7)
	b.Counts(srcCounts)[0] = 3

	countArgs := core.KernelArgs{
		Src: src, SrcCounts: srcCounts, Counters: counters,
		MaxPerBucket: maxPerBucket, Parity: 0,
	}
	if err := b.Launch(ctx, core.KernelCount, countArgs); err != nil {
		t.Fatalf("Launch(KernelCount) error: %v", err)
	}

	dst, err := b.Alloc(ctx, core.BufferEdges, maxPerBucket)
	if err != nil {
		t.Fatalf("Alloc(dst edges) error: %v", err)
	}
	dstCounts, err := b.Alloc(ctx, core.BufferCounts, 1)
	if err != nil {
		t.Fatalf("Alloc(dst counts) error: %v", err)
	}

	trimArgs := core.KernelArgs{
		Src: src, SrcCounts: srcCounts, Dst: dst, DstCounts: dstCounts,
		Counters: counters, MaxPerBucket: maxPerBucket, Parity: 0,
	}
	if err := b.Launch(ctx, core.KernelTrim, trimArgs); err != nil {
		t.Fatalf("Launch(KernelTrim) error: %v", err)
	}

	gotCount := b.Counts(dstCounts)[0]
	if gotCount != 2 {
		t.Fatalf("dst bucket count = %d, want 2 survivors (node 2's two edges)", gotCount)
	}

	survivors := b.Edges(dst)[:gotCount]
	for _, e := range survivors {
		if e.Node0() != 2 {
			t.Fatalf("unexpected surviving edge %+v, want both endpoints at node0=2", e)
		}
	}
}
