package remote

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"

	"github.com/opencuckoo/cuckaroo29/pkg/compute/core"
)

// startTestServer boots a worker server on a loopback port and returns its
// address plus a cleanup func.
func startTestServer(t *testing.T) string {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	srv := grpc.NewServer()
	RegisterWorkerServer(srv, NewServer(2, 1<<12))

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(func() {
		srv.Stop()
		lis.Close()
	})

	return lis.Addr().String()
}

func TestClientCapabilities(t *testing.T) {
	addr := startTestServer(t)

	b, err := New(addr)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Capabilities takes no context and the connection is dialed lazily by
	// its first RPC; ctx is not used.
	_ = ctx

	caps := b.Capabilities()
	if caps.Name == "" {
		t.Fatalf("expected a non-empty capability name, got %+v", caps)
	}
}

func TestClientGenerateRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full generate round trip in short mode")
	}

	addr := startTestServer(t)

	b, err := New(addr)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	dst, err := b.Alloc(ctx, core.BufferEdges, 0)
	if err != nil {
		t.Fatalf("Alloc returned error: %v", err)
	}
	dstCounts, err := b.Alloc(ctx, core.BufferCounts, 0)
	if err != nil {
		t.Fatalf("Alloc returned error: %v", err)
	}

	args := core.KernelArgs{Dst: dst, DstCounts: dstCounts, Buckets: 4, MaxPerBucket: 64}
	args.Keys.K0, args.Keys.K1, args.Keys.K2, args.Keys.K3 = 1, 2, 3, 4

	if err := b.Launch(ctx, core.KernelGenerate, args); err != nil {
		t.Fatalf("Launch(generate) returned error: %v", err)
	}

	if got := len(b.edges(dst)); got == 0 {
		t.Fatalf("expected generate to populate the destination edges buffer, got 0 edges")
	}
	if got := len(b.counts(dstCounts)); got != 4 {
		t.Fatalf("expected generate to populate the destination counts buffer with 4 buckets, got %d", got)
	}
}

func TestClientUnknownKernel(t *testing.T) {
	addr := startTestServer(t)

	b, err := New(addr)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer b.Close()

	err = b.Launch(context.Background(), core.KernelID(99), core.KernelArgs{})
	if err == nil {
		t.Fatalf("expected an error for an unknown kernel id")
	}
}
