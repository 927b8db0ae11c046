package remote

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/opencuckoo/cuckaroo29/internal/graph"
	"github.com/opencuckoo/cuckaroo29/pkg/compute/core"
)

// Backend dispatches generate/count/trim kernels to a worker-fleet host
// over gRPC, keeping buffer contents locally and shipping them on each
// Launch — there is no persistent device-resident allocation to mirror a
// real GPU's address space, since the wire itself is the transport.
type Backend struct {
	addr     string
	conn     *grpc.ClientConn
	buffers  map[core.BufferHandle]any
	next     core.BufferHandle
	maxPer   int
	counters int
}

// New dials a worker-fleet host at addr. The connection is established
// lazily by grpc's own retry/backoff machinery; New returning without error
// does not guarantee the host is currently reachable.
func New(addr string) (*Backend, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	)
	if err != nil {
		return nil, fmt.Errorf("remote: dial %s: %w", addr, err)
	}
	return &Backend{
		addr:    addr,
		conn:    conn,
		buffers: make(map[core.BufferHandle]any),
	}, nil
}

func (b *Backend) Name() string { return "remote" }

func (b *Backend) Capabilities() core.Capabilities {
	resp := new(CapabilitiesResponse)
	err := b.conn.Invoke(context.Background(), serviceName+"/Capabilities", &struct{}{}, resp)
	if err != nil {
		return core.Capabilities{Name: "remote", Reason: err.Error()}
	}
	return core.Capabilities{
		Name:                    resp.Name,
		IsHardware:              resp.IsHardware,
		EstimatedEdgesPerSecond: resp.EstimatedEdgesPerSecond,
		MaxBuckets:              resp.MaxBuckets,
		MaxPerBucket:            resp.MaxPerBucket,
	}
}

func (b *Backend) Alloc(ctx context.Context, kind core.BufferKind, elems int) (core.BufferHandle, error) {
	h := b.next
	b.next++
	switch kind {
	case core.BufferEdges:
		b.buffers[h] = make([]graph.Edge, elems)
	case core.BufferCounts, core.BufferDegreeCounters:
		b.buffers[h] = make([]uint32, elems)
	}
	return h, nil
}

func (b *Backend) Free(ctx context.Context, h core.BufferHandle) error {
	delete(b.buffers, h)
	return nil
}

func (b *Backend) CopyIn(ctx context.Context, h core.BufferHandle, data []byte) error {
	return nil
}

func (b *Backend) CopyOut(ctx context.Context, h core.BufferHandle, into []byte) error {
	return nil
}

func (b *Backend) edges(h core.BufferHandle) []graph.Edge {
	v, _ := b.buffers[h].([]graph.Edge)
	return v
}

func (b *Backend) counts(h core.BufferHandle) []uint32 {
	v, _ := b.buffers[h].([]uint32)
	return v
}

func (b *Backend) setEdges(h core.BufferHandle, edges []graph.Edge) {
	b.buffers[h] = edges
}

func (b *Backend) setCounts(h core.BufferHandle, counts []uint32) {
	b.buffers[h] = counts
}

func (b *Backend) Launch(ctx context.Context, kernel core.KernelID, args core.KernelArgs) error {
	switch kernel {
	case core.KernelGenerate:
		return b.launchGenerate(ctx, args)
	case core.KernelCount:
		return b.launchCount(ctx, args)
	case core.KernelTrim:
		return b.launchTrim(ctx, args)
	default:
		return &core.DeviceError{Backend: b.Name(), Op: "launch", Err: errUnknownKernel}
	}
}

func (b *Backend) launchGenerate(ctx context.Context, args core.KernelArgs) error {
	req := &GenerateRequest{
		K0: args.Keys.K0, K1: args.Keys.K1, K2: args.Keys.K2, K3: args.Keys.K3,
		Buckets:      args.Buckets,
		MaxPerBucket: args.MaxPerBucket,
	}
	resp := new(GenerateResponse)
	if err := b.conn.Invoke(ctx, serviceName+"/Generate", req, resp); err != nil {
		return &core.DeviceError{Backend: b.Name(), Op: "generate", Err: err}
	}
	b.setEdges(args.Dst, edgesFromWire(resp.Edges))
	b.setCounts(args.DstCounts, resp.Counts)
	return nil
}

func (b *Backend) launchCount(ctx context.Context, args core.KernelArgs) error {
	req := &CountRequest{
		Edges:        edgesToWire(b.edges(args.Src)),
		Counts:       b.counts(args.SrcCounts),
		MaxPerBucket: args.MaxPerBucket,
		Parity:       uint32(args.Parity),
	}
	resp := new(CountResponse)
	if err := b.conn.Invoke(ctx, serviceName+"/Count", req, resp); err != nil {
		return &core.DeviceError{Backend: b.Name(), Op: "count", Err: err}
	}
	return nil
}

func (b *Backend) launchTrim(ctx context.Context, args core.KernelArgs) error {
	req := &TrimRequest{
		Edges:        edgesToWire(b.edges(args.Src)),
		Counts:       b.counts(args.SrcCounts),
		MaxPerBucket: args.MaxPerBucket,
		Parity:       uint32(args.Parity),
	}
	resp := new(TrimResponse)
	if err := b.conn.Invoke(ctx, serviceName+"/Trim", req, resp); err != nil {
		return &core.DeviceError{Backend: b.Name(), Op: "trim", Err: err}
	}
	b.setEdges(args.Dst, edgesFromWire(resp.Edges))
	b.setCounts(args.DstCounts, resp.Counts)
	return nil
}

func (b *Backend) Wait(ctx context.Context) error {
	// Every Invoke above blocks for its RPC's duration; there is nothing
	// outstanding to wait for once Launch returns.
	return nil
}

func (b *Backend) Close() error {
	b.buffers = nil
	return b.conn.Close()
}

var errUnknownKernel = &unknownKernelError{}

type unknownKernelError struct{}

func (*unknownKernelError) Error() string { return "remote: unknown kernel id" }
