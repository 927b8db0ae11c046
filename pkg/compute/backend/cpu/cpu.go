// Package cpu implements the CPU reference compute backend: it executes
// the generate/count/trim kernels directly via the internal solver
// packages, with no device indirection. The remote worker runs these same
// packages; the CUDA backend's mock kernels do not reproduce this output.
package cpu

import (
	"context"
	"runtime"

	"github.com/opencuckoo/cuckaroo29/internal/graph"
	"github.com/opencuckoo/cuckaroo29/internal/siphash"
	"github.com/opencuckoo/cuckaroo29/internal/solver/degree"
	"github.com/opencuckoo/cuckaroo29/internal/solver/generator"
	"github.com/opencuckoo/cuckaroo29/internal/solver/trim"
	"github.com/opencuckoo/cuckaroo29/pkg/compute/core"
)

// Backend is the CPU reference implementation of core.Backend. It keeps
// allocations in a plain map keyed by handle, since there is no separate
// device address space to manage.
type Backend struct {
	buffers map[core.BufferHandle]any
	next    core.BufferHandle
	workers int
}

// New builds a CPU backend sized for runtime.NumCPU() worker goroutines.
func New() *Backend {
	return &Backend{
		buffers: make(map[core.BufferHandle]any),
		workers: runtime.NumCPU(),
	}
}

func (b *Backend) Name() string { return "cpu" }

func (b *Backend) Capabilities() core.Capabilities {
	return core.Capabilities{
		Name:                    "CPU reference",
		IsHardware:              false,
		EstimatedEdgesPerSecond: 50_000_000,
		MaxBuckets:              256,
		MaxPerBucket:            1 << 20,
	}
}

func (b *Backend) Alloc(ctx context.Context, kind core.BufferKind, elems int) (core.BufferHandle, error) {
	h := b.next
	b.next++

	switch kind {
	case core.BufferEdges:
		b.buffers[h] = make([]graph.Edge, elems)
	case core.BufferCounts:
		b.buffers[h] = make([]uint32, elems)
	case core.BufferDegreeCounters:
		b.buffers[h] = degree.NewCounters(elems)
	}
	return h, nil
}

func (b *Backend) Free(ctx context.Context, h core.BufferHandle) error {
	delete(b.buffers, h)
	return nil
}

func (b *Backend) CopyIn(ctx context.Context, h core.BufferHandle, data []byte) error {
	// The CPU backend's buffers are already host-resident; callers read and
	// write them directly via Edges(), Counts() and Counters() rather than
	// marshalling bytes.
	return nil
}

func (b *Backend) CopyOut(ctx context.Context, h core.BufferHandle, into []byte) error {
	return nil
}

// Edges returns the live []graph.Edge backing an edge-kind handle, for
// callers that need direct access rather than going through the
// byte-oriented CopyIn/CopyOut pair.
func (b *Backend) Edges(h core.BufferHandle) []graph.Edge {
	v, _ := b.buffers[h].([]graph.Edge)
	return v
}

// Counts returns the live []uint32 backing a counts-kind handle.
func (b *Backend) Counts(h core.BufferHandle) []uint32 {
	v, _ := b.buffers[h].([]uint32)
	return v
}

// Counters returns the live *degree.Counters backing a degree-counters handle.
func (b *Backend) Counters(h core.BufferHandle) *degree.Counters {
	v, _ := b.buffers[h].(*degree.Counters)
	return v
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
	keys := siphash.New(args.Keys.K0, args.Keys.K1, args.Keys.K2, args.Keys.K3)
	buf := &generator.Buffers{
		Edges:        b.Edges(args.Dst),
		Counts:       b.Counts(args.DstCounts),
		Buckets:      args.Buckets,
		MaxPerBucket: args.MaxPerBucket,
	}
	_, err := generator.Run(ctx, keys, buf, b.workers)
	if err != nil {
		return &core.DeviceError{Backend: b.Name(), Op: "generate", Err: err}
	}
	return nil
}

func (b *Backend) launchCount(ctx context.Context, args core.KernelArgs) error {
	counters := b.Counters(args.Counters)
	err := degree.Run(ctx, counters, b.Edges(args.Src), b.Counts(args.SrcCounts), args.MaxPerBucket, args.Parity, b.workers)
	if err != nil {
		return &core.DeviceError{Backend: b.Name(), Op: "count", Err: err}
	}
	return nil
}

func (b *Backend) launchTrim(ctx context.Context, args core.KernelArgs) error {
	counters := b.Counters(args.Counters)
	dst := &trim.Buffers{
		Edges:        b.Edges(args.Dst),
		Counts:       b.Counts(args.DstCounts),
		Buckets:      args.Buckets,
		MaxPerBucket: args.MaxPerBucket,
	}
	err := trim.Run(ctx, counters, b.Edges(args.Src), b.Counts(args.SrcCounts), args.MaxPerBucket, args.Parity, dst, b.workers)
	if err != nil {
		return &core.DeviceError{Backend: b.Name(), Op: "trim", Err: err}
	}
	return nil
}

func (b *Backend) Wait(ctx context.Context) error {
	// Every Launch above runs synchronously to completion; there is no
	// outstanding work to wait for.
	return nil
}

func (b *Backend) Close() error {
	b.buffers = nil
	return nil
}

var errUnknownKernel = &unknownKernelError{}

type unknownKernelError struct{}

func (*unknownKernelError) Error() string { return "cpu: unknown kernel id" }
