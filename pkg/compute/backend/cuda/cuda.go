// Package cuda implements a CUDA-dialect compute backend via a cgo bridge.
// Where no real CUDA toolchain is linked, the bridge falls back to mock
// kernels that stand in for generate/count/trim on the host, so the
// backend's wiring is exercised even without GPU hardware present. The
// generate mock uses a cheap mixer instead of SipHash-2-4 and none of the
// mocks bucket their output, so their edges differ from the CPU backend's.
package cuda

import (
	"context"
	"unsafe"

	"github.com/opencuckoo/cuckaroo29/pkg/compute/core"
)

// Backend adapts the cgo bridge to core.Backend.
type Backend struct {
	device  int
	br      *bridge
	buffers map[core.BufferHandle]any
	next    core.BufferHandle
}

// New builds a CUDA-dialect backend bound to the given device index.
func New(device int) *Backend {
	return &Backend{
		device:  device,
		br:      newBridge(device),
		buffers: make(map[core.BufferHandle]any),
	}
}

func (b *Backend) Name() string { return "cuda" }

func (b *Backend) Capabilities() core.Capabilities {
	if !b.br.initialized {
		return core.Capabilities{Name: "CUDA", Reason: "no CUDA device available"}
	}
	props := b.br.properties(b.device)
	return core.Capabilities{
		Name:                    "CUDA (" + props.Name + ")",
		IsHardware:              true,
		EstimatedEdgesPerSecond: 500_000_000,
		MaxBuckets:              256,
		MaxPerBucket:            1 << 20,
	}
}

func (b *Backend) Alloc(ctx context.Context, kind core.BufferKind, elems int) (core.BufferHandle, error) {
	h := b.next
	b.next++
	switch kind {
	case core.BufferEdges:
		b.buffers[h] = make([]uint64, elems)
	case core.BufferCounts:
		b.buffers[h] = make([]uint32, elems)
	case core.BufferDegreeCounters:
		b.buffers[h] = make([]uint32, elems)
	}
	return h, nil
}

func (b *Backend) Free(ctx context.Context, h core.BufferHandle) error {
	delete(b.buffers, h)
	return nil
}

func (b *Backend) CopyIn(ctx context.Context, h core.BufferHandle, data []byte) error {
	dst, ok := b.buffers[h].([]uint64)
	if !ok || len(data) == 0 {
		return nil
	}
	n := len(data) / 8
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = *(*uint64)(unsafe.Pointer(&data[i*8]))
	}
	return nil
}

func (b *Backend) CopyOut(ctx context.Context, h core.BufferHandle, into []byte) error {
	src, ok := b.buffers[h].([]uint64)
	if !ok {
		return nil
	}
	n := len(into) / 8
	if n > len(src) {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		*(*uint64)(unsafe.Pointer(&into[i*8])) = src[i]
	}
	return nil
}

func (b *Backend) edges(h core.BufferHandle) []uint64 {
	v, _ := b.buffers[h].([]uint64)
	return v
}

func (b *Backend) counters(h core.BufferHandle) []uint32 {
	v, _ := b.buffers[h].([]uint32)
	return v
}

func (b *Backend) Launch(ctx context.Context, kernel core.KernelID, args core.KernelArgs) error {
	if !b.br.initialized {
		return &core.DeviceError{Backend: b.Name(), Op: kernel.String(), Err: errNoDevice}
	}

	switch kernel {
	case core.KernelGenerate:
		keys := [4]uint64{args.Keys.K0, args.Keys.K1, args.Keys.K2, args.Keys.K3}
		if err := b.br.generate(keys, b.edges(args.Dst)); err != nil {
			return &core.DeviceError{Backend: b.Name(), Op: "generate", Err: err}
		}
		return nil
	case core.KernelCount:
		if err := b.br.count(b.edges(args.Src), b.counters(args.Counters), args.Parity); err != nil {
			return &core.DeviceError{Backend: b.Name(), Op: "count", Err: err}
		}
		return nil
	case core.KernelTrim:
		kept, err := b.br.trim(b.edges(args.Src), b.counters(args.Counters), args.Parity, b.edges(args.Dst))
		if err != nil {
			return &core.DeviceError{Backend: b.Name(), Op: "trim", Err: err}
		}
		_ = kept // the mock kernel reports a single contiguous run; bucketed accounting lives in the caller
		return nil
	default:
		return &core.DeviceError{Backend: b.Name(), Op: "launch", Err: errUnknownKernel}
	}
}

func (b *Backend) Wait(ctx context.Context) error {
	// The mock kernels execute synchronously on the host; a real CUDA
	// build would cudaStreamSynchronize here.
	return nil
}

func (b *Backend) Close() error {
	b.buffers = nil
	return nil
}

var errNoDevice = &noDeviceError{}
var errUnknownKernel = &unknownKernelError{}

type noDeviceError struct{}

func (*noDeviceError) Error() string { return "cuda: no device available" }

type unknownKernelError struct{}

func (*unknownKernelError) Error() string { return "cuda: unknown kernel id" }
