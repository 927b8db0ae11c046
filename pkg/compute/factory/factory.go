// Package factory detects and ranks available compute backends, selecting
// the best one for a solver instance while keeping the rest reachable by
// name for diagnostics or explicit override.
package factory

import (
	"sort"

	"github.com/opencuckoo/cuckaroo29/pkg/compute/backend/cpu"
	"github.com/opencuckoo/cuckaroo29/pkg/compute/backend/cuda"
	"github.com/opencuckoo/cuckaroo29/pkg/compute/backend/remote"
	"github.com/opencuckoo/cuckaroo29/pkg/compute/core"
	"github.com/opencuckoo/cuckaroo29/pkg/compute/detect"
)

// Config configures which backends the factory builds and in what order it
// prefers them.
type Config struct {
	// PreferredOrder names backends in priority order, highest first.
	PreferredOrder []string `yaml:"preferred_order"`
	// CUDADevice selects the GPU device index for the CUDA-dialect backend.
	CUDADevice int `yaml:"cuda_device"`
	// RemoteAddr is the worker-fleet host:port the remote backend dials.
	RemoteAddr string `yaml:"remote_addr"`
	// EnableFallback allows falling back to the CPU reference backend when
	// no preferred backend is available.
	EnableFallback bool `yaml:"enable_fallback"`
}

// DefaultConfig prefers the CUDA-dialect backend, then a configured remote
// worker, falling back to the CPU reference implementation.
func DefaultConfig() Config {
	return Config{
		PreferredOrder: []string{"cuda", "remote", "cpu"},
		CUDADevice:     0,
		EnableFallback: true,
	}
}

// Factory builds and ranks compute backends.
type Factory struct {
	cfg      Config
	backends map[string]core.Backend
	detected map[string]bool
	best     core.Backend
}

// New builds a Factory, detecting available backends and selecting the
// best one according to cfg.PreferredOrder.
func New(cfg Config) (*Factory, error) {
	f := &Factory{
		cfg:      cfg,
		backends: make(map[string]core.Backend),
		detected: make(map[string]bool),
	}

	available := detect.Detect(detect.Config{
		RemoteAddr: cfg.RemoteAddr,
	})

	cpuBackend := cpu.New()
	f.backends["cpu"] = cpuBackend
	f.detected["cpu"] = true // always available, the reference fallback

	cudaBackend := cuda.New(cfg.CUDADevice)
	f.backends["cuda"] = cudaBackend
	f.detected["cuda"] = available.CUDA

	if cfg.RemoteAddr != "" {
		remoteBackend, err := remote.New(cfg.RemoteAddr)
		if err != nil {
			f.detected["remote"] = false
		} else {
			f.backends["remote"] = remoteBackend
			f.detected["remote"] = available.Remote
		}
	}

	f.selectBest()
	return f, nil
}

func (f *Factory) selectBest() {
	for _, name := range f.cfg.PreferredOrder {
		if b, ok := f.backends[name]; ok && f.detected[name] {
			f.best = b
			return
		}
	}
	if f.cfg.EnableFallback {
		f.best = f.backends["cpu"]
	}
}

// Best returns the highest-priority available backend.
func (f *Factory) Best() core.Backend { return f.best }

// Named returns a specific backend by name, or nil if it was never built.
func (f *Factory) Named(name string) core.Backend { return f.backends[name] }

// Status describes one backend's detection state for reporting.
type Status struct {
	Name         string            `json:"name"`
	Available    bool              `json:"available"`
	Priority     int               `json:"priority"`
	Capabilities core.Capabilities `json:"capabilities"`
}

// Report returns a priority-ordered status list of every backend the
// factory knows about, for diagnostics.
func (f *Factory) Report() []Status {
	names := make([]string, 0, len(f.backends))
	for name := range f.backends {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return f.priority(names[i]) < f.priority(names[j])
	})

	statuses := make([]Status, 0, len(names))
	for _, name := range names {
		statuses = append(statuses, Status{
			Name:         name,
			Available:    f.detected[name],
			Priority:     f.priority(name),
			Capabilities: f.backends[name].Capabilities(),
		})
	}
	return statuses
}

func (f *Factory) priority(name string) int {
	for i, preferred := range f.cfg.PreferredOrder {
		if preferred == name {
			return i
		}
	}
	return 999
}

// Close releases every backend the factory built.
func (f *Factory) Close() error {
	var firstErr error
	for _, b := range f.backends {
		if err := b.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
