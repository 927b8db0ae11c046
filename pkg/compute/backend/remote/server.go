package remote

import (
	"context"

	"github.com/opencuckoo/cuckaroo29/internal/graph"
	"github.com/opencuckoo/cuckaroo29/internal/siphash"
	"github.com/opencuckoo/cuckaroo29/internal/solver/degree"
	"github.com/opencuckoo/cuckaroo29/internal/solver/generator"
	"github.com/opencuckoo/cuckaroo29/internal/solver/trim"
)

// Server executes generate/count/trim kernels on behalf of remote callers,
// running the same internal solver packages the CPU backend uses directly —
// a worker-fleet host is a CPU reference backend with a network front end.
type Server struct {
	workers  int
	counters *degree.Counters
}

// NewServer builds a worker server with the given CPU worker-pool size and
// degree-counter table size (shared across every Count/Trim call it serves).
func NewServer(workers, counterWords int) *Server {
	return &Server{
		workers:  workers,
		counters: degree.NewCounters(counterWords),
	}
}

func (s *Server) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	keys := siphash.New(req.K0, req.K1, req.K2, req.K3)
	buf := generator.NewBuffers(req.Buckets, req.MaxPerBucket)
	stats, err := generator.Run(ctx, keys, buf, s.workers)
	if err != nil {
		return nil, err
	}
	return &GenerateResponse{
		Edges:         edgesToWire(buf.Edges),
		Counts:        buf.Counts,
		OverflowCount: stats.Overflowed,
	}, nil
}

func (s *Server) Count(ctx context.Context, req *CountRequest) (*CountResponse, error) {
	s.counters.Reset()
	err := degree.Run(ctx, s.counters, edgesFromWire(req.Edges), req.Counts, req.MaxPerBucket, uint(req.Parity), s.workers)
	if err != nil {
		return nil, err
	}
	return &CountResponse{}, nil
}

func (s *Server) Trim(ctx context.Context, req *TrimRequest) (*TrimResponse, error) {
	buckets := len(req.Counts)
	dst := trim.NewBuffers(buckets, req.MaxPerBucket)
	err := trim.Run(ctx, s.counters, edgesFromWire(req.Edges), req.Counts, req.MaxPerBucket, uint(req.Parity), dst, s.workers)
	if err != nil {
		return nil, err
	}
	return &TrimResponse{
		Edges:  edgesToWire(dst.Edges),
		Counts: dst.Counts,
	}, nil
}

func (s *Server) Capabilities(ctx context.Context, req *struct{}) (*CapabilitiesResponse, error) {
	return &CapabilitiesResponse{
		Name:                    "remote worker fleet",
		IsHardware:              false,
		EstimatedEdgesPerSecond: 200_000_000,
		MaxBuckets:              256,
		MaxPerBucket:            1 << 20,
	}, nil
}

func edgesToWire(edges []graph.Edge) []uint64 {
	out := make([]uint64, len(edges))
	for i, e := range edges {
		out[i] = uint64(e)
	}
	return out
}

func edgesFromWire(raw []uint64) []graph.Edge {
	out := make([]graph.Edge, len(raw))
	for i, v := range raw {
		out[i] = graph.Edge(v)
	}
	return out
}
