// Package remote implements a compute backend that dispatches generate/
// count/trim kernels to a worker-fleet host over gRPC. No protobuf-generated
// stubs exist in this module, so the service uses a hand-written
// grpc.ServiceDesc paired with a JSON codec instead of a .proto-derived one.
package remote

// GenerateRequest asks a worker to run the edge-generation kernel.
type GenerateRequest struct {
	K0           uint64 `json:"k0"`
	K1           uint64 `json:"k1"`
	K2           uint64 `json:"k2"`
	K3           uint64 `json:"k3"`
	Buckets      int    `json:"buckets"`
	MaxPerBucket int    `json:"max_per_bucket"`
}

// GenerateResponse carries the packed edges a generate call produced, plus
// the per-bucket slot counts needed to know how much of each bucket is live.
type GenerateResponse struct {
	Edges         []uint64 `json:"edges"`
	Counts        []uint32 `json:"counts"`
	OverflowCount uint64   `json:"overflow_count"`
}

// CountRequest asks a worker to run the degree-counting kernel over a set of
// edges, accumulating into its own degree-counter table.
type CountRequest struct {
	Edges        []uint64 `json:"edges"`
	Counts       []uint32 `json:"counts"`
	MaxPerBucket int      `json:"max_per_bucket"`
	Parity       uint32   `json:"parity"`
	CounterWords int      `json:"counter_words"`
}

// CountResponse is empty on success: the worker retains the counter state
// between a Count call and the Trim call that follows it in the same round.
type CountResponse struct{}

// TrimRequest asks a worker to filter edges by the degree counters
// accumulated by the preceding Count call.
type TrimRequest struct {
	Edges        []uint64 `json:"edges"`
	Counts       []uint32 `json:"counts"`
	MaxPerBucket int      `json:"max_per_bucket"`
	Parity       uint32   `json:"parity"`
}

// TrimResponse carries the surviving edges and their bucket counts.
type TrimResponse struct {
	Edges  []uint64 `json:"edges"`
	Counts []uint32 `json:"counts"`
}

// CapabilitiesResponse mirrors core.Capabilities over the wire without
// importing the core package into the wire-format definitions.
type CapabilitiesResponse struct {
	Name                    string `json:"name"`
	IsHardware              bool   `json:"is_hardware"`
	EstimatedEdgesPerSecond uint64 `json:"estimated_edges_per_second"`
	MaxBuckets              int    `json:"max_buckets"`
	MaxPerBucket            int    `json:"max_per_bucket"`
}
