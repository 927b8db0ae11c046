package solver

import "github.com/opencuckoo/cuckaroo29/internal/solver/controller"

// Config tunes a solver instance: bucket layout, trim round count, and
// worker parallelism, passed straight through to the trim loop controller.
// The controller allocates buffers sized by these values on every run; they
// are not kept or reused across jobs.
type Config struct {
	Buckets         int
	MaxPerBucket    int
	Rounds          int
	CounterWords    int
	Workers         int
	FailOnOverflow  bool
	RecoveryWorkers int
}

// DefaultConfig returns a Config sized for a 2^29-edge job with 64 buckets
// and 40 trim rounds, the "fast" end of the typical reference range.
func DefaultConfig() Config {
	return Config{
		Buckets:         64,
		MaxPerBucket:    (1 << 23) * 11 / 10, // uniform share 2^29/64 = 2^23 (~8.4M) plus a 10% safety margin
		Rounds:          40,
		CounterWords:    1 << 24,
		Workers:         8,
		FailOnOverflow:  false,
		RecoveryWorkers: 8,
	}
}

func (c Config) controllerConfig() controller.Config {
	return controller.Config{
		Buckets:      c.Buckets,
		MaxPerBucket: c.MaxPerBucket,
		Rounds:       c.Rounds,
		CounterWords: c.CounterWords,
		Workers:      c.Workers,
	}
}
