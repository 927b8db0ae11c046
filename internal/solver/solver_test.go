package solver

import (
	"context"
	"testing"
)

func smallConfig() Config {
	return Config{
		Buckets:         8,
		MaxPerBucket:    1 << 16,
		Rounds:          4,
		CounterWords:    1 << 14,
		Workers:         2,
		RecoveryWorkers: 2,
	}
}

func TestPrepareDerivesDistinctKeysPerSeed(t *testing.T) {
	blob := []byte("job-blob-fixture")

	a, err := Prepare(blob, 0)
	if err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	b, err := Prepare(blob, 1)
	if err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}

	if a.Keys == b.Keys {
		t.Fatalf("different nonce seeds produced identical keys")
	}
	if a.ID == b.ID {
		t.Fatalf("Prepare did not assign distinct job IDs")
	}
}

func TestPrepareDeterministic(t *testing.T) {
	blob := []byte("job-blob-fixture")

	a, err := Prepare(blob, 42)
	if err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	b, err := Prepare(blob, 42)
	if err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}

	if a.Keys != b.Keys {
		t.Fatalf("Prepare not deterministic: %+v != %+v", a.Keys, b.Keys)
	}
}

func TestSolveReturnsNoCycleOnSmallConfig(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full generate+trim+find pipeline in short mode")
	}
	job, err := Prepare([]byte("fixture"), 0)
	if err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}

	s := New(smallConfig())
	_, err = s.Solve(context.Background(), job)
	if err == nil {
		t.Fatalf("expected an error (NoCycle is the overwhelmingly likely outcome on a tiny graph), got nil")
	}

	solveErr, ok := err.(*SolveError)
	if !ok {
		t.Fatalf("expected *SolveError, got %T", err)
	}
	if solveErr.Kind != KindNoCycle {
		t.Fatalf("unexpected error kind: %v (%v)", solveErr.Kind, solveErr.Err)
	}
}

func TestSolveCancellation(t *testing.T) {
	job, err := Prepare([]byte("fixture"), 0)
	if err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(smallConfig())
	_, err = s.Solve(ctx, job)
	if err == nil {
		t.Fatalf("expected a cancellation error, got nil")
	}
	solveErr, ok := err.(*SolveError)
	if !ok {
		t.Fatalf("expected *SolveError, got %T", err)
	}
	if solveErr.Kind != KindCancelled {
		t.Fatalf("unexpected error kind: %v", solveErr.Kind)
	}
}

func TestErrorKindString(t *testing.T) {
	cases := map[ErrorKind]string{
		KindNoCycle:          "NoCycle",
		KindCancelled:        "Cancelled",
		KindCapacityOverflow: "CapacityOverflow",
		KindRecoveryFailure:  "RecoveryFailure",
		KindDeviceError:      "DeviceError",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("ErrorKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
