// Package solver ties the hash core, trim loop, cycle finder, and recovery
// stages into the external-facing prepare/solve API.
package solver

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/opencuckoo/cuckaroo29/internal/siphash"
)

// SolverJob is the prepared, keyed input to Solve: the SipHash keys derived
// from a pool-delivered job blob, plus identifying metadata.
type SolverJob struct {
	ID        uuid.UUID
	Keys      siphash.Keys
	NonceSeed uint64
}

// Prepare derives SipHash keys from jobBlob and nonceSeed via Blake2b-256,
// the Grin-reference approach (see DESIGN.md for the open-question
// decision behind this choice).
func Prepare(jobBlob []byte, nonceSeed uint64) (SolverJob, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return SolverJob{}, &SolveError{Kind: KindDeviceError, Err: err}
	}
	h.Write(jobBlob)
	var seedBytes [8]byte
	for i := range seedBytes {
		seedBytes[i] = byte(nonceSeed >> (8 * i))
	}
	h.Write(seedBytes[:])

	var digest [32]byte
	copy(digest[:], h.Sum(nil))

	return SolverJob{
		ID:        uuid.New(),
		Keys:      siphash.DeriveKeys(digest),
		NonceSeed: nonceSeed,
	}, nil
}
