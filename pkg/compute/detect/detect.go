// Package detect probes the host for usable compute backends: a CUDA
// device via nvidia-smi, and a remote worker via a reachability check.
package detect

import (
	"net"
	"os/exec"
	"strings"
	"time"
)

// Config parameterizes detection for backends that need it.
type Config struct {
	// RemoteAddr, if set, is dialed to check worker-fleet reachability.
	RemoteAddr string
}

// Available reports which compute backends were found usable on this host.
type Available struct {
	CUDA   bool
	Remote bool
}

// Detect runs every backend probe and returns the aggregate result. The CPU
// reference backend is intentionally absent here: it is always available
// and the factory treats it as such without consulting this package.
func Detect(cfg Config) Available {
	return Available{
		CUDA:   detectCUDA(),
		Remote: detectRemote(cfg.RemoteAddr),
	}
}

// detectCUDA shells out to nvidia-smi to probe for CUDA availability:
// absence of the tool, or an empty device list, means no CUDA device
// is usable.
func detectCUDA() bool {
	cmd := exec.Command("nvidia-smi", "--query-gpu=name", "--format=csv,noheader")
	output, err := cmd.Output()
	if err != nil {
		return false
	}
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	return len(lines) > 0 && lines[0] != ""
}

// detectRemote checks that a worker-fleet address accepts TCP connections
// within a short timeout. It does not validate the gRPC handshake itself —
// that happens lazily on first Launch — only basic reachability.
func detectRemote(addr string) bool {
	if addr == "" {
		return false
	}
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
