// Package graph defines the bipartite node/edge data model shared by the
// generator, trimmer, and cycle finder: 30-bit nodes split into an even
// side and an odd side, and edges packed into a single 64-bit word.
package graph

import "github.com/opencuckoo/cuckaroo29/internal/siphash"

const (
	// EdgeBits is the width of the nonce space exponent: 2^EdgeBits edges.
	EdgeBits = 29
	// NumEdges is the total nonce/edge count, 2^29.
	NumEdges = 1 << EdgeBits
	// NodeBits is the width of a single node's value space.
	NodeBits = EdgeBits + 1
	// NodeMask isolates the low NodeBits bits of a hash output.
	NodeMask = (1 << NodeBits) - 1
	// ProofSize is the fixed cycle length Cuckaroo-29 accepts.
	ProofSize = 42
)

// Node is a 30-bit graph vertex. Bit 0 encodes its side: 0 for the even
// side (conventionally node0), 1 for the odd side (node1).
type Node uint32

// Even reports whether n belongs to the even side of the bipartition.
func (n Node) Even() bool { return n&1 == 0 }

// Edge is a packed (node0, node1) pair: node1 in the high 32 bits, node0 in
// the low 32 bits. Edges carry no identity beyond their endpoints.
type Edge uint64

// PackEdge combines an even node0 and an odd node1 into a single Edge word.
func PackEdge(node0, node1 Node) Edge {
	return Edge(uint64(node1)<<32 | uint64(node0))
}

// Node0 extracts the even-side endpoint.
func (e Edge) Node0() Node { return Node(uint32(e)) }

// Node1 extracts the odd-side endpoint.
func (e Edge) Node1() Node { return Node(uint32(e >> 32)) }

// Endpoint returns the endpoint relevant to a given trim-round parity: the
// odd round (parity 1) reads node1, the even round (parity 0) reads node0.
func (e Edge) Endpoint(parity uint) Node {
	if parity&1 != 0 {
		return e.Node1()
	}
	return e.Node0()
}

// Nonce is the 29-bit index of an edge in the generating nonce space.
type Nonce uint32

// ComputeEdge derives the edge for nonce n under the given SipHash keys, per
// node0 = siphash(2n) masked even, node1 = siphash(2n+1)
// masked odd.
func ComputeEdge(keys siphash.Keys, n Nonce) Edge {
	node0 := Node(keys.Hash(2*uint64(n))&NodeMask) &^ 1
	node1 := Node(keys.Hash(2*uint64(n)+1)&NodeMask) | 1
	return PackEdge(node0, node1)
}
