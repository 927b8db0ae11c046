package graph

import (
	"testing"

	"github.com/opencuckoo/cuckaroo29/internal/siphash"
)

func testKeys() siphash.Keys {
	return siphash.New(
		0x0706050403020100,
		0x0f0e0d0c0b0a0908,
		0x0706050403020100^0x736f6d6570736575,
		0x0f0e0d0c0b0a0908^0x646f72616e646f6d,
	)
}

func TestPackEdgeRoundTrip(t *testing.T) {
	e := PackEdge(42, 43)
	if e.Node0() != 42 || e.Node1() != 43 {
		t.Fatalf("got (%d, %d), want (42, 43)", e.Node0(), e.Node1())
	}
}

func TestEdgeParity(t *testing.T) {
	keys := testKeys()
	for n := Nonce(0); n < 256; n++ {
		e := ComputeEdge(keys, n)
		if !e.Node0().Even() {
			t.Fatalf("nonce %d: node0 %d is not even", n, e.Node0())
		}
		if e.Node1().Even() {
			t.Fatalf("nonce %d: node1 %d is not odd", n, e.Node1())
		}
	}
}

func TestComputeEdgeVectors(t *testing.T) {
	keys := testKeys()

	cases := []struct {
		nonce        Nonce
		node0, node1 Node
	}{
		{0, 23664900, 562248777},
		{1, 458477444, 45545217},
	}

	for _, c := range cases {
		e := ComputeEdge(keys, c.nonce)
		if e.Node0() != c.node0 || e.Node1() != c.node1 {
			t.Fatalf("nonce %d: got (%d, %d), want (%d, %d)",
				c.nonce, e.Node0(), e.Node1(), c.node0, c.node1)
		}
	}
}

func TestEndpointParity(t *testing.T) {
	e := PackEdge(10, 11)
	if e.Endpoint(0) != 10 {
		t.Fatalf("even-round endpoint = %d, want 10", e.Endpoint(0))
	}
	if e.Endpoint(1) != 11 {
		t.Fatalf("odd-round endpoint = %d, want 11", e.Endpoint(1))
	}
}
