package siphash

import "testing"

func TestHashVector(t *testing.T) {
	k := New(
		0x0706050403020100,
		0x0f0e0d0c0b0a0908,
		0x0706050403020100^constK0,
		0x0f0e0d0c0b0a0908^constK1,
	)

	got := k.Hash(0)
	want := uint64(0xffe060bbc1691904)
	if got != want {
		t.Fatalf("Hash(0) = %#x, want %#x", got, want)
	}
}

func TestHashDeterministic(t *testing.T) {
	k := New(1, 2, 3, 4)
	a := k.Hash(12345)
	b := k.Hash(12345)
	if a != b {
		t.Fatalf("Hash not deterministic: %#x != %#x", a, b)
	}
}

func TestHashVariesByNonce(t *testing.T) {
	k := New(1, 2, 3, 4)
	seen := make(map[uint64]struct{})
	for nonce := uint64(0); nonce < 64; nonce++ {
		h := k.Hash(nonce)
		if _, dup := seen[h]; dup {
			t.Fatalf("collision at nonce %d: %#x", nonce, h)
		}
		seen[h] = struct{}{}
	}
}

func TestHashVariesByKey(t *testing.T) {
	a := New(1, 2, 3, 4).Hash(0)
	b := New(1, 2, 3, 5).Hash(0)
	if a == b {
		t.Fatalf("different keys produced the same hash: %#x", a)
	}
}

func TestDeriveKeysFoldsConstants(t *testing.T) {
	var digest [32]byte
	digest[0] = 0x42
	k := DeriveKeys(digest)
	if k.K2 != k.K0^constK0 {
		t.Fatalf("K2 = %#x, want K0^constK0 = %#x", k.K2, k.K0^constK0)
	}
	if k.K3 != k.K1^constK1 {
		t.Fatalf("K3 = %#x, want K1^constK1 = %#x", k.K3, k.K1^constK1)
	}
}

func TestHashErrorMessage(t *testing.T) {
	e := &HashError{Type: ErrorMalformedKeys, Message: "truncated digest"}
	if e.Error() != "siphash: truncated digest" {
		t.Fatalf("unexpected error string: %q", e.Error())
	}
}
