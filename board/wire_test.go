package board

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestAppendAddrLayout(t *testing.T) {
	got := AppendAddr(nil, 0xAB1234)
	if !bytes.Equal(got, []byte{0x34, 0x12, 0xAB}) {
		t.Fatalf("AppendAddr: % 02X", got)
	}
}

func TestAppendLenLayout(t *testing.T) {
	got := AppendLen(nil, 0x8001)
	if !bytes.Equal(got, []byte{0x01, 0x80}) {
		t.Fatalf("AppendLen: % 02X", got)
	}
}

func TestAddrRoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 0xFF, 0x100, 0xFFFF, 0x10000, 0x123456, 0xFFFFFF}
	for _, v := range cases {
		if got := DecodeUint(AppendAddr(nil, v)); got != v {
			t.Fatalf("addr round trip %#x: got %#x", v, got)
		}
	}

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		v := r.Uint32() & 0xFFFFFF
		if got := DecodeUint(AppendAddr(nil, v)); got != v {
			t.Fatalf("addr round trip %#x: got %#x", v, got)
		}
	}
}

func TestLenRoundTrip(t *testing.T) {
	for v := uint32(0); v <= 0xFFFF; v++ {
		if got := DecodeUint(AppendLen(nil, v)); got != v {
			t.Fatalf("len round trip %#x: got %#x", v, got)
		}
	}
}

func TestEncodeMasksHighBits(t *testing.T) {
	if got := DecodeUint(AppendAddr(nil, 0x12345678)); got != 0x345678 {
		t.Fatalf("addr mask: got %#x", got)
	}
	if got := DecodeUint(AppendLen(nil, 0x12345678)); got != 0x5678 {
		t.Fatalf("len mask: got %#x", got)
	}
}

func TestDecodeUintContributions(t *testing.T) {
	if got := DecodeUint(nil); got != 0 {
		t.Fatalf("empty: got %#x", got)
	}
	if got := DecodeUint([]byte{0x7F}); got != 0x7F {
		t.Fatalf("one byte: got %#x", got)
	}
	if got := DecodeUint([]byte{0x01, 0x02, 0x03, 0x04}); got != 0x04030201 {
		t.Fatalf("four bytes: got %#x", got)
	}
}
