//go:build unix

package sysmem

import (
	"testing"
	"unsafe"
)

func TestReserveRelease(t *testing.T) {
	p, err := Reserve(4096)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if p == nil {
		t.Fatalf("Reserve returned nil pointer")
	}

	// Anonymous mappings are zero-filled and writable.
	b := unsafe.Slice((*byte)(p), 4096)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not zero: 0x%x", i, v)
		}
	}
	b[0] = 0xde
	b[4095] = 0xef
	if b[0] != 0xde || b[4095] != 0xef {
		t.Fatalf("writes did not stick")
	}

	if err := Release(p, 4096); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestReserveZeroLength(t *testing.T) {
	p, err := Reserve(0)
	if err != nil {
		t.Fatalf("Reserve(0): %v", err)
	}
	if p == nil {
		t.Fatalf("zero-length reserve should still yield a distinct address")
	}
	if err := Release(p, 0); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestReserveNegative(t *testing.T) {
	if _, err := Reserve(-1); err == nil {
		t.Fatalf("expected error for negative size")
	}
}
