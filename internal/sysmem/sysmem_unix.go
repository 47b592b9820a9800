//go:build unix

// Package sysmem provides platform-specific allocation of raw memory that
// lives outside the Go heap. On unix platforms regions come from anonymous
// private mappings, so a Release genuinely returns the pages to the kernel.
package sysmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Reserve allocates n bytes of zeroed page-backed memory outside the Go
// heap. Zero-length requests still reserve a distinct address so callers can
// key bookkeeping on it.
func Reserve(n int) (unsafe.Pointer, error) {
	if n < 0 {
		return nil, fmt.Errorf("sysmem: negative size %d", n)
	}
	b, err := unix.Mmap(-1, 0, mapLen(n),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("sysmem: mmap of %d bytes failed: %w", n, err)
	}
	return unsafe.Pointer(&b[0]), nil
}

// Release unmaps a region previously returned by Reserve. n must be the
// size passed to the matching Reserve call.
func Release(p unsafe.Pointer, n int) error {
	if p == nil {
		return nil
	}
	if err := unix.Munmap(unsafe.Slice((*byte)(p), mapLen(n))); err != nil {
		return fmt.Errorf("sysmem: munmap failed: %w", err)
	}
	return nil
}

// mapLen rounds a zero-length request up to one byte; mmap rejects
// zero-length mappings.
func mapLen(n int) int {
	if n == 0 {
		return 1
	}
	return n
}
