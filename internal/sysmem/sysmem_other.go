//go:build !unix

// Package sysmem provides platform-specific allocation of raw memory that
// lives outside the Go heap. On platforms without anonymous mappings the
// regions come from the Go heap and are pinned in a package-level table so
// the collector cannot reclaim them while a handle is outstanding.
package sysmem

import (
	"fmt"
	"sync"
	"unsafe"
)

var (
	mu   sync.Mutex
	held = make(map[uintptr][]byte)
)

// Reserve allocates n bytes of zeroed memory and pins it until Release.
func Reserve(n int) (unsafe.Pointer, error) {
	if n < 0 {
		return nil, fmt.Errorf("sysmem: negative size %d", n)
	}
	if n == 0 {
		n = 1
	}
	b := make([]byte, n)
	p := unsafe.Pointer(&b[0])
	mu.Lock()
	held[uintptr(p)] = b
	mu.Unlock()
	return p, nil
}

// Release unpins a region previously returned by Reserve.
func Release(p unsafe.Pointer, _ int) error {
	if p == nil {
		return nil
	}
	mu.Lock()
	delete(held, uintptr(p))
	mu.Unlock()
	return nil
}
