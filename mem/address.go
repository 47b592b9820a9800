package mem

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/joshuapare/memkit/internal/sysmem"
)

// Runtime flag for allocation logging - controlled by MEMKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("MEMKIT_LOG_ALLOC") != ""

// Address is a handle to a region of manually-managed memory. The zero
// Address is nil and owns nothing. See the package documentation for the
// ownership and aliasing rules.
type Address struct {
	ptr  unsafe.Pointer
	size int
}

// IsNil reports whether a is the zero handle.
func (a Address) IsNil() bool { return a.ptr == nil }

// Size returns the tracked byte length of the region.
func (a Address) Size() int { return a.size }

// Raw returns the underlying pointer. Intended for interop and diagnostics;
// going around the handle forfeits every safety check.
func (a Address) Raw() unsafe.Pointer { return a.ptr }

func (a Address) String() string {
	return fmt.Sprintf("mem.Address(0x%x, %d bytes)", uintptr(a.ptr), a.size)
}

// Alloc allocates n bytes of manually-managed memory. The contents are
// unspecified; use AllocZeroed when zeroing matters. n may be zero; the
// handle is still distinct and must still be freed.
func Alloc(n int) (Address, error) {
	if n < 0 {
		return Address{}, fmt.Errorf("mem: alloc of %d bytes: %w", n, ErrNegativeSize)
	}
	p, err := sysmem.Reserve(n)
	if err != nil {
		return Address{}, err
	}
	a := Address{ptr: p, size: n}
	registerAlloc(a)
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[MEM] alloc %s\n", a)
	}
	return a, nil
}

// AllocZeroed allocates n bytes of zero-filled memory.
func AllocZeroed(n int) (Address, error) {
	a, err := Alloc(n)
	if err != nil {
		return Address{}, err
	}
	// sysmem regions arrive zeroed on every current backend, but that is a
	// backend property, not a contract. Clear keeps the guarantee honest.
	Clear(a)
	return a, nil
}

// Free releases the region. In tracked builds a double free fails with an
// error wrapping track.ErrAlreadyDisposed (citing the first free), and
// freeing a handle that was never allocated fails with
// track.ErrNotRegistered; the memory is left untouched in both cases.
func Free(a Address) error {
	if err := unregisterAlloc(a); err != nil {
		return err
	}
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[MEM] free  %s\n", a)
	}
	return sysmem.Release(a.ptr, a.size)
}

// Realloc resizes the region to n bytes, preserving the first
// min(oldSize, n) bytes. Bytes beyond the old size are unspecified. The
// returned handle replaces a: the old handle (and every alias of it)
// becomes invalid, even when the operation fails only at the bookkeeping
// stage.
func Realloc(a Address, n int) (Address, error) {
	if n < 0 {
		return Address{}, fmt.Errorf("mem: realloc to %d bytes: %w", n, ErrNegativeSize)
	}
	ensureLive(a)

	p, err := sysmem.Reserve(n)
	if err != nil {
		return Address{}, err
	}
	next := Address{ptr: p, size: n}

	keep := a.size
	if n < keep {
		keep = n
	}
	if keep > 0 {
		copy(unsafe.Slice((*byte)(next.ptr), keep), unsafe.Slice((*byte)(a.ptr), keep))
	}

	// The registry entry is rebased rather than freed and re-registered, so
	// the allocation keeps its original allocation site across moves.
	if err := rebaseAlloc(a, next); err != nil {
		_ = sysmem.Release(next.ptr, next.size)
		return Address{}, err
	}
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[MEM] realloc %s -> %s\n", a, next)
	}
	if err := sysmem.Release(a.ptr, a.size); err != nil {
		return Address{}, err
	}
	return next, nil
}

// IsLive reports whether a is currently registered with the default
// registry. In untracked builds it only distinguishes the nil handle.
func IsLive(a Address) bool {
	return isLiveAlloc(a)
}

// Shutdown runs the final leak audit against the default registry. It
// returns nil when every allocation has been freed, otherwise a
// *track.LeakError enumerating the leaks. Callers on the clean-shutdown
// path should treat a non-nil result as fatal; nothing is reclaimed.
//
// In untracked builds Shutdown always returns nil.
func Shutdown() error {
	return auditAllocs()
}
