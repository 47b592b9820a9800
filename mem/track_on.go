//go:build !memkit_notrack

package mem

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/site"
	"github.com/joshuapare/memkit/mem/track"
)

// Tracking reports whether this build carries allocation tracking and
// bounds checks. Builds with the memkit_notrack tag compile the checked
// path out entirely.
const Tracking = true

// siteSkip hops over the hook and the mem API function so captured sites
// point at the caller of Alloc/Free/Realloc.
const siteSkip = 2

func registerAlloc(a Address) {
	// A fresh region can never collide with a live registration; a failure
	// here means the backend handed out an address twice.
	if err := track.Default().Register(uintptr(a.ptr), a.size, site.Capture(siteSkip)); err != nil {
		panic(fmt.Errorf("mem: corrupt allocation registry: %w", err))
	}
}

func unregisterAlloc(a Address) error {
	return track.Default().Unregister(uintptr(a.ptr), site.Capture(siteSkip))
}

func rebaseAlloc(old, next Address) error {
	return track.Default().Rebase(uintptr(old.ptr), uintptr(next.ptr), next.size)
}

func auditAllocs() error {
	return track.Default().Audit()
}

func isLiveAlloc(a Address) bool {
	return track.Default().IsLive(uintptr(a.ptr))
}

// ensureLive panics when a is not registered as live. Every tracked
// operation calls this before touching memory.
func ensureLive(a Address) {
	track.Default().MustBeLive(uintptr(a.ptr))
}

// checkRange panics when [off, off+n) exceeds the tracked length.
func checkRange(a Address, off, n int) {
	if _, err := buf.CheckRange(a.size, off, n); err != nil {
		panic(fmt.Errorf("mem: %v: %w", err, ErrOutOfBounds))
	}
}

// checkSpan panics when count elements of elemSize bytes at off exceed the
// tracked length.
func checkSpan(a Address, off, count, elemSize int) {
	if _, err := buf.CheckSpanBounds(a.size, off, count, elemSize); err != nil {
		panic(fmt.Errorf("mem: %v: %w", err, ErrOutOfBounds))
	}
}
