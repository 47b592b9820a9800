package track

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joshuapare/memkit/internal/site"
)

var (
	// ErrNotLive indicates an operation on an address the registry does not
	// currently consider live (default or never-allocated handle).
	ErrNotLive = errors.New("track: address not live")

	// ErrNotRegistered indicates a free of an address that was never
	// registered.
	ErrNotRegistered = errors.New("track: address not registered")

	// ErrAlreadyDisposed indicates a free or access of a previously freed
	// address. The returned error is a *DisposedError citing the prior
	// disposal site.
	ErrAlreadyDisposed = errors.New("track: address already disposed")

	// ErrDoubleRegistration indicates an attempt to register an address that
	// is already live.
	ErrDoubleRegistration = errors.New("track: address already registered")

	// ErrLeakDetected is the sentinel wrapped by *LeakError from Audit.
	ErrLeakDetected = errors.New("track: leaked allocations detected")
)

// DisposedError reports a use or free of an already-freed address, citing
// where the first free happened.
type DisposedError struct {
	Addr       uintptr
	DisposedAt site.Site
}

func (e *DisposedError) Error() string {
	return fmt.Sprintf("track: address 0x%x already disposed at %s",
		e.Addr, e.DisposedAt.ShortString())
}

func (e *DisposedError) Unwrap() error { return ErrAlreadyDisposed }

// LeakError is the single aggregated diagnostic produced by Audit when
// allocations remain live at shutdown. It enumerates every leaked address
// with its original allocation site.
type LeakError struct {
	Leaks []Record
}

func (e *LeakError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "track: %d leaked allocation(s):\n", len(e.Leaks))
	for _, rec := range e.Leaks {
		fmt.Fprintf(&b, "  0x%x (%d bytes) allocated at:\n%s\n",
			rec.Addr, rec.Size, rec.AllocatedAt)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (e *LeakError) Unwrap() error { return ErrLeakDetected }

// Audit performs the shutdown leak check. It returns nil when no
// allocations remain, otherwise one *LeakError covering all of them. The
// registry never reclaims leaked memory; the audit only makes the leak
// visible.
func (r *Registry) Audit() error {
	leaks := r.All()
	if len(leaks) == 0 {
		return nil
	}
	return &LeakError{Leaks: leaks}
}
