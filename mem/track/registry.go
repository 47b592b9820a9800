package track

import (
	"fmt"
	"sort"
	"sync"

	"github.com/joshuapare/memkit/internal/site"
)

// Record describes one live allocation.
type Record struct {
	Addr        uintptr
	Size        int
	AllocatedAt site.Site
}

// Registry tracks which raw addresses are currently live. All methods are
// safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	live     map[uintptr]Record
	disposed map[uintptr]site.Site
}

// New creates an empty registry. Tests should use their own instance
// instead of Default so leak audits stay isolated.
func New() *Registry {
	return &Registry{
		live:     make(map[uintptr]Record),
		disposed: make(map[uintptr]site.Site),
	}
}

var defaultRegistry = New()

// Default returns the process-wide registry used by the mem package.
func Default() *Registry { return defaultRegistry }

// Register records addr as live. Registering an already-live address is a
// caller bug and fails with ErrDoubleRegistration.
func (r *Registry) Register(addr uintptr, size int, at site.Site) error {
	if addr == 0 {
		return fmt.Errorf("track: nil address: %w", ErrNotRegistered)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.live[addr]; ok {
		return fmt.Errorf("track: address 0x%x already registered at %s: %w",
			addr, prev.AllocatedAt.ShortString(), ErrDoubleRegistration)
	}
	// A fresh allocation at a previously freed address is legitimate reuse;
	// the stale disposal record must not taint it.
	delete(r.disposed, addr)
	r.live[addr] = Record{Addr: addr, Size: size, AllocatedAt: at}
	return nil
}

// Unregister removes addr from the live set and remembers the disposal
// site. Freeing twice fails with a *DisposedError citing the first free;
// freeing an address that was never registered fails with ErrNotRegistered.
func (r *Registry) Unregister(addr uintptr, at site.Site) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.live[addr]; !ok {
		if prior, disposed := r.disposed[addr]; disposed {
			return &DisposedError{Addr: addr, DisposedAt: prior}
		}
		return fmt.Errorf("track: address 0x%x was never registered: %w", addr, ErrNotRegistered)
	}
	delete(r.live, addr)
	r.disposed[addr] = at
	return nil
}

// Rebase moves the record for old to new, preserving the original
// allocation site. Used when a reallocation relocates a region: the old
// address becomes invalid, but conceptually it is the same allocation.
func (r *Registry) Rebase(old, new uintptr, newSize int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.live[old]
	if !ok {
		if prior, disposed := r.disposed[old]; disposed {
			return &DisposedError{Addr: old, DisposedAt: prior}
		}
		return fmt.Errorf("track: address 0x%x was never registered: %w", old, ErrNotRegistered)
	}
	if old != new {
		if prev, taken := r.live[new]; taken {
			return fmt.Errorf("track: rebase target 0x%x already registered at %s: %w",
				new, prev.AllocatedAt.ShortString(), ErrDoubleRegistration)
		}
		delete(r.live, old)
		r.disposed[old] = rec.AllocatedAt
		delete(r.disposed, new)
	}
	rec.Addr = new
	rec.Size = newSize
	r.live[new] = rec
	return nil
}

// IsLive reports whether addr is currently registered.
func (r *Registry) IsLive(addr uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.live[addr]
	return ok
}

// SizeOf returns the tracked byte length of addr.
func (r *Registry) SizeOf(addr uintptr) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.live[addr]
	return rec.Size, ok
}

// MustBeLive panics when addr is not live. This is the gate every tracked
// mem operation passes through before touching memory; violating it is a
// caller bug, so it is reported the way the runtime reports a bad slice
// index.
func (r *Registry) MustBeLive(addr uintptr) {
	r.mu.Lock()
	_, ok := r.live[addr]
	if ok {
		r.mu.Unlock()
		return
	}
	prior, disposed := r.disposed[addr]
	r.mu.Unlock()
	if disposed {
		panic(&DisposedError{Addr: addr, DisposedAt: prior})
	}
	panic(fmt.Errorf("track: address 0x%x is not live: %w", addr, ErrNotLive))
}

// Count returns the number of live allocations.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Any reports whether any allocation is live.
func (r *Registry) Any() bool { return r.Count() > 0 }

// All returns a snapshot of every live allocation, sorted by address.
func (r *Registry) All() []Record {
	r.mu.Lock()
	out := make([]Record, 0, len(r.live))
	for _, rec := range r.live {
		out = append(out, rec)
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })
	return out
}

// Reset drops all live and disposed records. Test support only; it never
// releases the underlying memory.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live = make(map[uintptr]Record)
	r.disposed = make(map[uintptr]site.Site)
}
