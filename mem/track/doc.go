// Package track provides process-wide bookkeeping for raw memory handles.
//
// # Overview
//
// Every allocation made through mem (in tracked builds) is registered here
// with the call site that produced it. The registry catches double frees,
// use-after-free, and operations on handles that were never allocated, and
// performs a final leak audit on shutdown.
//
// # Registry Lifecycle
//
// Most callers use the process-wide Default() registry, which the mem
// package feeds automatically. Tests construct isolated registries with
// New() so leak audits never interfere across test runs:
//
//	r := track.New()
//	err := r.Register(addr, 64, site.Capture(0))
//	...
//	if err := r.Audit(); err != nil {
//	    // *LeakError enumerating every live allocation
//	}
//
// # Disposal Diagnostics
//
// Unregister moves the record into a disposed side-table rather than
// forgetting it. A second Unregister (or any later access) of the same
// address is then diagnosed as ErrAlreadyDisposed, citing the call site of
// the first free.
//
// # Thread Safety
//
// Registry operations are guarded by a single mutex, so concurrent
// allocation and free from multiple goroutines is safe. The memory regions
// the registry tracks carry no such guarantee: a single region must not be
// mutated concurrently.
package track
