// Package mem provides raw, typed access to manually-managed memory
// outside the Go heap.
//
// # Overview
//
// The core abstraction is Address: an opaque handle to a region obtained
// from Alloc or AllocZeroed and released with Free. Typed access goes
// through the generic Read, Write, and Span functions; bulk operations
// through CopyTo, CopyFrom, Fill, and Clear. Realloc relocates a region
// while preserving the overlapping prefix.
//
// # Ownership
//
// Each handle has exactly one logical owner. Go cannot forbid copying a
// struct value, so assigning an Address creates an alias, not a new owner:
// exactly one copy may be passed to Free, and every other copy becomes
// invalid at that moment. Treat Address the way you treat a file
// descriptor.
//
// # Tracking
//
// By default every allocation is registered with the process-wide registry
// in mem/track, which captures allocation sites, diagnoses double frees and
// use-after-free, bounds-checks every access, and audits for leaks on
// Shutdown. Building with the memkit_notrack tag compiles all of that out:
// accesses become raw pointer arithmetic and violating bounds or liveness
// is undefined behavior, not a reported error.
//
// Misuse that tracking detects synchronously (out-of-bounds access, use of
// a dead handle) is reported by panicking with an error wrapping the
// matching sentinel, the same way the runtime reports a bad slice index.
// Disposal errors from Free and Realloc are returned as ordinary errors.
//
// # Alignment
//
// Read, Write, and Span perform native loads and stores. Keep offsets
// aligned to the element size; unaligned access faults on some
// architectures.
//
// # Related Packages
//
//   - github.com/joshuapare/memkit/mem/track: allocation registry and leak audit
//   - github.com/joshuapare/memkit/rtype: runtime type descriptors
//   - github.com/joshuapare/memkit/unmanaged: containers built on Address
package mem
