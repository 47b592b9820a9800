// Package unmanaged provides typed, growable containers over manually-
// managed memory: Array, List, and Dictionary, plus the type-erased Buffer
// they can be round-tripped through.
//
// # Overview
//
// The containers store their elements in regions obtained from mem.Alloc
// and never touch Go's managed containers, so element data is invisible to
// the garbage collector and freed only by an explicit Free. Element layout
// is stamped with an rtype descriptor at construction time; reinterpreting
// a Buffer as the wrong element type fails with ErrTypeMismatch instead of
// silently mangling bytes.
//
// # Element Types
//
// Elements must be concrete fixed-layout values: integers, floats,
// pointers, and structs or arrays of them. Storing a type that contains Go
// pointers (slices, maps, strings, channels) hides those pointers from the
// collector and will eventually crash the process; nothing here checks for
// that.
//
// # Failure Semantics
//
// Index misuse panics with an error wrapping mem.ErrOutOfBounds in every
// build mode, since it reflects a caller bug rather than missing
// instrumentation.
// Dictionary key errors (ErrDuplicateKey, ErrKeyNotFound) and disposal
// errors are returned as ordinary errors.
//
// # Thread Safety
//
// Containers are not thread-safe. Callers must synchronize externally when
// sharing one container across goroutines.
package unmanaged
