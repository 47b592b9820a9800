// Package rtype provides compact, reflection-free runtime type descriptors.
//
// A Type answers exactly two questions: "how many bytes is one value" and
// "is this the same concrete type". Those are the two facts type-erased raw
// buffers need to safely reinterpret their contents. Descriptors are pure values;
// Of returns bit-identical results for repeated calls with the same type
// argument, so they can be compared with ==.
//
// Only concrete fixed-layout types make sense here (integers, floats,
// pointers, and structs/arrays of them). Passing a type containing Go
// pointers to a container defeats the garbage collector, not this package;
// rtype itself does not police layouts.
package rtype

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Type is a per-concrete-type descriptor: element size plus a small
// process-stable identity code. The zero Type is invalid and matches
// nothing.
type Type struct {
	size uint32
	code uint32
}

// Size returns the size of one value in bytes.
func (t Type) Size() int { return int(t.size) }

// Code returns the process-stable identity code. Codes are assigned
// sequentially on first use and carry no meaning beyond equality.
func (t Type) Code() uint32 { return t.code }

// Valid reports whether t describes a type (i.e. came from Of).
func (t Type) Valid() bool { return t.code != 0 }

func (t Type) String() string {
	if !t.Valid() {
		return "rtype.Type(invalid)"
	}
	return fmt.Sprintf("rtype.Type(code=%d, %d bytes)", t.code, t.size)
}

// eface mirrors the runtime's empty-interface layout. The type word is a
// pointer into the runtime's static type data, which makes it a stable
// per-type identity without touching the reflect package.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func typeWord[T any]() uintptr {
	var v T
	var i any = v
	return uintptr((*eface)(unsafe.Pointer(&i)).typ)
}

var (
	codes    sync.Map // type word (uintptr) -> code (uint32)
	lastCode atomic.Uint32
)

// Of returns the descriptor for T. The first call for a given T assigns its
// identity code; every later call is a cache lookup yielding an identical
// value.
func Of[T any]() Type {
	var v T
	sz := uint32(unsafe.Sizeof(v))
	tw := typeWord[T]()
	if c, ok := codes.Load(tw); ok {
		return Type{size: sz, code: c.(uint32)}
	}
	c, _ := codes.LoadOrStore(tw, lastCode.Add(1))
	return Type{size: sz, code: c.(uint32)}
}

// Is reports whether t is the descriptor for T.
func Is[T any](t Type) bool { return t == Of[T]() }
