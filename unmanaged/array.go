package unmanaged

import (
	"fmt"

	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/rtype"
)

// Array is a fixed-length typed array over manually-managed memory. The
// length is set at construction and only changes through Resize. The zero
// Array owns nothing.
type Array[T comparable] struct {
	data   mem.Address
	length int
	elem   rtype.Type
}

// NewArray allocates a zeroed array of length elements.
func NewArray[T comparable](length int) (Array[T], error) {
	if length < 0 {
		return Array[T]{}, fmt.Errorf("unmanaged: array length %d: %w", length, ErrNegativeLength)
	}
	elem := rtype.Of[T]()
	data, err := mem.AllocZeroed(length * elem.Size())
	if err != nil {
		return Array[T]{}, err
	}
	return Array[T]{data: data, length: length, elem: elem}, nil
}

// checkIndex panics for indexes outside [0, length). Index misuse is a
// caller bug and is reported in every build mode.
func (a *Array[T]) checkIndex(i int) {
	if i < 0 || i >= a.length {
		panic(fmt.Errorf("unmanaged: index %d out of range [0, %d): %w",
			i, a.length, mem.ErrOutOfBounds))
	}
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return a.length }

// Get returns the element at index i.
func (a *Array[T]) Get(i int) T {
	a.checkIndex(i)
	return mem.Read[T](a.data, i*a.elem.Size())
}

// Set stores v at index i.
func (a *Array[T]) Set(i int, v T) {
	a.checkIndex(i)
	mem.Write(a.data, i*a.elem.Size(), v)
}

// At returns a pointer to the element at index i. The pointer aliases the
// region and must not be used after Resize or Free.
func (a *Array[T]) At(i int) *T {
	a.checkIndex(i)
	return &mem.Span[T](a.data, 0, a.length)[i]
}

// Slice returns the whole array as a slice view. Same aliasing rules as At.
func (a *Array[T]) Slice() []T {
	return mem.Span[T](a.data, 0, a.length)
}

// IndexOf returns the index of the first element equal to v, or -1.
func (a *Array[T]) IndexOf(v T) int {
	for i, e := range a.Slice() {
		if e == v {
			return i
		}
	}
	return -1
}

// Contains reports whether v is present.
func (a *Array[T]) Contains(v T) bool { return a.IndexOf(v) >= 0 }

// Clear zeroes every element.
func (a *Array[T]) Clear() {
	mem.Clear(a.data)
}

// Resize changes the length to n elements, preserving the overlapping
// prefix. When zeroNew is true, slots beyond the old length are zeroed;
// otherwise their contents are unspecified.
func (a *Array[T]) Resize(n int, zeroNew bool) error {
	if n < 0 {
		return fmt.Errorf("unmanaged: array resize to %d: %w", n, ErrNegativeLength)
	}
	es := a.elem.Size()
	data, err := mem.Realloc(a.data, n*es)
	if err != nil {
		return err
	}
	if zeroNew && n > a.length {
		mem.Fill(data, a.length*es, (n-a.length)*es, 0)
	}
	a.data = data
	a.length = n
	return nil
}

// Free releases the backing region. The array and every view derived from
// it become invalid.
func (a *Array[T]) Free() error {
	return mem.Free(a.data)
}

// Erase returns the array's storage as a type-erased Buffer. The array and
// the buffer alias the same region; re-type it with ArrayFrom.
func (a *Array[T]) Erase() Buffer {
	return Buffer{elem: a.elem, cap: a.length, data: a.data}
}
