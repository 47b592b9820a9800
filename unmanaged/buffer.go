package unmanaged

import (
	"fmt"

	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/rtype"
)

// Buffer is a type-erased view of a container's raw storage: an element
// descriptor, a capacity in elements, and the backing region. It exists so
// fixed-layout data can cross API boundaries without a type parameter and
// be re-typed safely on the far side.
type Buffer struct {
	elem rtype.Type
	cap  int
	data mem.Address
}

// Elem returns the element descriptor the buffer was stamped with.
func (b Buffer) Elem() rtype.Type { return b.elem }

// Cap returns the capacity in elements.
func (b Buffer) Cap() int { return b.cap }

// Data returns the backing region.
func (b Buffer) Data() mem.Address { return b.data }

// Free releases the backing region. The buffer and every view derived from
// it become invalid.
func (b Buffer) Free() error { return mem.Free(b.data) }

// NewBuffer allocates zeroed storage for capacity elements of type T.
func NewBuffer[T comparable](capacity int) (Buffer, error) {
	if capacity < 0 {
		return Buffer{}, fmt.Errorf("unmanaged: buffer capacity %d: %w", capacity, ErrNegativeLength)
	}
	elem := rtype.Of[T]()
	data, err := mem.AllocZeroed(capacity * elem.Size())
	if err != nil {
		return Buffer{}, err
	}
	return Buffer{elem: elem, cap: capacity, data: data}, nil
}

// ArrayFrom re-types a buffer as an Array[T]. The buffer's stored element
// descriptor must match T exactly; a mismatch fails with ErrTypeMismatch
// and leaves the buffer untouched.
func ArrayFrom[T comparable](b Buffer) (Array[T], error) {
	if !rtype.Is[T](b.elem) {
		return Array[T]{}, fmt.Errorf("unmanaged: buffer holds %v, not %v: %w",
			b.elem, rtype.Of[T](), ErrTypeMismatch)
	}
	return Array[T]{data: b.data, length: b.cap, elem: b.elem}, nil
}
