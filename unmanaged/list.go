package unmanaged

import (
	"fmt"

	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/rtype"
)

// List is a growable typed list over manually-managed memory. Capacity
// doubles whenever an Add or Insert finds the list full, so N appends cost
// O(N) amortized.
type List[T comparable] struct {
	data     mem.Address
	count    int
	capacity int
	elem     rtype.Type
}

// NewList allocates a list with the given initial capacity. Zero is a
// valid capacity; the first Add grows it.
func NewList[T comparable](capacity int) (List[T], error) {
	if capacity < 0 {
		return List[T]{}, fmt.Errorf("unmanaged: list capacity %d: %w", capacity, ErrNegativeLength)
	}
	elem := rtype.Of[T]()
	data, err := mem.Alloc(capacity * elem.Size())
	if err != nil {
		return List[T]{}, err
	}
	return List[T]{data: data, capacity: capacity, elem: elem}, nil
}

func (l *List[T]) checkIndex(i int) {
	if i < 0 || i >= l.count {
		panic(fmt.Errorf("unmanaged: index %d out of range [0, %d): %w",
			i, l.count, mem.ErrOutOfBounds))
	}
}

// Count returns the number of elements.
func (l *List[T]) Count() int { return l.count }

// Capacity returns the allocated capacity in elements.
func (l *List[T]) Capacity() int { return l.capacity }

// Get returns the element at index i.
func (l *List[T]) Get(i int) T {
	l.checkIndex(i)
	return mem.Read[T](l.data, i*l.elem.Size())
}

// Set stores v at index i.
func (l *List[T]) Set(i int, v T) {
	l.checkIndex(i)
	mem.Write(l.data, i*l.elem.Size(), v)
}

// At returns a pointer to the element at index i. The pointer aliases the
// region and must not be used after the list grows or is freed.
func (l *List[T]) At(i int) *T {
	l.checkIndex(i)
	return &mem.Span[T](l.data, 0, l.count)[i]
}

// Slice returns the live elements as a slice view. Same aliasing rules as
// At.
func (l *List[T]) Slice() []T {
	return mem.Span[T](l.data, 0, l.count)
}

// grow ensures capacity for at least need elements. Capacity at least
// doubles on every growth, and never ends below need, so repeated appends
// reallocate O(log n) times.
func (l *List[T]) grow(need int) error {
	if need <= l.capacity {
		return nil
	}
	newCap := l.capacity * 2
	if newCap < need {
		newCap = need
	}
	if newCap < 1 {
		newCap = 1
	}
	data, err := mem.Realloc(l.data, newCap*l.elem.Size())
	if err != nil {
		return err
	}
	l.data = data
	l.capacity = newCap
	return nil
}

// Add appends v, growing the capacity first when the list is full.
func (l *List[T]) Add(v T) error {
	if err := l.grow(l.count + 1); err != nil {
		return err
	}
	mem.Write(l.data, l.count*l.elem.Size(), v)
	l.count++
	return nil
}

// Insert places v at index i, shifting later elements up by one. i may
// equal Count, which appends.
func (l *List[T]) Insert(i int, v T) error {
	if i < 0 || i > l.count {
		panic(fmt.Errorf("unmanaged: insert index %d out of range [0, %d]: %w",
			i, l.count, mem.ErrOutOfBounds))
	}
	if err := l.grow(l.count + 1); err != nil {
		return err
	}
	es := l.elem.Size()
	if i < l.count {
		mem.Copy(l.data, (i+1)*es, l.data, i*es, (l.count-i)*es)
	}
	mem.Write(l.data, i*es, v)
	l.count++
	return nil
}

// RemoveAt removes the element at index i, shifting later elements down by
// one. Order is preserved at O(n) cost.
func (l *List[T]) RemoveAt(i int) {
	l.checkIndex(i)
	es := l.elem.Size()
	if i < l.count-1 {
		mem.Copy(l.data, i*es, l.data, (i+1)*es, (l.count-1-i)*es)
	}
	l.count--
}

// RemoveAtSwapBack removes the element at index i by overwriting it with
// the last element. O(1), but element order changes.
func (l *List[T]) RemoveAtSwapBack(i int) {
	l.checkIndex(i)
	es := l.elem.Size()
	last := l.count - 1
	if i < last {
		mem.Copy(l.data, i*es, l.data, last*es, es)
	}
	l.count--
}

// IndexOf returns the index of the first element equal to v, or -1.
func (l *List[T]) IndexOf(v T) int {
	for i, e := range l.Slice() {
		if e == v {
			return i
		}
	}
	return -1
}

// Contains reports whether v is present.
func (l *List[T]) Contains(v T) bool { return l.IndexOf(v) >= 0 }

// Clear resets the count to zero without shrinking capacity or zeroing
// memory.
func (l *List[T]) Clear() { l.count = 0 }

// Free releases the backing region.
func (l *List[T]) Free() error {
	return mem.Free(l.data)
}
