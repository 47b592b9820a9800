package mem

import "unsafe"

// Read loads a T from byte offset off.
func Read[T any](a Address, off int) T {
	ensureLive(a)
	var v T
	checkRange(a, off, int(unsafe.Sizeof(v)))
	return *(*T)(unsafe.Add(a.ptr, off))
}

// Write stores v at byte offset off.
func Write[T any](a Address, off int, v T) {
	ensureLive(a)
	checkRange(a, off, int(unsafe.Sizeof(v)))
	*(*T)(unsafe.Add(a.ptr, off)) = v
}

// Span returns a slice of count Ts starting at byte offset off, viewing
// the region directly. The slice aliases the region and must not be used
// after the handle is freed or reallocated.
func Span[T any](a Address, off, count int) []T {
	ensureLive(a)
	var v T
	checkSpan(a, off, count, int(unsafe.Sizeof(v)))
	return unsafe.Slice((*T)(unsafe.Add(a.ptr, off)), count)
}

// Bytes returns the whole region as a byte slice. Same aliasing rules as
// Span.
func Bytes(a Address) []byte {
	ensureLive(a)
	if a.size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(a.ptr), a.size)
}

// CopyTo copies len(dst) bytes out of the region starting at off.
func CopyTo(a Address, off int, dst []byte) {
	ensureLive(a)
	checkRange(a, off, len(dst))
	copy(dst, unsafe.Slice((*byte)(unsafe.Add(a.ptr, off)), len(dst)))
}

// CopyFrom copies len(src) bytes into the region starting at off.
func CopyFrom(a Address, off int, src []byte) {
	ensureLive(a)
	checkRange(a, off, len(src))
	copy(unsafe.Slice((*byte)(unsafe.Add(a.ptr, off)), len(src)), src)
}

// Fill sets n bytes starting at off to b.
func Fill(a Address, off, n int, b byte) {
	ensureLive(a)
	checkRange(a, off, n)
	s := unsafe.Slice((*byte)(unsafe.Add(a.ptr, off)), n)
	for i := range s {
		s[i] = b
	}
}

// Clear zeroes the whole region.
func Clear(a Address) {
	Fill(a, 0, a.size, 0)
}

// Copy moves n bytes from src at srcOff to dst at dstOff. The regions may
// belong to the same handle; overlapping ranges behave like copy on
// slices.
func Copy(dst Address, dstOff int, src Address, srcOff, n int) {
	ensureLive(dst)
	ensureLive(src)
	checkRange(dst, dstOff, n)
	checkRange(src, srcOff, n)
	copy(
		unsafe.Slice((*byte)(unsafe.Add(dst.ptr, dstOff)), n),
		unsafe.Slice((*byte)(unsafe.Add(src.ptr, srcOff)), n),
	)
}
