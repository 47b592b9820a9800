package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/mem/track"
)

func TestReadWrite_RoundTrip(t *testing.T) {
	a := mustAlloc(t, 64)

	Write[int32](a, 0, -123456)
	Write[uint64](a, 8, 0xDEADBEEFCAFEF00D)
	Write[float64](a, 16, 3.25)
	Write[byte](a, 63, 0x7F)

	assert.Equal(t, int32(-123456), Read[int32](a, 0))
	assert.Equal(t, uint64(0xDEADBEEFCAFEF00D), Read[uint64](a, 8))
	assert.Equal(t, 3.25, Read[float64](a, 16))
	assert.Equal(t, byte(0x7F), Read[byte](a, 63))
}

func TestReadWrite_Struct(t *testing.T) {
	type vec3 struct{ X, Y, Z float32 }
	a := mustAlloc(t, 64)

	want := vec3{X: 1, Y: -2, Z: 0.5}
	Write(a, 12, want)
	assert.Equal(t, want, Read[vec3](a, 12))
}

func TestRead_OutOfBoundsPanics(t *testing.T) {
	a := mustAlloc(t, 8)

	requirePanicsIs(t, ErrOutOfBounds, func() { Read[int64](a, 1) })
	requirePanicsIs(t, ErrOutOfBounds, func() { Read[byte](a, 8) })
	requirePanicsIs(t, ErrOutOfBounds, func() { Write[int32](a, -1, 0) })
}

func TestRead_DeadHandlePanics(t *testing.T) {
	a, err := Alloc(8)
	require.NoError(t, err)
	require.NoError(t, Free(a))

	requirePanicsIs(t, track.ErrAlreadyDisposed, func() { Read[byte](a, 0) })
}

func TestRead_NilHandlePanics(t *testing.T) {
	requirePanicsIs(t, track.ErrNotLive, func() { Read[byte](Address{}, 0) })
}

func TestSpan_ViewsRegion(t *testing.T) {
	a := mustAlloc(t, 32)

	s := Span[int32](a, 0, 8)
	require.Len(t, s, 8)
	for i := range s {
		s[i] = int32(i * i)
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, int32(i*i), Read[int32](a, i*4), "span writes must hit the region")
	}
}

func TestSpan_OffsetAndBounds(t *testing.T) {
	a := mustAlloc(t, 32)

	s := Span[int16](a, 16, 8) // exactly the second half
	require.Len(t, s, 8)

	requirePanicsIs(t, ErrOutOfBounds, func() { Span[int16](a, 16, 9) })
	requirePanicsIs(t, ErrOutOfBounds, func() { Span[int64](a, 0, 5) })
	requirePanicsIs(t, ErrOutOfBounds, func() { Span[byte](a, 0, -1) })
}

func TestCopyToFrom_RoundTrip(t *testing.T) {
	a := mustAlloc(t, 16)

	src := []byte{1, 2, 3, 4, 5}
	CopyFrom(a, 3, src)

	dst := make([]byte, 5)
	CopyTo(a, 3, dst)
	assert.Equal(t, src, dst)

	requirePanicsIs(t, ErrOutOfBounds, func() { CopyFrom(a, 13, src) })
	requirePanicsIs(t, ErrOutOfBounds, func() { CopyTo(a, 13, dst) })
}

func TestFillAndClear(t *testing.T) {
	a := mustAlloc(t, 16)

	Fill(a, 4, 8, 0xAA)
	b := Bytes(a)
	for i := 0; i < 16; i++ {
		if i >= 4 && i < 12 {
			assert.Equal(t, byte(0xAA), b[i], "byte %d inside fill range", i)
		}
	}

	Clear(a)
	for i, v := range Bytes(a) {
		assert.Zero(t, v, "byte %d after Clear", i)
	}

	requirePanicsIs(t, ErrOutOfBounds, func() { Fill(a, 10, 8, 0xFF) })
}

func TestCopy_BetweenHandles(t *testing.T) {
	src := mustAlloc(t, 16)
	dst := mustAlloc(t, 16)

	CopyFrom(src, 0, []byte{9, 8, 7, 6})
	Copy(dst, 4, src, 0, 4)

	got := make([]byte, 4)
	CopyTo(dst, 4, got)
	assert.Equal(t, []byte{9, 8, 7, 6}, got)

	requirePanicsIs(t, ErrOutOfBounds, func() { Copy(dst, 14, src, 0, 4) })
}
