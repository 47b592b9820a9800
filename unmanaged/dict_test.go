package unmanaged

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionary_AddAndGet(t *testing.T) {
	d, err := NewDictionary[uint64, int32](0)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Free()) }()

	require.NoError(t, d.Add(1, 100))
	require.NoError(t, d.Add(2, 200))
	require.Equal(t, 2, d.Count())

	v, err := d.Get(1)
	require.NoError(t, err)
	assert.Equal(t, int32(100), v)

	v, err = d.Get(2)
	require.NoError(t, err)
	assert.Equal(t, int32(200), v)
}

func TestDictionary_DuplicateKey(t *testing.T) {
	d, err := NewDictionary[uint32, uint32](4)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Free()) }()

	require.NoError(t, d.Add(7, 1))
	err = d.Add(7, 2)
	require.ErrorIs(t, err, ErrDuplicateKey)

	v, getErr := d.Get(7)
	require.NoError(t, getErr)
	assert.Equal(t, uint32(1), v, "failed add must not clobber the stored value")
}

func TestDictionary_KeyNotFound(t *testing.T) {
	d, err := NewDictionary[int64, int64](4)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Free()) }()

	_, err = d.At(99)
	require.ErrorIs(t, err, ErrKeyNotFound)

	_, err = d.Get(99)
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.ErrorIs(t, d.Remove(99), ErrKeyNotFound)
	assert.False(t, d.ContainsKey(99))
}

func TestDictionary_AtMutatesValue(t *testing.T) {
	d, err := NewDictionary[uint32, int64](4)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Free()) }()

	require.NoError(t, d.Add(5, 50))
	p, err := d.At(5)
	require.NoError(t, err)
	*p = 500

	v, err := d.Get(5)
	require.NoError(t, err)
	assert.Equal(t, int64(500), v, "At returns a reference into the storage")
}

func TestDictionary_Remove(t *testing.T) {
	d, err := NewDictionary[uint64, uint64](8)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Free()) }()

	for i := uint64(0); i < uint64(6); i++ {
		require.NoError(t, d.Add(i, i*10))
	}

	require.NoError(t, d.Remove(3))
	require.Equal(t, 5, d.Count())
	assert.False(t, d.ContainsKey(3))

	// Probe chains must survive the tombstone.
	for _, k := range []uint64{0, 1, 2, 4, 5} {
		v, getErr := d.Get(k)
		require.NoError(t, getErr, "key %d must stay reachable", k)
		assert.Equal(t, k*10, v)
	}

	// The removed key can be re-added.
	require.NoError(t, d.Add(3, 333))
	v, err := d.Get(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(333), v)
}

func TestDictionary_GrowsAndKeepsEntries(t *testing.T) {
	d, err := NewDictionary[uint64, uint64](0)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Free()) }()

	const n = 1000
	for i := uint64(0); i < uint64(n); i++ {
		require.NoError(t, d.Add(i, i^0xABCD))
	}
	require.Equal(t, n, d.Count())

	for i := uint64(0); i < uint64(n); i++ {
		require.True(t, d.ContainsKey(i), "key %d lost across rehash", i)
		v, getErr := d.Get(i)
		require.NoError(t, getErr)
		require.Equal(t, i^0xABCD, v, "value for key %d corrupted across rehash", i)
	}

	// Never a wrong value for a wrong key.
	for i := uint64(n); i < n+100; i++ {
		require.False(t, d.ContainsKey(i))
	}
}

func TestDictionary_ChurnWithTombstones(t *testing.T) {
	d, err := NewDictionary[uint64, uint64](8)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Free()) }()

	// Repeated add/remove cycles accumulate tombstones and force the load
	// factor accounting to rehash them away.
	for round := uint64(0); round < uint64(50); round++ {
		for i := uint64(0); i < uint64(16); i++ {
			k := round*16 + i
			require.NoError(t, d.Add(k, k))
		}
		for i := uint64(0); i < uint64(16); i++ {
			k := round*16 + i
			require.NoError(t, d.Remove(k))
		}
	}
	assert.Equal(t, 0, d.Count())

	require.NoError(t, d.Add(1, 2))
	v, err := d.Get(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)
}

func TestDictionary_StructKeys(t *testing.T) {
	type key struct{ Hi, Lo uint64 }

	d, err := NewDictionary[key, int32](4)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Free()) }()

	require.NoError(t, d.Add(key{1, 2}, 12))
	require.NoError(t, d.Add(key{2, 1}, 21))

	v, err := d.Get(key{1, 2})
	require.NoError(t, err)
	assert.Equal(t, int32(12), v)

	v, err = d.Get(key{2, 1})
	require.NoError(t, err)
	assert.Equal(t, int32(21), v)

	assert.False(t, d.ContainsKey(key{2, 2}))
}

func TestDictionary_Each(t *testing.T) {
	d, err := NewDictionary[uint32, uint32](8)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Free()) }()

	want := map[uint32]uint32{1: 10, 2: 20, 3: 30}
	for k, v := range want {
		require.NoError(t, d.Add(k, v))
	}

	got := make(map[uint32]uint32)
	d.Each(func(k, v uint32) bool {
		got[k] = v
		return true
	})
	assert.Equal(t, want, got)

	// Early stop.
	seen := 0
	d.Each(func(uint32, uint32) bool {
		seen++
		return false
	})
	assert.Equal(t, 1, seen)
}

func TestDictionary_Clear(t *testing.T) {
	d, err := NewDictionary[uint32, uint32](8)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Free()) }()

	for i := uint32(0); i < uint32(5); i++ {
		require.NoError(t, d.Add(i, i))
	}
	d.Clear()
	assert.Equal(t, 0, d.Count())
	assert.False(t, d.ContainsKey(0))

	require.NoError(t, d.Add(0, 7), "cleared table accepts the old keys again")
}

func TestDictionary_NegativeCapacity(t *testing.T) {
	_, err := NewDictionary[uint32, uint32](-1)
	require.ErrorIs(t, err, ErrNegativeLength)
}
