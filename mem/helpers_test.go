package mem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mustAlloc allocates n bytes and registers cleanup so bounds-violation
// tests cannot leak into other tests' audits.
func mustAlloc(t *testing.T, n int) Address {
	t.Helper()
	a, err := Alloc(n)
	require.NoError(t, err, "Alloc(%d) should succeed", n)
	t.Cleanup(func() {
		if Tracking && !IsLive(a) {
			return
		}
		_ = Free(a)
	})
	return a
}

// requirePanicsIs asserts fn panics with an error matching target.
func requirePanicsIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error, got %T", r)
		require.ErrorIs(t, err, target)
	}()
	fn()
}
