package unmanaged

import (
	"testing"

	"github.com/stretchr/testify/require"
)

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
