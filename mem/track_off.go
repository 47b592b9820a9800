//go:build memkit_notrack

package mem

// Tracking reports whether this build carries allocation tracking and
// bounds checks. This is the untracked build: every check below compiles
// to nothing and violating bounds or liveness is undefined behavior.
const Tracking = false

func registerAlloc(Address) {}

func unregisterAlloc(Address) error { return nil }

func rebaseAlloc(Address, Address) error { return nil }

func auditAllocs() error { return nil }

func isLiveAlloc(a Address) bool { return !a.IsNil() }

func ensureLive(Address) {}

func checkRange(Address, int, int) {}

func checkSpan(Address, int, int, int) {}
