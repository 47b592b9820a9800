// Package site captures and formats call sites for allocation diagnostics.
package site

import (
	"fmt"
	"runtime"
	"strings"
)

// maxFrames bounds how much of the stack a Site retains. Allocation sites
// only need enough context to point at the caller, not the full goroutine
// stack.
const maxFrames = 8

// Site is a captured call site: the program counters of the frames above
// the capture point, resolved lazily on formatting.
type Site struct {
	pcs []uintptr
}

// Capture records the call stack, skipping skip frames above the caller of
// Capture itself. Capture(0) starts at the immediate caller.
func Capture(skip int) Site {
	pcs := make([]uintptr, maxFrames)
	// +2 skips runtime.Callers and Capture.
	n := runtime.Callers(skip+2, pcs)
	return Site{pcs: pcs[:n]}
}

// IsZero reports whether s holds no captured frames.
func (s Site) IsZero() bool { return len(s.pcs) == 0 }

// ShortString returns the innermost frame as "file:line (func)".
func (s Site) ShortString() string {
	if s.IsZero() {
		return "<unknown>"
	}
	frames := runtime.CallersFrames(s.pcs)
	f, _ := frames.Next()
	return fmt.Sprintf("%s:%d (%s)", f.File, f.Line, f.Function)
}

// String returns all captured frames, one per line, innermost first.
func (s Site) String() string {
	if s.IsZero() {
		return "<unknown>"
	}
	var b strings.Builder
	frames := runtime.CallersFrames(s.pcs)
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "\t%s:%d (%s)\n", f.File, f.Line, f.Function)
		if !more {
			break
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
