// Package diag is the diagnostic stream: every traversal, metadata, hashing,
// and comparison error is printed to standard error, one line each, prefixed
// by context. With Verbose set it also carries informational trace lines
// ("hashing ...", "comparing ..."). Per-file errors never abort a run; they
// are only ever reported here.
package diag

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Stream serializes writes to an underlying writer (normally os.Stderr) from
// any number of concurrent workers.
type Stream struct {
	w       io.Writer
	verbose bool
	mu      sync.Mutex
	errors  atomic.Uint64
}

// New returns a [*Stream] writing to w. Trace lines are only written when
// verbose is true; errors are always written.
func New(w io.Writer, verbose bool) *Stream {
	return &Stream{w: w, verbose: verbose}
}

// Errorf formats an error message and writes it.
func (s *Stream) Errorf(format string, args ...any) {
	s.errors.Add(1)
	s.writeln(fmt.Sprintf(format, args...))
}

// Error writes err prefixed by context.
func (s *Stream) Error(context string, err error) {
	s.errors.Add(1)
	s.writeln(fmt.Sprintf("%s: %s", context, err))
}

// ErrorCount returns the number of errors reported through Error/Errorf so
// far. It is safe to call concurrently with Error/Errorf.
func (s *Stream) ErrorCount() uint64 {
	return s.errors.Load()
}

// Tracef writes a trace line if verbose logging is enabled.
func (s *Stream) Tracef(format string, args ...any) {
	if !s.verbose {
		return
	}
	s.writeln(fmt.Sprintf(format, args...))
}

func (s *Stream) writeln(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, line)
}
