// Package sink is the result sink (spec §4.8): for each received duplicate
// group it writes a formatted record under a lock and accumulates tallies
// for the optional grand-total summary.
package sink

import (
	"fmt"
	"io"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/dupfind/dupfind/internal/comparator"
)

// Format selects the output layout.
type Format struct {
	// SingleLine prints one group per line instead of the multi-line
	// "Size N bytes:" block.
	SingleLine bool
	// NUL separates paths with a NUL byte instead of a space and ends each
	// group with two NUL bytes instead of a newline. Only meaningful with
	// SingleLine; the multi-line layout ignores it.
	NUL bool
}

// Sink writes duplicate groups to w and tracks totals.
type Sink struct {
	w      io.Writer
	format Format

	mu             sync.Mutex
	groups         uint64
	duplicateFiles uint64
	duplicateBytes uint64
}

// New returns a [*Sink] writing to w.
func New(w io.Writer, format Format) *Sink {
	return &Sink{w: w, format: format}
}

// Write reports one duplicate group.
func (s *Sink) Write(g comparator.DuplicateGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups++
	s.duplicateFiles += uint64(len(g.Paths) - 1)
	s.duplicateBytes += uint64(g.Size) * uint64(len(g.Paths)-1)

	if s.format.SingleLine {
		s.writeSingleLine(g)
	} else {
		s.writeMultiLine(g)
	}
}

func (s *Sink) writeMultiLine(g comparator.DuplicateGroup) {
	fmt.Fprintf(s.w, "Size %d bytes:\n", g.Size)
	for _, p := range g.Paths {
		fmt.Fprintf(s.w, "    %s\n", p)
	}
	fmt.Fprintln(s.w)
}

func (s *Sink) writeSingleLine(g comparator.DuplicateGroup) {
	for i, p := range g.Paths {
		fmt.Fprint(s.w, p)
		if i < len(g.Paths)-1 {
			if s.format.NUL {
				fmt.Fprint(s.w, "\x00")
			} else {
				fmt.Fprint(s.w, " ")
			}
		}
	}
	if s.format.NUL {
		fmt.Fprint(s.w, "\x00\x00")
	} else {
		fmt.Fprintln(s.w)
	}
}

// PrintSummary writes the grand-total summary (the -t flag).
func (s *Sink) PrintSummary(w io.Writer) {
	s.mu.Lock()
	groups, files, size := s.groups, s.duplicateFiles, s.duplicateBytes
	s.mu.Unlock()

	fmt.Fprintln(w, "Overall results:")
	fmt.Fprintf(w, "    %d groups of duplicate files\n", groups)
	fmt.Fprintf(w, "    %d files are duplicates\n", files)
	fmt.Fprintf(w, "    %s of space taken by duplicates\n", humanize.IBytes(size))
}
