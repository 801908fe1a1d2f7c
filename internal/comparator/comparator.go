// Package comparator is the byte comparator (spec §4.6): given a candidate
// group of same-size, same-sparse-hash paths, it splits the group into zero
// or more exact-duplicate sets by reading every member concurrently[1]
// block by block, recursively partitioning on buffer divergence.
//
// [1] "Concurrently" at the group level: each call to Compare drives one
// group's comparison loop on its own goroutine (see internal/pipeline);
// within a single call, reads are sequential over that group's candidates.
package comparator

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/dupfind/dupfind/internal/aggregator"
	"github.com/dupfind/dupfind/internal/diag"
)

// fastThreshold is the group-size cutoff between the Fast and Slow
// candidate strategies (spec §4.6).
const fastThreshold = 100

// Block is the read granularity used while comparing.
const Block = 4096

// DuplicateGroup is (size, paths) with len(Paths) >= 2; every pair in Paths
// is byte-identical over [0, Size).
type DuplicateGroup struct {
	Size  int64
	Paths []string
}

// candidate is per-file comparator state: either a live open file handle
// (fastCandidate) or a stored offset with per-block open-seek-read
// (slowCandidate). A single Compare invocation uses one variant uniformly.
type candidate interface {
	path() string
	buf() []byte
	readBlock() (n int, err error)
}

type fastCandidate struct {
	p     string
	f     *os.File
	block [Block]byte
	n     int
}

func (c *fastCandidate) path() string { return c.p }
func (c *fastCandidate) buf() []byte  { return c.block[:c.n] }
func (c *fastCandidate) readBlock() (int, error) {
	n, err := c.f.Read(c.block[:])
	c.n = n
	return n, err
}

type slowCandidate struct {
	p     string
	pos   int64
	block [Block]byte
	n     int
}

func (c *slowCandidate) path() string { return c.p }
func (c *slowCandidate) buf() []byte  { return c.block[:c.n] }
func (c *slowCandidate) readBlock() (int, error) {
	f, err := os.Open(c.p)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	if _, err := f.Seek(c.pos, io.SeekStart); err != nil {
		return 0, err
	}
	n, err := f.Read(c.block[:])
	c.n = n
	c.pos += int64(n)
	return n, err
}

// Compare drives one candidate group to completion, calling emit once per
// resulting duplicate group (there may be zero, one, or several: a group
// that diverges internally splits into multiple output groups).
func Compare(group aggregator.Group, diagStream *diag.Stream, emit func(DuplicateGroup)) {
	for _, p := range group.Paths {
		diagStream.Tracef("comparing %s...", p)
	}

	todo := openCandidates(group.Paths, diagStream)
	defer closeAll(todo)
	if len(todo) < 2 {
		return
	}
	compareInner(group.Size, todo, diagStream, func(paths []string) {
		emit(DuplicateGroup{Size: group.Size, Paths: paths})
	})
}

func openCandidates(paths []string, diagStream *diag.Stream) []candidate {
	candidates := make([]candidate, 0, len(paths))
	if len(paths) < fastThreshold {
		for _, p := range paths {
			f, err := os.Open(p)
			if err != nil {
				diagStream.Error("compare", err)
				continue
			}
			candidates = append(candidates, &fastCandidate{p: p, f: f})
		}
		return candidates
	}
	for _, p := range paths {
		candidates = append(candidates, &slowCandidate{p: p})
	}
	return candidates
}

func closeAll(candidates []candidate) {
	for _, c := range candidates {
		if fc, ok := c.(*fastCandidate); ok {
			fc.f.Close()
		}
	}
}

// compareInner is the partitioning loop described in spec §4.6. todo has
// length >= 2 on entry.
func compareInner(size int64, todo []candidate, diagStream *diag.Stream, emit func([]string)) {
	for {
		kept := todo[:1:1]
		var diverged []candidate
		for _, c := range todo[1:] {
			if bytes.Equal(c.buf(), todo[0].buf()) {
				kept = append(kept, c)
			} else {
				diverged = append(diverged, c)
			}
		}
		todo = kept

		if len(diverged) >= 2 {
			// diverged candidates keep their current buffer contents and
			// re-check that buffer as their first step on recursion, which
			// is correct because they already agree with each other on it.
			compareInner(size, diverged, diagStream, emit)
		}

		if len(todo) < 2 {
			return
		}

		survivors := make([]candidate, 0, len(todo))
		reachedEOF := false
		for i, c := range todo {
			n, err := c.readBlock()
			if err != nil && !errors.Is(err, io.EOF) {
				diagStream.Error("compare "+c.path(), err)
				continue
			}
			if n == 0 {
				survivors = append(survivors, c)
				survivors = append(survivors, todo[i+1:]...)
				reachedEOF = true
				break
			}
			survivors = append(survivors, c)
		}

		if reachedEOF {
			if len(survivors) >= 2 {
				emit(pathsOf(survivors))
			}
			return
		}
		todo = survivors
	}
}

func pathsOf(candidates []candidate) []string {
	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		paths = append(paths, c.path())
	}
	return paths
}
