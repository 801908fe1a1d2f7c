// Package walk is the traversal source (spec §4.1): given one or more root
// paths and a recursive flag, it yields every reachable regular file with
// its metadata. Symbolic links are never followed. Directory-reading and
// stat errors are reported to the diagnostic stream and skipped; they never
// abort the walk. Traversal order is unspecified.
package walk

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dupfind/dupfind/internal/diag"
	"github.com/dupfind/dupfind/internal/fsid"
	"github.com/dupfind/dupfind/internal/stats"
)

// Entry is a regular file discovered during a walk.
type Entry struct {
	Path string
	Size int64
	ID   fsid.ID
}

// Filter decides whether a directory entry's base name should be admitted.
// It is consulted for files only; directories are always descended into
// (recursion is controlled by Options.Recursive, not the filter).
type Filter func(name string) bool

// Options configures a walk.
type Options struct {
	// Recursive descends into subdirectories. When false, only direct
	// children of each root are visited (depth 1).
	Recursive bool
	// Filter admits or rejects files by base name. A nil Filter admits
	// everything.
	Filter Filter
}

// Walk visits every regular file beneath roots and calls emit for each one
// that passes opts.Filter. It runs entirely on the calling goroutine, as
// the traversal producer is meant to run on the pipeline's submitter
// thread (spec §4.7): dispatching per-file work onto a worker pool is the
// caller's responsibility, not this package's.
func Walk(roots []string, opts Options, st *stats.Statistics, diagStream *diag.Stream, emit func(Entry)) {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for _, root := range roots {
		if opts.Recursive {
			walkRecursive(root, opts, st, diagStream, emit)
		} else {
			walkShallow(root, opts, st, diagStream, emit)
		}
	}
}

func admit(name string, opts Options) bool {
	if opts.Filter == nil {
		return true
	}
	return opts.Filter(name)
}

func walkRecursive(root string, opts Options, st *stats.Statistics, diagStream *diag.Stream, emit func(Entry)) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			diagStream.Error("walk", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		st.DirEntries.Add(1)
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		visit(path, d, opts, st, diagStream, emit)
		return nil
	})
	if err != nil {
		diagStream.Error("walk", err)
	}
}

func walkShallow(root string, opts Options, st *stats.Statistics, diagStream *diag.Stream, emit func(Entry)) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		diagStream.Error("walk", err)
		return
	}
	st.DirEntries.Add(uint64(len(dirEntries)))
	for _, d := range dirEntries {
		if d.IsDir() || !d.Type().IsRegular() {
			continue
		}
		visit(filepath.Join(root, d.Name()), d, opts, st, diagStream, emit)
	}
}

func visit(path string, d fs.DirEntry, opts Options, st *stats.Statistics, diagStream *diag.Stream, emit func(Entry)) {
	if !admit(d.Name(), opts) {
		return
	}
	info, err := d.Info()
	if err != nil {
		diagStream.Error("stat "+path, err)
		return
	}
	size := info.Size()
	st.TotalBytes.Add(uint64(size))
	st.Files.Add(1)
	emit(Entry{
		Path: path,
		Size: size,
		ID:   fsid.Of(info),
	})
}
