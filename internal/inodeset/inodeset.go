// Package inodeset is the inode filter (spec §4.2): it admits a file iff
// its (device, inode) pair has not been seen before, so that hardlinked
// paths don't self-report as duplicates. On platforms without inode
// semantics it always admits, accepting hardlink-reported duplicates
// rather than fabricating an identity.
package inodeset

import "github.com/dupfind/dupfind/internal/fsid"

// Set tracks (device, inode) pairs seen so far. It is owned by exactly one
// goroutine (the traversal thread) and needs no locking.
type Set struct {
	seen map[fsid.ID]struct{}
}

// New returns an empty [Set].
func New() *Set {
	return &Set{seen: make(map[fsid.ID]struct{})}
}

// Admit reports whether id has not been seen before, recording it as seen
// if so. IDs without inode semantics are always admitted.
func (s *Set) Admit(id fsid.ID) bool {
	if !id.Comparable() {
		return true
	}
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	return true
}
