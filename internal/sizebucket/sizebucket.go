// Package sizebucket is the size bucket (spec §4.3): a mapping from file
// size to a small variant {Single(path), Multiple}. On the transition from
// empty -> Single -> Multiple it emits hashing jobs: first the stashed
// path, then every subsequent same-size arrival. Unique-size files are
// never hashed at all.
//
// Bucket is owned by exactly one goroutine (the traversal thread) and
// needs no locking.
package sizebucket

type state int

const (
	empty state = iota
	single
	multiple
)

// Bucket maps file size to the Single/Multiple variant.
type Bucket struct {
	entries map[int64]bucketEntry
}

type bucketEntry struct {
	state state
	path  string
}

// New returns an empty [Bucket].
func New() *Bucket {
	return &Bucket{entries: make(map[int64]bucketEntry)}
}

// Observe records that path has the given size and returns the paths (if
// any) that should now be submitted as hashing jobs:
//   - absent -> Single(path): no jobs.
//   - Single(prev) -> Multiple: prev then path.
//   - Multiple: path.
func (b *Bucket) Observe(size int64, path string) []string {
	e, ok := b.entries[size]
	if !ok {
		b.entries[size] = bucketEntry{state: single, path: path}
		return nil
	}
	switch e.state {
	case single:
		b.entries[size] = bucketEntry{state: multiple}
		return []string{e.path, path}
	default: // multiple
		return []string{path}
	}
}

// UniqueSizes returns the number of distinct sizes observed.
func (b *Bucket) UniqueSizes() int {
	return len(b.entries)
}
