// Package aggregator is the hash aggregator (spec §4.5): a single-consumer
// map from (size, digest) to the list of paths that produced it. Buckets
// with more than one path are candidate groups, ready for the byte
// comparator.
package aggregator

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/dupfind/dupfind/internal/sparsehash"
)

// Result is what a sparse-hash job sends once it succeeds.
type Result struct {
	Size   int64
	Path   string
	Digest sparsehash.Digest
}

type key struct {
	size   int64
	digest sparsehash.Digest
}

// Aggregator owns the (size, digest) -> paths map. It is meant to be
// driven by a single goroutine draining a results channel (see
// internal/pipeline), matching spec §4.5's "single-consumer loop".
type Aggregator struct {
	buckets map[key][]string
}

// New returns an empty [Aggregator].
func New() *Aggregator {
	return &Aggregator{buckets: make(map[key][]string)}
}

// Add records one hash result.
func (a *Aggregator) Add(r Result) {
	k := key{size: r.Size, digest: r.Digest}
	a.buckets[k] = append(a.buckets[k], r.Path)
}

// Group is a candidate group: same size, same sparse hash, pending
// byte-exact comparison.
type Group struct {
	Size  int64
	Paths []string
}

// CandidateGroups returns every bucket with two or more paths, i.e. every
// group still eligible for byte comparison. Iteration order over the
// underlying map is randomized by Go itself, so keys are collected via
// maps.Keys and sorted for deterministic test output; output grouping
// across a real run is still unspecified per spec §9.
func (a *Aggregator) CandidateGroups() []Group {
	keys := maps.Keys(a.buckets)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].size != keys[j].size {
			return keys[i].size < keys[j].size
		}
		return string(keys[i].digest[:]) < string(keys[j].digest[:])
	})

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		paths := a.buckets[k]
		if len(paths) < 2 {
			continue
		}
		sorted := append([]string(nil), paths...)
		sort.Strings(sorted)
		groups = append(groups, Group{Size: k.size, Paths: sorted})
	}
	return groups
}
