// Package pipeline is the Executor and Finder orchestration (spec §4.7): a
// fixed-size thread pool of ncpu+1 workers driven through two sequential
// scopes. Scope A is the hashing phase (traversal on the submitter
// goroutine, sparse-hash jobs on the pool, one long-lived aggregator job);
// its exit means every hash has been aggregated. Scope B is the comparison
// phase (one comparison job per candidate group, one long-lived printer
// job); its exit means every group has been compared and reported.
package pipeline

import (
	"context"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
	goheap "github.com/twpayne/go-heap"

	"github.com/dupfind/dupfind/internal/aggregator"
	"github.com/dupfind/dupfind/internal/comparator"
	"github.com/dupfind/dupfind/internal/diag"
	"github.com/dupfind/dupfind/internal/inodeset"
	"github.com/dupfind/dupfind/internal/sizebucket"
	"github.com/dupfind/dupfind/internal/sparsehash"
	"github.com/dupfind/dupfind/internal/stats"
	"github.com/dupfind/dupfind/internal/walk"
)

// channelBufferCapacity is the buffer capacity between pipeline stages.
// Larger values let stages run at different speeds at the cost of memory.
const channelBufferCapacity = 1024

// Options configures a run.
type Options struct {
	Roots     []string
	Recursive bool
	Filter    walk.Filter
	// MinSize and MaxSize bound admitted file sizes. MaxSize < 0 means
	// unbounded.
	MinSize int64
	MaxSize int64
}

type pathWithSize struct {
	path string
	size int64
}

// Run executes one full find-duplicates pass, calling onGroup once per
// [comparator.DuplicateGroup] as it's produced. It returns the run's
// statistics.
func Run(opts Options, diagStream *diag.Stream, onGroup func(comparator.DuplicateGroup)) *stats.Statistics {
	st := &stats.Statistics{}
	workers := runtime.NumCPU() + 1

	agg := runHashPhase(opts, workers, st, diagStream)
	runComparePhase(agg, workers, st, diagStream, onGroup)

	st.Errors.Store(diagStream.ErrorCount())
	return st
}

// runHashPhase is Scope A.
func runHashPhase(opts Options, workers int, st *stats.Statistics, diagStream *diag.Stream) *aggregator.Aggregator {
	agg := aggregator.New()
	hashResultsCh := make(chan aggregator.Result, channelBufferCapacity)

	scope := pool.New().WithMaxGoroutines(workers)
	// Submitted first so it claims a permanent slot in the pool for the
	// whole phase, exactly like the aggregator job in the original
	// scoped_pool design this mirrors.
	scope.Go(func() {
		for r := range hashResultsCh {
			agg.Add(r)
		}
	})

	pendingHashCh := make(chan pathWithSize)
	// Reorders pending hash jobs by descending size so the largest,
	// highest-value duplicate candidates resolve first.
	prioritized := goheap.PriorityChannel(context.Background(), pendingHashCh, func(a, b pathWithSize) bool {
		return a.size > b.size
	})

	var hashWG sync.WaitGroup
	var dispatcher conc.WaitGroup
	dispatcher.Go(func() {
		for job := range prioritized {
			job := job
			hashWG.Add(1)
			scope.Go(func() {
				defer hashWG.Done()
				hashOne(job, st, diagStream, hashResultsCh)
			})
		}
	})

	inodes := inodeset.New()
	sizes := sizebucket.New()
	walk.Walk(opts.Roots, walk.Options{Recursive: opts.Recursive, Filter: opts.Filter}, st, diagStream, func(e walk.Entry) {
		if e.Size < opts.MinSize {
			return
		}
		if opts.MaxSize >= 0 && e.Size > opts.MaxSize {
			return
		}
		if !inodes.Admit(e.ID) {
			return
		}
		for _, p := range sizes.Observe(e.Size, e.Path) {
			pendingHashCh <- pathWithSize{path: p, size: e.Size}
		}
	})
	close(pendingHashCh)

	dispatcher.Wait() // every hash job has been submitted to scope
	hashWG.Wait()     // every hash job has completed
	close(hashResultsCh)
	scope.Wait() // the aggregator has drained hashResultsCh

	st.UniqueSizes.Store(uint64(sizes.UniqueSizes()))
	return agg
}

func hashOne(job pathWithSize, st *stats.Statistics, diagStream *diag.Stream, resultsCh chan<- aggregator.Result) {
	diagStream.Tracef("hashing %s...", job.path)
	// sparsehash.Of only opens a file when size > 0 (an empty file hashes to
	// sparsehash.Empty without ever touching the filesystem), so the open
	// count must follow that same condition.
	if job.size > 0 {
		st.FilesOpened.Add(1)
	}
	digest, err := sparsehash.Of(job.path, job.size)
	if err != nil {
		diagStream.Error("hash", err)
		return
	}
	st.BytesHashed.Add(uint64(job.size))
	resultsCh <- aggregator.Result{Size: job.size, Path: job.path, Digest: digest}
}

// runComparePhase is Scope B.
func runComparePhase(agg *aggregator.Aggregator, workers int, st *stats.Statistics, diagStream *diag.Stream, onGroup func(comparator.DuplicateGroup)) {
	groupsCh := make(chan comparator.DuplicateGroup, channelBufferCapacity)

	var printer conc.WaitGroup
	printer.Go(func() {
		for g := range groupsCh {
			st.Groups.Add(1)
			extra := uint64(len(g.Paths) - 1)
			st.DuplicateFiles.Add(extra)
			st.DuplicateBytes.Add(uint64(g.Size) * extra)
			onGroup(g)
		}
	})

	scope := pool.New().WithMaxGoroutines(workers)
	var compareWG sync.WaitGroup
	for _, group := range agg.CandidateGroups() {
		group := group
		compareWG.Add(1)
		scope.Go(func() {
			defer compareWG.Done()
			comparator.Compare(group, diagStream, func(dg comparator.DuplicateGroup) {
				groupsCh <- dg
			})
		})
	}
	compareWG.Wait()
	close(groupsCh)
	printer.Wait()
	scope.Wait()
}
