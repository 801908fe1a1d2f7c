// Package stats holds the run's counters. Fields are padded to a cache line
// so that independent hasher and comparator goroutines hammering separate
// counters don't false-share a cache line.
package stats

import (
	"encoding/json"
	"io"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Statistics accumulates counters across a single run. All fields are safe
// for concurrent use.
type Statistics struct {
	Errors         atomic.Uint64
	_              cpu.CacheLinePad
	DirEntries     atomic.Uint64
	_              cpu.CacheLinePad
	Files          atomic.Uint64
	_              cpu.CacheLinePad
	TotalBytes     atomic.Uint64
	_              cpu.CacheLinePad
	FilesOpened    atomic.Uint64
	_              cpu.CacheLinePad
	BytesHashed    atomic.Uint64
	_              cpu.CacheLinePad
	UniqueSizes    atomic.Uint64
	_              cpu.CacheLinePad
	Groups         atomic.Uint64
	_              cpu.CacheLinePad
	DuplicateFiles atomic.Uint64
	_              cpu.CacheLinePad
	DuplicateBytes atomic.Uint64
}

// Snapshot is a point-in-time, print-friendly copy of [Statistics].
type Snapshot struct {
	Errors         uint64
	DirEntries     uint64
	Files          uint64
	TotalBytes     uint64
	FilesOpened    uint64
	BytesHashed    uint64
	UniqueSizes    uint64
	Groups         uint64
	DuplicateFiles uint64
	DuplicateBytes uint64
}

// Snapshot reads all counters.
func (s *Statistics) Snapshot() Snapshot {
	return Snapshot{
		Errors:         s.Errors.Load(),
		DirEntries:     s.DirEntries.Load(),
		Files:          s.Files.Load(),
		TotalBytes:     s.TotalBytes.Load(),
		FilesOpened:    s.FilesOpened.Load(),
		BytesHashed:    s.BytesHashed.Load(),
		UniqueSizes:    s.UniqueSizes.Load(),
		Groups:         s.Groups.Load(),
		DuplicateFiles: s.DuplicateFiles.Load(),
		DuplicateBytes: s.DuplicateBytes.Load(),
	}
}

// Print writes a snapshot of s to w as indented JSON.
func (s *Statistics) Print(w io.Writer) error {
	snapshot := s.Snapshot()
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Errors             uint64  `json:"errors"`
		DirEntries         uint64  `json:"dirEntries"`
		Files              uint64  `json:"files"`
		FilesOpened        uint64  `json:"filesOpened"`
		FilesOpenedPercent float64 `json:"filesOpenedPercent"`
		TotalBytes         uint64  `json:"totalBytes"`
		BytesHashed        uint64  `json:"bytesHashed"`
		BytesHashedPercent float64 `json:"bytesHashedPercent"`
		UniqueSizes        uint64  `json:"uniqueSizes"`
		Groups             uint64  `json:"groups"`
		DuplicateFiles     uint64  `json:"duplicateFiles"`
		DuplicateBytes     uint64  `json:"duplicateBytes"`
	}{
		Errors:             snapshot.Errors,
		DirEntries:         snapshot.DirEntries,
		Files:              snapshot.Files,
		FilesOpened:        snapshot.FilesOpened,
		FilesOpenedPercent: 100 * float64(snapshot.FilesOpened) / max(1, float64(snapshot.Files)),
		TotalBytes:         snapshot.TotalBytes,
		BytesHashed:        snapshot.BytesHashed,
		BytesHashedPercent: 100 * float64(snapshot.BytesHashed) / max(1, float64(snapshot.TotalBytes)),
		UniqueSizes:        snapshot.UniqueSizes,
		Groups:             snapshot.Groups,
		DuplicateFiles:     snapshot.DuplicateFiles,
		DuplicateBytes:     snapshot.DuplicateBytes,
	})
}
