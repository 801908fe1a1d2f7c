package comparator_test

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/dupfind/dupfind/internal/aggregator"
	"github.com/dupfind/dupfind/internal/comparator"
	"github.com/dupfind/dupfind/internal/diag"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func collect(group aggregator.Group) []comparator.DuplicateGroup {
	d := diag.New(io.Discard, false)
	var got []comparator.DuplicateGroup
	comparator.Compare(group, d, func(dg comparator.DuplicateGroup) {
		got = append(got, dg)
	})
	for _, dg := range got {
		sort.Strings(dg.Paths)
	}
	sort.Slice(got, func(i, j int) bool { return got[i].Paths[0] < got[j].Paths[0] })
	return got
}

func TestCompareTrivialPair(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte{0x42}, 10*1024)
	a := writeFile(t, dir, "a", content)
	b := writeFile(t, dir, "b", content)

	got := collect(aggregator.Group{Size: int64(len(content)), Paths: []string{a, b}})
	if len(got) != 1 || len(got[0].Paths) != 2 {
		t.Fatalf("got %+v, want one group of two files", got)
	}
}

func TestCompareThreeWayPartition(t *testing.T) {
	dir := t.TempDir()
	size := comparator.Block*2 + 17
	ab := bytes.Repeat([]byte{0x01}, size)
	cd := bytes.Repeat([]byte{0x02}, size)

	a := writeFile(t, dir, "a", ab)
	b := writeFile(t, dir, "b", ab)
	c := writeFile(t, dir, "c", cd)
	d := writeFile(t, dir, "d", cd)

	got := collect(aggregator.Group{Size: int64(size), Paths: []string{a, b, c, d}})
	if len(got) != 2 {
		t.Fatalf("got %d groups, want 2: %+v", len(got), got)
	}
	for _, g := range got {
		if len(g.Paths) != 2 {
			t.Fatalf("group %+v should have exactly 2 members", g)
		}
	}
}

func TestCompareDiffersOnlyLastByte(t *testing.T) {
	dir := t.TempDir()
	size := comparator.Block + 10
	a := bytes.Repeat([]byte{0x7}, size)
	b := append([]byte(nil), a...)
	b[size-1] = 0x8

	pa := writeFile(t, dir, "a", a)
	pb := writeFile(t, dir, "b", b)

	got := collect(aggregator.Group{Size: int64(size), Paths: []string{pa, pb}})
	if len(got) != 0 {
		t.Fatalf("got %+v, want no duplicate groups", got)
	}
}

func TestCompareSlowStrategyForLargeGroups(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte{0x9}, 1024)

	const n = 120 // >= 100 forces the Slow candidate strategy
	paths := make([]string, n)
	for i := range paths {
		paths[i] = writeFile(t, dir, fmt.Sprintf("f%03d", i), content)
	}

	got := collect(aggregator.Group{Size: int64(len(content)), Paths: paths})
	if len(got) != 1 || len(got[0].Paths) != n {
		t.Fatalf("got %d groups (first has %d paths), want one group of %d", len(got), len(got[0].Paths), n)
	}
}

func TestCompareDropsUnreadableCandidate(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte{0x5}, 1024)
	a := writeFile(t, dir, "a", content)
	b := writeFile(t, dir, "b", content)
	missing := filepath.Join(dir, "missing")

	got := collect(aggregator.Group{Size: int64(len(content)), Paths: []string{a, b, missing}})
	if len(got) != 1 || len(got[0].Paths) != 2 {
		t.Fatalf("got %+v, want one group of {a, b}", got)
	}
}
