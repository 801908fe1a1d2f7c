package sparsehash_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dupfind/dupfind/internal/sparsehash"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOfIdenticalSmallFiles(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte("a"), 1000)
	a := writeFile(t, dir, "a", content)
	b := writeFile(t, dir, "b", content)

	da, err := sparsehash.Of(a, int64(len(content)))
	if err != nil {
		t.Fatal(err)
	}
	db, err := sparsehash.Of(b, int64(len(content)))
	if err != nil {
		t.Fatal(err)
	}
	if da != db {
		t.Fatal("identical small files must have identical sparse digests")
	}
}

func TestOfEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty", nil)
	d, err := sparsehash.Of(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if d != sparsehash.Empty {
		t.Fatal("empty file must hash to sparsehash.Empty")
	}
}

func TestOfDiffersOnDifferentContent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a", []byte("hello"))
	b := writeFile(t, dir, "b", []byte("world"))

	da, err := sparsehash.Of(a, 5)
	if err != nil {
		t.Fatal(err)
	}
	db, err := sparsehash.Of(b, 5)
	if err != nil {
		t.Fatal(err)
	}
	if da == db {
		t.Fatal("different content must not collide for such a short input")
	}
}

// TestOfIgnoresBytesInsideGap covers spec.md's "false sparse-hash positive"
// scenario: two files that agree on every sampled block but differ inside
// the skipped gap must still hash identically (the byte comparator, not the
// sparse hash, is responsible for catching this divergence).
func TestOfIgnoresBytesInsideGap(t *testing.T) {
	dir := t.TempDir()
	size := 2*sparsehash.Block + sparsehash.Gap
	a := bytes.Repeat([]byte{0xAB}, size)
	b := append([]byte(nil), a...)
	b[sparsehash.Block+5000] = 0xCD // inside the skipped gap

	pa := writeFile(t, dir, "a", a)
	pb := writeFile(t, dir, "b", b)

	da, err := sparsehash.Of(pa, int64(size))
	if err != nil {
		t.Fatal(err)
	}
	db, err := sparsehash.Of(pb, int64(size))
	if err != nil {
		t.Fatal(err)
	}
	if da != db {
		t.Fatal("sparse hash must ignore bytes inside the gap")
	}
}
