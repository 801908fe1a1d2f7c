package filterspec_test

import (
	"testing"

	"github.com/dupfind/dupfind/internal/filterspec"
)

func TestExcludeHidden(t *testing.T) {
	f, err := filterspec.New(filterspec.Options{ExcludeHidden: true})
	if err != nil {
		t.Fatal(err)
	}
	if f(".hidden") {
		t.Fatal("expected hidden file to be excluded")
	}
	if !f("visible") {
		t.Fatal("expected visible file to be admitted")
	}
}

func TestGlob(t *testing.T) {
	f, err := filterspec.New(filterspec.Options{Glob: "*.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if !f("notes.txt") {
		t.Fatal("expected notes.txt to match *.txt")
	}
	if f("notes.md") {
		t.Fatal("expected notes.md not to match *.txt")
	}
}

func TestRegexp(t *testing.T) {
	f, err := filterspec.New(filterspec.Options{Regexp: `^img-\d+\.png$`})
	if err != nil {
		t.Fatal(err)
	}
	if !f("img-42.png") {
		t.Fatal("expected img-42.png to match")
	}
	if f("img-42.jpg") {
		t.Fatal("expected img-42.jpg not to match")
	}
}

func TestGlobAndRegexpMutuallyExclusive(t *testing.T) {
	_, err := filterspec.New(filterspec.Options{Glob: "*.txt", Regexp: "foo"})
	if err == nil {
		t.Fatal("expected an error when both -f and -F are set")
	}
}

func TestNilFilterAdmitsEverything(t *testing.T) {
	f, err := filterspec.New(filterspec.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !f("anything") {
		t.Fatal("expected default filter to admit everything")
	}
}
