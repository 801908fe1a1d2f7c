// dupfind finds groups of byte-identical regular files beneath one or more
// filesystem roots, in parallel.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/dupfind/dupfind/internal/diag"
	"github.com/dupfind/dupfind/internal/filterspec"
	"github.com/dupfind/dupfind/internal/pipeline"
	"github.com/dupfind/dupfind/internal/sink"
)

func run() error {
	minSize := pflag.StringP("minsize", "m", "1", "minimum file size to consider")
	maxSize := pflag.StringP("maxsize", "M", "", "maximum file size to consider")
	excludeHidden := pflag.BoolP("hidden", "H", false, "exclude filenames starting with '.'")
	nonRecursive := pflag.BoolP("non-recursive", "S", false, "don't scan recursively in directories")
	grandTotal := pflag.BoolP("total", "t", false, "report a grand total of duplicates")
	singleLine := pflag.BoolP("single-line", "s", false, "report dupes on a single line")
	verbose := pflag.BoolP("verbose", "v", false, "verbose operation")
	nul := pflag.BoolP("nul", "0", false, "with -s, separate dupes with NUL")
	glob := pflag.StringP("glob", "f", "", "check only filenames matching this glob pattern")
	regexp := pflag.StringP("regexp", "F", "", "check only filenames matching this regular expression")
	printStatistics := pflag.Bool("stats", false, "print run statistics to stderr")
	pflag.Parse()

	minSizeBytes, err := humanize.ParseBytes(*minSize)
	if err != nil {
		return fmt.Errorf("invalid -m value %q: %w", *minSize, err)
	}

	maxSizeBytes := int64(-1)
	if *maxSize != "" {
		parsed, err := humanize.ParseBytes(*maxSize)
		if err != nil {
			return fmt.Errorf("invalid -M value %q: %w", *maxSize, err)
		}
		maxSizeBytes = int64(parsed)
	}

	filter, err := filterspec.New(filterspec.Options{
		ExcludeHidden: *excludeHidden,
		Glob:          *glob,
		Regexp:        *regexp,
	})
	if err != nil {
		return err
	}

	roots := pflag.Args()
	if len(roots) == 0 {
		roots = []string{"."}
	}

	diagStream := diag.New(os.Stderr, *verbose)
	resultSink := sink.New(os.Stdout, sink.Format{SingleLine: *singleLine, NUL: *nul})

	opts := pipeline.Options{
		Roots:     roots,
		Recursive: !*nonRecursive,
		Filter:    filter,
		MinSize:   int64(minSizeBytes),
		MaxSize:   maxSizeBytes,
	}
	runStats := pipeline.Run(opts, diagStream, resultSink.Write)

	if *grandTotal {
		resultSink.PrintSummary(os.Stdout)
	}

	if *printStatistics {
		if err := runStats.Print(os.Stderr); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
