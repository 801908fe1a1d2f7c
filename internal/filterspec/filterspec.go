// Package filterspec builds the traversal's filename filter from the -H
// (hidden), -f (glob), and -F (regex) flags. -f and -F are mutually
// exclusive; [New] rejects options that set both.
package filterspec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dupfind/dupfind/internal/walk"
)

// Options configures the filter.
type Options struct {
	ExcludeHidden bool
	Glob          string
	Regexp        string
}

// New builds a [walk.Filter] from opts. It returns an error if both Glob and
// Regexp are set, or if either fails to compile; this is an argument error (spec §7) and should
// abort the run before any traversal begins.
func New(opts Options) (walk.Filter, error) {
	if opts.Glob != "" && opts.Regexp != "" {
		return nil, fmt.Errorf("-f and -F are mutually exclusive")
	}

	var pattern func(name string) bool
	switch {
	case opts.Glob != "":
		if !doublestar.ValidatePattern(opts.Glob) {
			return nil, fmt.Errorf("invalid glob pattern %q", opts.Glob)
		}
		glob := opts.Glob
		pattern = func(name string) bool {
			ok, _ := doublestar.Match(glob, name)
			return ok
		}
	case opts.Regexp != "":
		re, err := regexp.Compile(opts.Regexp)
		if err != nil {
			return nil, fmt.Errorf("invalid regexp %q: %w", opts.Regexp, err)
		}
		pattern = re.MatchString
	}

	excludeHidden := opts.ExcludeHidden
	return func(name string) bool {
		if excludeHidden && strings.HasPrefix(name, ".") {
			return false
		}
		if pattern != nil {
			return pattern(name)
		}
		return true
	}, nil
}
