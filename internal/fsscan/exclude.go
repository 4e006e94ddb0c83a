package fsscan

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// blocklist holds directory names that are pruned at any depth, independent
// of the exclusion set.
//
//nolint:gochecknoglobals // Fixed lookup table
var blocklist = map[string]struct{}{
	".Trash":          {},
	".Spotlight-V100": {},
	".TemporaryItems": {},
}

// Blocked reports whether a directory with the given base name is always pruned.
func Blocked(name string) bool {
	_, ok := blocklist[name]

	return ok
}

// ExclusionSet is a set of absolute directory prefixes. A path is excluded
// when it equals one of them or lies underneath one.
type ExclusionSet struct {
	prefixes []string
}

// NewExclusionSet resolves paths to cleaned absolute form. Empty entries are ignored.
func NewExclusionSet(paths []string) (ExclusionSet, error) {
	prefixes := make([]string, 0, len(paths))

	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		abs, err := filepath.Abs(p)
		if err != nil {
			return ExclusionSet{}, fmt.Errorf("resolving exclusion %q: %w", p, err)
		}

		prefixes = append(prefixes, filepath.Clean(abs))
	}

	sort.Strings(prefixes)

	return ExclusionSet{prefixes: prefixes}, nil
}

// Paths returns the resolved prefixes in sorted order.
func (s ExclusionSet) Paths() []string {
	return append([]string(nil), s.prefixes...)
}

// Contains reports whether path equals or is nested under any prefix in the set.
func (s ExclusionSet) Contains(path string) bool {
	path = filepath.Clean(path)

	for _, base := range s.prefixes {
		if isUnder(path, base) {
			return true
		}
	}

	return false
}

// isUnder compares whole path components, so /a/b does not cover /a/bc.
func isUnder(path, base string) bool {
	if path == base {
		return true
	}

	sep := string(filepath.Separator)
	if !strings.HasSuffix(base, sep) {
		base += sep
	}

	return strings.HasPrefix(path, base)
}
