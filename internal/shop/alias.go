// Package shop builds and serves the merged catalog of game backup
// images across all configured source directories.
package shop

import (
	"fmt"
	"strings"
)

// defaultAlias is used for a source path with no usable final segment
// (e.g. the filesystem root).
const defaultAlias = "games"

// SourceDirectory pairs a physical directory with the short alias it is
// published under. Built once at startup; read-only afterwards.
type SourceDirectory struct {
	Path  string
	Alias string
}

// BuildAliases derives a unique alias for every source path. The alias is
// the path's basename; the Nth directory sharing a basename gets "-N"
// appended. Order of the input is preserved and determines numbering.
func BuildAliases(paths []string) []SourceDirectory {
	dirs := make([]SourceDirectory, 0, len(paths))
	seen := make(map[string]int, len(paths))

	for _, p := range paths {
		alias := basename(p)
		if alias == "" {
			alias = defaultAlias
		}
		seen[alias]++
		if n := seen[alias]; n > 1 {
			alias = fmt.Sprintf("%s-%d", alias, n)
		}
		dirs = append(dirs, SourceDirectory{Path: p, Alias: alias})
	}
	return dirs
}

// basename returns the final non-empty '/'-separated segment of p,
// or "" if p has none.
func basename(p string) string {
	segments := strings.Split(p, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}
