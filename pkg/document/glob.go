package document

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ignoredDirs are never descended into during discovery. Dot-directories
// are skipped as well.
var ignoredDirs = map[string]bool{
	"node_modules":  true,
	"target":        true,
	"__generated__": true,
}

// GlobSet is a compiled list of glob patterns. Patterns support *, ** and
// ?; a leading ! turns a pattern into an exclusion. A path matches the set
// when at least one inclusion matches and no exclusion does.
type GlobSet struct {
	includes []string
	excludes []string
}

// CompileGlobs normalizes and splits patterns into inclusions and
// exclusions.
func CompileGlobs(patterns []string) (*GlobSet, error) {
	set := &GlobSet{}
	for _, pattern := range patterns {
		negated := strings.HasPrefix(pattern, "!")
		if negated {
			pattern = pattern[1:]
		}
		normalized := normalizePath(pattern)
		if normalized == "" {
			return nil, errors.Errorf("empty glob pattern")
		}
		if negated {
			set.excludes = append(set.excludes, normalized)
		} else {
			set.includes = append(set.includes, normalized)
		}
	}
	if len(set.includes) == 0 {
		return nil, errors.Errorf("no positive glob pattern given")
	}
	return set, nil
}

// Matches reports whether the path matches the set.
func (s *GlobSet) Matches(p string) bool {
	p = normalizePath(p)
	for _, exclude := range s.excludes {
		if matchGlob(exclude, p) {
			return false
		}
	}
	for _, include := range s.includes {
		if matchGlob(include, p) {
			return true
		}
	}
	return false
}

// Roots returns the static directory prefixes of the inclusion patterns,
// the places discovery starts walking from.
func (s *GlobSet) Roots() []string {
	seen := map[string]bool{}
	var roots []string
	for _, include := range s.includes {
		root := staticPrefix(include)
		if seen[root] {
			continue
		}
		seen[root] = true
		roots = append(roots, root)
	}
	sort.Strings(roots)
	return roots
}

// FindFiles walks the filesystem below the pattern roots and returns all
// matching file paths, sorted and deduplicated.
func FindFiles(fsys afero.Fs, patterns []string) ([]string, error) {
	set, err := CompileGlobs(patterns)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var files []string
	for _, root := range set.Roots() {
		walkErr := afero.Walk(fsys, root, func(walkPath string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			name := info.Name()
			if info.IsDir() {
				if walkPath != root && (strings.HasPrefix(name, ".") || ignoredDirs[name]) {
					return filepath.SkipDir
				}
				return nil
			}
			normalized := normalizePath(walkPath)
			if seen[normalized] || !set.Matches(normalized) {
				return nil
			}
			seen[normalized] = true
			files = append(files, normalized)
			return nil
		})
		if walkErr != nil && !os.IsNotExist(walkErr) {
			return nil, errors.Wrapf(walkErr, "failed to walk %s", root)
		}
	}
	sort.Strings(files)
	return files, nil
}

// normalizePath converts a path to slash form without a leading "./".
func normalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	return path.Clean(p)
}

// staticPrefix returns the directory part of a pattern before its first
// meta character.
func staticPrefix(pattern string) string {
	segments := strings.Split(pattern, "/")
	var static []string
	for _, segment := range segments {
		if strings.ContainsAny(segment, "*?[") {
			break
		}
		static = append(static, segment)
	}
	if len(static) == len(segments) && len(segments) > 0 {
		// Fully static pattern names a file, walk its directory.
		static = static[:len(static)-1]
	}
	if len(static) == 0 {
		return "."
	}
	return strings.Join(static, "/")
}

// matchGlob matches a slash-separated path against a pattern where **
// spans any number of segments, * matches within a segment and ? matches
// a single character.
func matchGlob(pattern, p string) bool {
	return matchSegments(strings.Split(pattern, "/"), strings.Split(p, "/"))
}

func matchSegments(pattern, parts []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			if len(pattern) == 1 {
				return true
			}
			for skip := 0; skip <= len(parts); skip++ {
				if matchSegments(pattern[1:], parts[skip:]) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 || !matchSegment(pattern[0], parts[0]) {
			return false
		}
		pattern = pattern[1:]
		parts = parts[1:]
	}
	return len(parts) == 0
}

func matchSegment(pattern, segment string) bool {
	matched, err := path.Match(pattern, segment)
	return err == nil && matched
}
