package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

// InvalidPatternError names a glob pattern that failed to compile.
type InvalidPatternError struct {
	Pattern string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("%s %q", ErrInvalidGlobPattern.Error(), e.Pattern)
}

func (e *InvalidPatternError) Unwrap() error {
	return ErrInvalidGlobPattern
}

// GlobSet is a compiled list of patterns tied to a set of roots.
//
// A "*" matches across path separators. Relative patterns are matched against
// the path relative to each root that contains it. Patterns joined onto every
// root, and patterns written as absolute paths, are matched against the full
// path. A "**" segment also matches zero directories.
type GlobSet struct {
	configured int
	relative   []glob.Glob
	absolute   []glob.Glob
	roots      []string
}

// CompileGlobSet validates patterns and builds a GlobSet for the given roots.
// Invalid patterns are dropped; one error per dropped pattern is returned so
// the caller can report them. The returned set is never nil.
func CompileGlobSet(patterns, roots []string) (*GlobSet, []error) {
	set := &GlobSet{
		configured: len(patterns),
		roots:      roots,
	}

	var errs []error
	for _, pat := range patterns {
		compiled, err := compilePattern(filepath.ToSlash(pat))
		if err != nil {
			errs = append(errs, &InvalidPatternError{Pattern: pat})
			continue
		}
		if filepath.IsAbs(pat) {
			set.absolute = append(set.absolute, compiled...)
			continue
		}
		set.relative = append(set.relative, compiled...)

		for _, root := range roots {
			joined, err := compilePattern(filepath.ToSlash(filepath.Join(root, pat)))
			if err == nil {
				set.absolute = append(set.absolute, joined...)
			}
		}
	}
	return set, errs
}

// compilePattern compiles every form of pattern produced by expandRecursive.
func compilePattern(pattern string) ([]glob.Glob, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, ErrInvalidGlobPattern
	}
	forms := expandRecursive(pattern)
	compiled := make([]glob.Glob, 0, len(forms))
	for _, form := range forms {
		g, err := glob.Compile(form)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// expandRecursive lists the forms of pattern with each inner "**" segment
// either kept or removed, so "a/**/b" also matches "a/b".
func expandRecursive(pattern string) []string {
	segments := strings.Split(pattern, "/")
	forms := []string{""}
	for i, seg := range segments {
		last := i == len(segments)-1
		next := make([]string, 0, len(forms)*2)
		for _, form := range forms {
			if last {
				next = append(next, form+seg)
				continue
			}
			next = append(next, form+seg+"/")
			if seg == "**" {
				next = append(next, form)
			}
		}
		forms = next
	}
	return forms
}

// Empty reports whether no patterns were configured at all.
// A set whose patterns all failed to compile is not empty; it matches nothing.
func (g *GlobSet) Empty() bool {
	return g.configured == 0
}

// Len returns the number of compiled patterns.
func (g *GlobSet) Len() int {
	return len(g.relative) + len(g.absolute)
}

// Match reports whether path matches any compiled pattern. Paths outside
// every root only match absolute patterns.
func (g *GlobSet) Match(path string) bool {
	if matchAny(g.absolute, filepath.ToSlash(path)) {
		return true
	}
	for _, root := range g.roots {
		if rel, ok := relativeTo(root, path); ok && matchAny(g.relative, filepath.ToSlash(rel)) {
			return true
		}
	}
	return false
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
