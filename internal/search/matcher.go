package search

import "strings"

// Matcher is a compiled substring predicate for a single pattern.
// For case-insensitive matchers the pattern is lowered once at
// construction so per-line work stays a single transform and containment
// check.
type Matcher struct {
	pattern       string
	caseSensitive bool
}

// NewMatcher creates a matcher for pattern. The lower-case transform used
// for insensitive matching is strings.ToLower on both sides, which is
// locale-independent.
func NewMatcher(pattern string, caseSensitive bool) Matcher {
	if !caseSensitive {
		pattern = strings.ToLower(pattern)
	}
	return Matcher{pattern: pattern, caseSensitive: caseSensitive}
}

// Match reports whether line contains the matcher's pattern as a
// contiguous substring.
func (m Matcher) Match(line string) bool {
	if !m.caseSensitive {
		line = strings.ToLower(line)
	}
	return strings.Contains(line, m.pattern)
}

// CaseSensitive reports the matcher's comparison mode.
func (m Matcher) CaseSensitive() bool {
	return m.caseSensitive
}
