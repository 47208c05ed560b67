package routematch

import "strings"

// Matcher holds an ordered list of path patterns. Matching walks the list in
// the order the patterns were given and stops at the first hit, so more
// specific patterns should come before broader ones.
type Matcher struct {
	patterns []pattern
}

type pattern struct {
	raw      string
	segments []string
}

// New compiles the given patterns into a matcher. Empty patterns are skipped.
func New(patterns ...string) *Matcher {
	m := &Matcher{patterns: make([]pattern, 0, len(patterns))}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		m.patterns = append(m.patterns, pattern{
			raw:      p,
			segments: splitPath(p),
		})
	}
	return m
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int { return len(m.patterns) }

// Matches reports whether the path matches any pattern. The first matching
// pattern wins; order is the order passed to New.
func (m *Matcher) Matches(path string) bool {
	_, ok := m.Match(path)
	return ok
}

// Match returns the first pattern matching the path, if any.
func (m *Matcher) Match(path string) (string, bool) {
	segs := splitPath(path)
	for _, p := range m.patterns {
		if matchSegments(p.segments, segs) {
			return p.raw, true
		}
	}
	return "", false
}

// MatchPattern reports whether a single pattern matches the path. Patterns
// use "/"-separated segments where "*" matches any characters within one
// segment and "**" matches zero or more whole segments.
func MatchPattern(pat, path string) bool {
	return matchSegments(splitPath(pat), splitPath(path))
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pat, path []string) bool {
	if len(pat) == 0 {
		return len(path) == 0
	}

	if pat[0] == "**" {
		// "**" absorbs zero or more segments.
		if matchSegments(pat[1:], path) {
			return true
		}
		return len(path) > 0 && matchSegments(pat, path[1:])
	}

	if len(path) == 0 {
		return false
	}

	return matchSegment(pat[0], path[0]) && matchSegments(pat[1:], path[1:])
}

// matchSegment matches one path segment against a pattern segment where "*"
// stands for any run of characters, e.g. "*.js" or "v*".
func matchSegment(pat, seg string) bool {
	if !strings.Contains(pat, "*") {
		return pat == seg
	}

	parts := strings.Split(pat, "*")

	if !strings.HasPrefix(seg, parts[0]) {
		return false
	}
	seg = seg[len(parts[0]):]

	last := parts[len(parts)-1]
	if !strings.HasSuffix(seg, last) {
		return false
	}
	seg = seg[:len(seg)-len(last)]

	for _, mid := range parts[1 : len(parts)-1] {
		idx := strings.Index(seg, mid)
		if idx < 0 {
			return false
		}
		seg = seg[idx+len(mid):]
	}

	return true
}
