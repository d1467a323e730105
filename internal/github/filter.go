package github

import (
	"path"
	"strings"
)

// Excluded reports whether p matches any of the configured glob patterns.
// Patterns without a slash also match against the base name, and a
// trailing "/**" matches everything under a directory.
func Excluded(p string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(pattern, p) {
			return true
		}
	}
	return false
}

func matchGlob(pattern, p string) bool {

	if ok, _ := path.Match(pattern, p); ok {
		return true
	}

	if !strings.Contains(pattern, "/") {
		if ok, _ := path.Match(pattern, path.Base(p)); ok {
			return true
		}
	}

	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}

	return false
}
