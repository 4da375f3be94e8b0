package pathutil

import (
	"regexp"
	"strings"
)

type pathPattern struct {
	pattern  *regexp.Regexp
	template string
}

var pathPatterns = []pathPattern{
	{regexp.MustCompile(`^/topics/\d+$`), "/topics/:id"},
	{regexp.MustCompile(`^/newspapers/\d+$`), "/newspapers/:id"},
	{regexp.MustCompile(`^/redactors/\d+$`), "/redactors/:id"},
}

// NormalizePath converts paths with IDs (e.g. /topics/12) to their template
// (/topics/:id). Query strings and a trailing slash are dropped; unknown
// paths are returned unchanged.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}
