// Package pathutil turns request paths into low-cardinality metric labels
// and parses numeric path parameters.
package pathutil

import (
	"regexp"
	"strings"
)

// Unmatched is the label used for paths outside the known route set.
const Unmatched = "/unmatched"

// PathPattern maps a dynamic route to its template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/sources/[^/]+/feed\.atom$`), Template: "/sources/:id/feed.atom"},
}

var staticPaths = map[string]struct{}{
	"/":                  {},
	"/feeds/latest.atom": {},
	"/health":            {},
	"/health/live":       {},
	"/metrics":           {},
}

// NormalizePath converts a request path into a route label, e.g.
//
//	NormalizePath("/sources/42/feed.atom")  // "/sources/:id/feed.atom"
//	NormalizePath("/feeds/latest.atom?x=1") // "/feeds/latest.atom"
//	NormalizePath("/wp-login.php")          // "/unmatched"
//
// Any path outside the known routes collapses into Unmatched so scanners
// cannot inflate the label set.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return Unmatched
}

// ExpectedCardinality returns the number of distinct labels NormalizePath can produce.
func ExpectedCardinality() int {
	return len(staticPaths) + len(pathPatterns) + 1
}
