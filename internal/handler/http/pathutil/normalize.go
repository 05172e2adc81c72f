package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Pre-compiled at initialization so normalization stays cheap on the hot path.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/articles/\d+$`), Template: "/api/articles/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /api/articles/123) to template format (/api/articles/:id).
// Static paths like /health and /metrics pass through unchanged.
//
// Query parameters and trailing slashes are stripped first:
//
//	NormalizePath("/api/articles/123?x=1") // "/api/articles/:id"
//	NormalizePath("/api/articles/123/")    // "/api/articles/:id"
//	NormalizePath("/api/articles/sync")    // "/api/articles/sync" (unchanged)
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return path
}
