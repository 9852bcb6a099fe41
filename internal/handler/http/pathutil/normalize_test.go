package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "source feed", path: "/sources/42/feed.atom", expected: "/sources/:id/feed.atom"},
		{name: "source feed with bad id", path: "/sources/abc/feed.atom", expected: "/sources/:id/feed.atom"},
		{name: "source feed with query", path: "/sources/7/feed.atom?since=1", expected: "/sources/:id/feed.atom"},
		{name: "latest feed", path: "/feeds/latest.atom", expected: "/feeds/latest.atom"},
		{name: "latest feed trailing slash", path: "/feeds/latest.atom/", expected: "/feeds/latest.atom"},
		{name: "health", path: "/health", expected: "/health"},
		{name: "liveness", path: "/health/live", expected: "/health/live"},
		{name: "metrics", path: "/metrics", expected: "/metrics"},
		{name: "root", path: "/", expected: "/"},
		{name: "unknown", path: "/wp-login.php", expected: Unmatched},
		{name: "nested source path", path: "/sources/1/2/feed.atom", expected: Unmatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePath(tt.path))
		})
	}
}

func TestExpectedCardinality(t *testing.T) {
	assert.Equal(t, 7, ExpectedCardinality())
}
