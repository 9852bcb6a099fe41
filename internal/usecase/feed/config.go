package feed

import "strings"

// Config carries the publisher settings applied to every generated feed.
type Config struct {
	// BaseURL is the public origin of the feed server, without trailing slash.
	BaseURL string

	Title    string
	Subtitle string
	Rights   string

	AuthorName  string
	AuthorEmail string
	AuthorURI   string

	GeneratorName    string
	GeneratorURI     string
	GeneratorVersion string

	// MaxEntries caps entries per feed; non-positive means DefaultMaxEntries.
	MaxEntries int
}

// DefaultMaxEntries is used when Config.MaxEntries is not set.
const DefaultMaxEntries = 50

func (c Config) maxEntries() int {
	if c.MaxEntries <= 0 {
		return DefaultMaxEntries
	}
	return c.MaxEntries
}

// LatestPath is the route of the aggregated feed.
const LatestPath = "/feeds/latest.atom"

// LatestURL returns the public URL of the aggregated feed.
func (c Config) LatestURL() string {
	return strings.TrimRight(c.BaseURL, "/") + LatestPath
}

// SourceURL returns the public URL of the feed for one source.
func (c Config) SourceURL(sourceID int64) string {
	return strings.TrimRight(c.BaseURL, "/") + SourcePath(sourceID)
}
