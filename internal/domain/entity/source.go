package entity

import "time"

// Source represents a news feed source in the system.
// Each active source is published as its own Atom feed.
type Source struct {
	ID            int64
	Name          string
	FeedURL       string
	LastCrawledAt *time.Time
	Active        bool
}

// Updated returns the time the source was last crawled, or the zero time.
func (s *Source) Updated() time.Time {
	if s.LastCrawledAt == nil {
		return time.Time{}
	}
	return *s.LastCrawledAt
}
