// Package entity defines the stored records that feeds are built from.
// Articles and sources are read from persistence and mapped onto Atom
// entries and feeds by the feed usecase.
package entity

import (
	"strings"
	"time"
)

// Article is a collected article that becomes one Atom entry.
type Article struct {
	ID          int64
	SourceID    int64
	Title       string
	URL         string
	Summary     string
	PublishedAt time.Time
	CreatedAt   time.Time
}

// Validate checks that the article carries enough data to be published.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if err := ValidateURL(a.URL); err != nil {
		return err
	}
	if a.Timestamp().IsZero() {
		return &ValidationError{Field: "published_at", Message: "article has no timestamp"}
	}
	return nil
}

// Timestamp returns PublishedAt, falling back to CreatedAt when the
// publication date is unknown.
func (a *Article) Timestamp() time.Time {
	if !a.PublishedAt.IsZero() {
		return a.PublishedAt
	}
	return a.CreatedAt
}
