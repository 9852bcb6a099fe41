package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validArticle() *Article {
	return &Article{
		ID:          1,
		SourceID:    100,
		Title:       "Test Article",
		URL:         "https://example.com/article",
		Summary:     "This is a test article summary",
		PublishedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		CreatedAt:   time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC),
	}
}

func TestArticle_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(a *Article)
		wantField string
	}{
		{name: "valid", mutate: func(a *Article) {}},
		{name: "missing published falls back to created", mutate: func(a *Article) { a.PublishedAt = time.Time{} }},
		{name: "empty title", mutate: func(a *Article) { a.Title = "" }, wantField: "title"},
		{name: "blank title", mutate: func(a *Article) { a.Title = "   " }, wantField: "title"},
		{name: "empty url", mutate: func(a *Article) { a.URL = "" }, wantField: "url"},
		{name: "relative url", mutate: func(a *Article) { a.URL = "/posts/1" }, wantField: "url"},
		{
			name: "no timestamps",
			mutate: func(a *Article) {
				a.PublishedAt = time.Time{}
				a.CreatedAt = time.Time{}
			},
			wantField: "published_at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArticle()
			tt.mutate(a)

			err := a.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantField, ve.Field)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestArticle_Timestamp(t *testing.T) {
	a := validArticle()
	assert.Equal(t, a.PublishedAt, a.Timestamp())

	a.PublishedAt = time.Time{}
	assert.Equal(t, a.CreatedAt, a.Timestamp())
}

func TestSource_Updated(t *testing.T) {
	var s Source
	assert.True(t, s.Updated().IsZero())

	crawled := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s.LastCrawledAt = &crawled
	assert.Equal(t, crawled, s.Updated())
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "url", Message: "URL is required"}
	assert.Equal(t, "validation error on field 'url': URL is required", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "valid https URL", url: "https://example.com/feed", wantErr: false},
		{name: "valid http URL", url: "http://example.com/feed", wantErr: false},
		{name: "valid URL with port", url: "https://example.com:8080/feed", wantErr: false},
		{name: "valid URL with query", url: "https://example.com/feed?param=value", wantErr: false},
		{name: "empty URL", url: "", wantErr: true},
		{name: "invalid scheme - ftp", url: "ftp://example.com/feed", wantErr: true},
		{name: "invalid scheme - javascript", url: "javascript:alert(1)", wantErr: true},
		{name: "no host", url: "https://", wantErr: true},
		{name: "malformed", url: "http://[::1", wantErr: true},
		{name: "too long", url: "https://example.com/" + strings.Repeat("a", maxURLLength), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
