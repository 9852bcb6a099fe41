// Package config assembles the application settings for the feed server and
// exporter from environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"atomfeed/pkg/atom"
	envconfig "atomfeed/pkg/config"
)

// FeedConfig holds everything needed to publish feeds.
type FeedConfig struct {
	// BaseURL is the public origin used for feed ids and self links.
	// Default: "http://localhost:8080"
	BaseURL string

	// Title of the aggregated feed. Default: "Latest articles"
	Title string

	// Subtitle of the aggregated feed. Optional.
	Subtitle string

	// Author attached to every generated feed. Name is optional; when empty
	// no author element is produced.
	Author AuthorConfig

	// Rights is the rights statement of generated feeds. Optional.
	Rights string

	// Generator identifies this software in generated feeds.
	Generator GeneratorConfig

	// MaxEntries caps the number of entries per feed. Default: 50
	MaxEntries int

	// Indent is the indentation unit of rendered documents; empty renders compactly.
	// Default: two spaces
	Indent string

	HTTP   HTTPConfig
	Export ExportConfig
	Log    LogConfig
}

// AuthorConfig describes the feed author.
type AuthorConfig struct {
	Name  string
	Email string
	URI   string
}

// GeneratorConfig describes the <generator> element.
type GeneratorConfig struct {
	Name    string
	URI     string
	Version string
}

// HTTPConfig holds the feed server settings.
type HTTPConfig struct {
	// Port for the feed API. Default: 8080
	Port int
	// MetricsPort for /metrics and /health. Default: 9090
	MetricsPort int
	// RateLimit in requests per second across feed endpoints. Default: 10
	RateLimit float64
	// RateBurst is the token bucket size. Default: 20
	RateBurst int
	// ReadTimeout / WriteTimeout for the HTTP server. Default: 5s / 15s
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// ShutdownTimeout bounds graceful shutdown. Default: 10s
	ShutdownTimeout time.Duration
}

// ExportConfig holds the file exporter settings.
type ExportConfig struct {
	// Schedule is a standard five-field cron spec. Empty exports once.
	Schedule string
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is debug, info, warn or error. Default: "info"
	Level string
	// Format is json or text. Default: "json"
	Format string
}

// LoadFeedConfig loads feed configuration from environment variables and
// validates it. Returns a config with defaults if environment variables are not set.
func LoadFeedConfig() (*FeedConfig, error) {
	cfg := ReadFeedConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid feed configuration: %w", err)
	}
	return cfg, nil
}

// ReadFeedConfig reads the environment without validating, for callers that
// apply overrides first and call Validate afterwards.
func ReadFeedConfig() *FeedConfig {
	return &FeedConfig{
		BaseURL:  strings.TrimRight(envconfig.GetEnvString("FEED_BASE_URL", "http://localhost:8080"), "/"),
		Title:    envconfig.GetEnvString("FEED_TITLE", "Latest articles"),
		Subtitle: envconfig.GetEnvString("FEED_SUBTITLE", ""),
		Author: AuthorConfig{
			Name:  envconfig.GetEnvString("FEED_AUTHOR_NAME", ""),
			Email: envconfig.GetEnvString("FEED_AUTHOR_EMAIL", ""),
			URI:   envconfig.GetEnvString("FEED_AUTHOR_URI", ""),
		},
		Rights: envconfig.GetEnvString("FEED_RIGHTS", ""),
		Generator: GeneratorConfig{
			Name:    envconfig.GetEnvString("FEED_GENERATOR_NAME", "atomfeed"),
			URI:     envconfig.GetEnvString("FEED_GENERATOR_URI", ""),
			Version: envconfig.GetEnvString("FEED_GENERATOR_VERSION", ""),
		},
		MaxEntries: envconfig.GetEnvInt("FEED_MAX_ENTRIES", 50),
		Indent:     envconfig.GetEnvString("FEED_INDENT", "  "),
		HTTP: HTTPConfig{
			Port:            envconfig.GetEnvInt("PORT", 8080),
			MetricsPort:     envconfig.GetEnvInt("METRICS_PORT", 9090),
			RateLimit:       envconfig.GetEnvFloat("FEED_RATE_LIMIT", 10),
			RateBurst:       envconfig.GetEnvInt("FEED_RATE_BURST", 20),
			ReadTimeout:     envconfig.GetEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    envconfig.GetEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: envconfig.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Export: ExportConfig{
			Schedule: envconfig.GetEnvString("FEED_EXPORT_SCHEDULE", ""),
		},
		Log: LogConfig{
			Level:  envconfig.GetEnvString("LOG_LEVEL", "info"),
			Format: envconfig.GetEnvString("LOG_FORMAT", "json"),
		},
	}
}

// Validate checks configuration correctness.
func (c *FeedConfig) Validate() error {
	if err := validateAbsoluteURL("FEED_BASE_URL", c.BaseURL); err != nil {
		return err
	}
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("FEED_TITLE must not be empty")
	}
	if c.Author.Email != "" && !atom.IsEmail(c.Author.Email) {
		return fmt.Errorf("FEED_AUTHOR_EMAIL %q is not a valid email address", c.Author.Email)
	}
	if c.Author.Name == "" && (c.Author.Email != "" || c.Author.URI != "") {
		return errors.New("FEED_AUTHOR_NAME is required when an author email or URI is set")
	}
	if c.Generator.Name == "" && (c.Generator.URI != "" || c.Generator.Version != "") {
		return errors.New("FEED_GENERATOR_NAME is required when a generator URI or version is set")
	}
	if err := envconfig.ValidateIntRange(c.MaxEntries, 1, 1000); err != nil {
		return fmt.Errorf("FEED_MAX_ENTRIES: %w", err)
	}
	if strings.Trim(c.Indent, " \t") != "" {
		return fmt.Errorf("FEED_INDENT must contain only spaces and tabs, got %q", c.Indent)
	}
	if err := c.HTTP.validate(); err != nil {
		return err
	}
	if c.Export.Schedule != "" {
		if _, err := cron.ParseStandard(c.Export.Schedule); err != nil {
			return fmt.Errorf("FEED_EXPORT_SCHEDULE: %w", err)
		}
	}
	return nil
}

func (h HTTPConfig) validate() error {
	if err := envconfig.ValidateIntRange(h.Port, 1, 65535); err != nil {
		return fmt.Errorf("PORT: %w", err)
	}
	if err := envconfig.ValidateIntRange(h.MetricsPort, 1, 65535); err != nil {
		return fmt.Errorf("METRICS_PORT: %w", err)
	}
	if h.RateLimit <= 0 {
		return fmt.Errorf("FEED_RATE_LIMIT must be positive, got %v", h.RateLimit)
	}
	if h.RateBurst < 1 {
		return fmt.Errorf("FEED_RATE_BURST must be at least 1, got %d", h.RateBurst)
	}
	for name, d := range map[string]time.Duration{
		"HTTP_READ_TIMEOUT":     h.ReadTimeout,
		"HTTP_WRITE_TIMEOUT":    h.WriteTimeout,
		"HTTP_SHUTDOWN_TIMEOUT": h.ShutdownTimeout,
	} {
		if err := envconfig.ValidatePositiveDuration(d); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func validateAbsoluteURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}
