package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"atomfeed/internal/config"
	pgRepo "atomfeed/internal/infra/adapter/persistence/postgres"
	"atomfeed/internal/infra/db"
	"atomfeed/internal/resilience/circuitbreaker"
	"atomfeed/internal/resilience/retry"
	feedUC "atomfeed/internal/usecase/feed"
	"atomfeed/pkg/atom"
)

// loadConfig reads the environment, applies any flag overrides that were set,
// and validates the result.
func loadConfig(cmd *cobra.Command) (*config.FeedConfig, error) {
	cfg := config.ReadFeedConfig()

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.HTTP.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("metrics-port") {
		cfg.HTTP.MetricsPort, _ = flags.GetInt("metrics-port")
	}
	if flags.Changed("schedule") {
		cfg.Export.Schedule, _ = flags.GetString("schedule")
	}
	if flags.Changed("compact") {
		if compact, _ := flags.GetBool("compact"); compact {
			cfg.Indent = ""
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid feed configuration: %w", err)
	}
	return cfg, nil
}

// useCaseConfig maps the application settings onto the feed use case.
func useCaseConfig(cfg *config.FeedConfig) feedUC.Config {
	return feedUC.Config{
		BaseURL:          cfg.BaseURL,
		Title:            cfg.Title,
		Subtitle:         cfg.Subtitle,
		Rights:           cfg.Rights,
		AuthorName:       cfg.Author.Name,
		AuthorEmail:      cfg.Author.Email,
		AuthorURI:        cfg.Author.URI,
		GeneratorName:    cfg.Generator.Name,
		GeneratorURI:     cfg.Generator.URI,
		GeneratorVersion: cfg.Generator.Version,
		MaxEntries:       cfg.MaxEntries,
	}
}

// renderOptions returns the formatting for the configured indent; an empty
// indent renders compactly.
func renderOptions(indent string) []atom.RenderOption {
	if indent == "" {
		return []atom.RenderOption{atom.Compact()}
	}
	return []atom.RenderOption{atom.WithIndent("", indent)}
}

// connectDatabase opens PostgreSQL, retrying while the server comes up, and
// applies the schema.
func connectDatabase(ctx context.Context, logger *slog.Logger) (*sql.DB, error) {
	var database *sql.DB
	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		var err error
		database, err = db.Open(ctx, "")
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.MigrateUp(ctx, database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("database ready")
	return database, nil
}

// newFeedService wires the repositories behind one shared circuit breaker.
func newFeedService(database *sql.DB, cfg *config.FeedConfig) (*feedUC.Service, *circuitbreaker.CircuitBreaker) {
	cb := circuitbreaker.New(circuitbreaker.RepositoryConfig())
	return &feedUC.Service{
		Articles: circuitbreaker.NewGuardedArticleRepository(pgRepo.NewArticleRepo(database), cb),
		Sources:  circuitbreaker.NewGuardedSourceRepository(pgRepo.NewSourceRepo(database), cb),
		Config:   useCaseConfig(cfg),
	}, cb
}

// writeFileAtomic replaces path with data so readers never see a partial document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
