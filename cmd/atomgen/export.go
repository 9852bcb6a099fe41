package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"atomfeed/internal/handler/http/respond"
	"atomfeed/internal/observability/metrics"
	"atomfeed/pkg/atom"
)

// exportTimeout bounds one export run.
const exportTimeout = 2 * time.Minute

// renderer is the part of the feed service the exporter needs.
type renderer interface {
	RenderLatest(ctx context.Context, opts ...atom.RenderOption) (string, error)
	RenderSource(ctx context.Context, sourceID int64, opts ...atom.RenderOption) (string, error)
	ActiveSourceIDs(ctx context.Context) ([]int64, error)
}

// exportJob writes feeds to files.
type exportJob struct {
	svc      renderer
	path     string
	sourceID int64 // 0 exports the aggregated feed

	// sourcesDir receives <id>/feed.atom for every active source when set.
	sourcesDir string
	opts       []atom.RenderOption
	logger     *slog.Logger
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a feed from the article database to a file",
		Long: `Export renders the aggregated feed, or one source's feed with --source, and
writes it atomically to --output. With --sources-dir it also writes
<dir>/<id>/feed.atom for every active source, the same layout the feed server
uses. With --schedule (a five-field cron spec, default FEED_EXPORT_SCHEDULE)
it keeps running and re-exports on every tick.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}
	cmd.Flags().StringP("output", "o", "", "output path")
	cmd.Flags().Int64("source", 0, "export the feed of this source ID instead of the aggregated feed")
	cmd.Flags().String("sources-dir", "", "directory receiving one feed per active source")
	cmd.Flags().String("schedule", "", "cron schedule (overrides FEED_EXPORT_SCHEDULE)")
	cmd.Flags().Bool("compact", false, "render without indentation")
	cmd.MarkFlagsOneRequired("output", "sources-dir")
	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	sourceID, _ := cmd.Flags().GetInt64("source")
	sourcesDir, _ := cmd.Flags().GetString("sources-dir")
	if sourceID < 0 {
		return fmt.Errorf("--source must be a positive source ID, got %d", sourceID)
	}
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := connectDatabase(ctx, logger)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	svc, _ := newFeedService(database, cfg)
	job := &exportJob{
		svc:        svc,
		path:       output,
		sourceID:   sourceID,
		sourcesDir: sourcesDir,
		opts:       renderOptions(cfg.Indent),
		logger:     logger,
	}

	if cfg.Export.Schedule == "" {
		return job.run(ctx)
	}
	return job.schedule(ctx, cfg.Export.Schedule)
}

// run renders the configured feeds and replaces their files.
func (j *exportJob) run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	var errs []error
	if j.path != "" {
		errs = append(errs, j.export(ctx, j.path, j.sourceID))
	}
	if j.sourcesDir != "" {
		errs = append(errs, j.exportSources(ctx))
	}
	return errors.Join(errs...)
}

// exportSources writes one feed per active source. A failing source does not
// stop the others.
func (j *exportJob) exportSources(ctx context.Context) error {
	ids, err := j.svc.ActiveSourceIDs(ctx)
	if err != nil {
		metrics.RecordFeedExport(err)
		j.logger.Error("listing sources for export failed",
			slog.String("error", respond.SanitizeError(err)))
		return err
	}

	var errs []error
	for _, id := range ids {
		dir := filepath.Join(j.sourcesDir, strconv.FormatInt(id, 10))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			metrics.RecordFeedExport(err)
			errs = append(errs, err)
			continue
		}
		if err := j.export(ctx, filepath.Join(dir, "feed.atom"), id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// export renders one feed (sourceID 0 is the aggregated feed) to path.
func (j *exportJob) export(ctx context.Context, path string, sourceID int64) error {
	start := time.Now()

	var (
		doc string
		err error
	)
	if sourceID > 0 {
		doc, err = j.svc.RenderSource(ctx, sourceID, j.opts...)
	} else {
		doc, err = j.svc.RenderLatest(ctx, j.opts...)
	}
	if err == nil {
		err = writeFileAtomic(path, []byte(doc))
	}
	metrics.RecordFeedExport(err)

	if err != nil {
		j.logger.Error("feed export failed",
			slog.String("output", path),
			slog.Int64("source_id", sourceID),
			slog.String("error", respond.SanitizeError(err)))
		return err
	}
	j.logger.Info("feed exported",
		slog.String("output", path),
		slog.Int64("source_id", sourceID),
		slog.Int("bytes", len(doc)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// schedule exports immediately and then on every cron tick until ctx is done.
// Failed runs are logged and retried on the next tick.
func (j *exportJob) schedule(ctx context.Context, spec string) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, func() { _ = j.run(ctx) }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	_ = j.run(ctx)
	c.Start()
	j.logger.Info("export scheduler started", slog.String("schedule", spec))

	<-ctx.Done()
	// 実行中のジョブを待つ
	<-c.Stop().Done()
	j.logger.Info("export scheduler stopped")
	return nil
}
