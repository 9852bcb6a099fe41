package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events an editor produces on save.
const watchDebounce = 200 * time.Millisecond

// watchDefinition calls render after file is written or replaced, until ctx
// is done. Render failures are logged and the watch continues.
func watchDefinition(ctx context.Context, file string, render func() error, logger *slog.Logger) error {
	target, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	// エディタはファイルを置き換えるのでディレクトリを監視する
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", file, err)
	}
	logger.Info("watching feed definition", slog.String("definition", file))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			pending = time.After(watchDebounce)

		case <-pending:
			pending = nil
			if err := render(); err != nil {
				logger.Error("re-render failed",
					slog.String("definition", file),
					slog.Any("error", err))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("definition watcher error", slog.Any("error", err))
		}
	}
}
