package ioindex

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gnames/tsbrowse/pkg/index"
)

// Watch implements index.Builder.
func (b *builder) Watch(
	ctx context.Context,
	onBuild func(*index.Report, error),
) error {
	dir := filepath.Join(b.dataDir, filepath.Dir(documents))
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return WatchError(dir, err)
	}
	defer w.Close()

	if err = w.Add(dir); err != nil {
		return WatchError(dir, err)
	}
	slog.Info("Watching subject documents", "dir", dir,
		"debounce", b.debounce)

	onBuild(b.Build(ctx))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".json") || ev.Op == fsnotify.Chmod {
				continue
			}
			slog.Debug("Subject document changed",
				"file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(b.debounce)
			} else {
				timer.Reset(b.debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", "error", err)

		case <-fire:
			fire = nil
			onBuild(b.Build(ctx))
		}
	}
}
