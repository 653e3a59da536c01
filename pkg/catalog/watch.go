package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DebounceInterval groups bursts of file events into one reload
const DebounceInterval = 500 * time.Millisecond

// Watch loads path once and then again whenever it is written or recreated,
// until ctx is cancelled. Load failures are logged and the watch continues.
func Watch(ctx context.Context, path string, loader *Loader, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file, so watch the directory and filter by name.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	reload := func() {
		res, err := LoadFile(ctx, abs, loader)
		if err != nil {
			logger.Error("catalog reload failed", zap.String("path", abs), zap.Error(err))
			return
		}
		logger.Info("catalog reloaded", zap.String("path", abs), zap.Stringer("result", res))
	}

	logger.Info("watching catalog", zap.String("path", abs))
	reload()

	timer := time.NewTimer(DebounceInterval)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != abs {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				timer.Reset(DebounceInterval)
			}
		case <-timer.C:
			reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher error", zap.Error(err))
		case <-ctx.Done():
			return nil
		}
	}
}

// LoadFile parses and loads the catalog at path
func LoadFile(ctx context.Context, path string, loader *Loader) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return loader.LoadFromReader(ctx, f)
}
