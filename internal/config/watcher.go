package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// reloadDelay lets editors finish writing before the file is re-read.
const reloadDelay = 200 * time.Millisecond

// Watch re-loads configPath whenever it is written and passes the result
// to onChange. Invalid files are logged and skipped. Watch returns once
// the watcher is running; it stops when ctx is cancelled.
func Watch(ctx context.Context, configPath string, logger *logrus.Logger, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		watcher.Close()
		return err
	}

	target := filepath.Clean(configPath)
	go func() {
		defer watcher.Close()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					pending = time.After(reloadDelay)
				}

			case <-pending:
				pending = nil
				cfg, err := LoadConfig(configPath)
				if err != nil {
					logger.WithError(err).WithField("config_path", configPath).Warn("Ignoring invalid configuration change")
					continue
				}
				logger.WithField("config_path", configPath).Info("Configuration reloaded")
				onChange(cfg)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithError(err).Error("Config watcher error")
			}
		}
	}()

	logger.WithField("config_path", configPath).Debug("Config watcher started")
	return nil
}
