package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file at path whenever it is written, replaced or
// created, installs it as the global config and reports the outcome to
// onChange. A file that fails to parse or validate leaves the previous
// config in place. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(*HydraConfig, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors usually replace the file, so watch the directory.
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			cfg, err := LoadFile(path)
			if err == nil {
				err = cfg.Validate()
			}
			if err == nil {
				Set(cfg)
			}
			if onChange != nil {
				onChange(cfg, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onChange != nil {
				onChange(nil, err)
			}
		}
	}
}
