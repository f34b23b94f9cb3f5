package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the global configuration whenever the config file changes.
// It blocks until stop is closed or the watcher fails. onReload, if non-nil,
// runs after every successful reload.
func Watch(stop <-chan struct{}, onReload func(*Config)) error {
	cfg := Get()
	configFile := cfg.ConfigFilePath()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory, not the file: editors and config management tools
	// replace the file, which drops a file-level watch.
	if err := watcher.Add(filepath.Dir(configFile)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(configFile), err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != configFile {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if err := Reload(); err != nil {
					continue
				}
				if onReload != nil {
					onReload(Get())
				}
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		case <-stop:
			return nil
		}
	}
}
