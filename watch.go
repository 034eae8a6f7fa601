package arbor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads a growth config file whenever it changes on
// disk. Events arrive on a background goroutine; the simulation thread
// calls Poll between ticks and only ever sees the newest valid config.
// A file that fails to parse or validate is logged and skipped, leaving
// the running tuning untouched.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	updates chan *GrowthConfig
}

// WatchConfig starts watching path for changes. The parent directory is
// watched rather than the file itself, so editors that replace the file
// on save keep triggering reloads.
func WatchConfig(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch growth config: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch growth config: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch growth config %s: %w", path, err)
	}
	cw := &ConfigWatcher{
		watcher: watcher,
		path:    abs,
		updates: make(chan *GrowthConfig, 1),
	}
	go cw.run()
	return cw, nil
}

// run consumes filesystem events until the watcher is closed.
func (cw *ConfigWatcher) run() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := LoadGrowthConfig(cw.path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "[arbor] config reload: %v\n", err)
				continue
			}
			// Keep only the newest pending config.
			select {
			case <-cw.updates:
			default:
			}
			cw.updates <- cfg
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "[arbor] config watch: %v\n", err)
		}
	}
}

// Poll returns the newest reloaded config, or false if nothing changed
// since the last call. It never blocks.
func (cw *ConfigWatcher) Poll() (*GrowthConfig, bool) {
	select {
	case cfg := <-cw.updates:
		return cfg, true
	default:
		return nil, false
	}
}

// Close stops watching. The background goroutine exits once the
// underlying event stream closes.
func (cw *ConfigWatcher) Close() error {
	return cw.watcher.Close()
}
