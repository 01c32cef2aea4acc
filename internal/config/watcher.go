package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"selfsvc/internal/logger"
)

// Watcher monitors the configuration file and invokes a callback with
// the freshly parsed configuration on every modification. A file that
// reloads badly is reported and skipped; the previous configuration
// stays in effect.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(*Config)

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
}

// NewWatcher creates a watcher for the configuration file at path.
func NewWatcher(path string, onChange func(*Config)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:     path,
		watcher:  w,
		onChange: onChange,
		stopChan: make(chan struct{}),
	}, nil
}

// Start begins watching. The parent directory is watched rather than
// the file itself so atomic replace-on-save editors keep working.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	log := logger.WithComponent("config-watcher")
	log.Info().
		Str("path", w.path).
		Msg("Watching configuration file")

	go w.watch()
	return nil
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	return w.watcher.Close()
}

func (w *Watcher) watch() {
	log := logger.WithComponent("config-watcher")
	filename := filepath.Base(w.path)

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			cfg, err := Load(w.path)
			if err != nil {
				log.Error().Err(err).Str("path", w.path).Msg("Failed to reload configuration")
				continue
			}

			log.Info().Str("path", w.path).Str("event", event.Op.String()).Msg("Configuration reloaded")
			if w.onChange != nil {
				w.onChange(cfg)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Str("path", w.path).Msg("Configuration watcher error")
		}
	}
}
