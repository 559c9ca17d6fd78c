package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDelay = 500 * time.Millisecond

// Watcher reloads the configuration when the file named by CONFIG_FILE
// changes and hands the validated result to registered callbacks.
type Watcher struct {
	path   string
	load   func() (*Config, error)
	logger *zap.Logger
	delay  time.Duration

	mu        sync.RWMutex
	current   *Config
	callbacks []func(old, new *Config)

	fs       *fsnotify.Watcher
	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher starts watching path. The parent directory is watched so
// editors that replace the file by rename are still noticed.
func NewWatcher(path string, initial *Config, load func() (*Config, error), logger *zap.Logger) (*Watcher, error) {
	return newWatcher(path, initial, load, logger, debounceDelay)
}

func newWatcher(path string, initial *Config, load func() (*Config, error), logger *zap.Logger, delay time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fs.Close()
		return nil, err
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		load:    load,
		logger:  logger.Named("config"),
		delay:   delay,
		current: initial,
		fs:      fs,
		done:    make(chan struct{}),
	}
	go w.loop()

	w.logger.Info("Configuration hot reloading enabled", zap.String("file", abs))
	return w, nil
}

// OnChange registers fn to run after every successful reload.
func (w *Watcher) OnChange(fn func(old, new *Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// Current returns the most recently loaded configuration.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Stop ends the watch loop. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		_ = w.fs.Close()
		<-w.done
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.delay, w.reload)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	next, err := w.load()
	if err != nil {
		w.logger.Error("Invalid configuration after reload, keeping previous", zap.Error(err))
		return
	}

	w.mu.Lock()
	old := w.current
	w.current = next
	callbacks := append([]func(old, new *Config){}, w.callbacks...)
	w.mu.Unlock()

	w.logger.Info("Configuration reloaded", zap.Int("callbacks", len(callbacks)))
	for _, fn := range callbacks {
		fn(old, next)
	}
}
