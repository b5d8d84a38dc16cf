// Package watcher notices writes to the store file made by other mockbanker
// processes so the History tab can reload.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mockbanker/mockbanker/internal/log"
	"github.com/mockbanker/mockbanker/internal/pubsub"
)

// Config holds watcher options.
type Config struct {
	Path     string
	Debounce time.Duration
}

// DefaultConfig watches path with a 500ms debounce.
func DefaultConfig(path string) Config {
	return Config{Path: path, Debounce: 500 * time.Millisecond}
}

// Watcher publishes a ReloadedEvent carrying the store path once writes to
// the file (or its WAL) have been quiet for the debounce interval.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	broker   *pubsub.Broker[string]
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a stopped watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultConfig("").Debounce
	}
	return &Watcher{
		fsw:      fsw,
		path:     cfg.Path,
		debounce: cfg.Debounce,
		broker:   pubsub.NewBrokerWithBuffer[string](1),
		done:     make(chan struct{}),
	}, nil
}

// Broker is where change events are published.
func (w *Watcher) Broker() *pubsub.Broker[string] { return w.broker }

// Start watches the directory holding the store file.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "watching", "dir", dir, "debounce", w.debounce)
	go w.loop()
	return nil
}

// Stop ends the watch and closes the broker. Safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.broker.Close()
	})
	return err
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			log.Debug(log.CatWatcher, "store changed", "path", w.path)
			w.broker.Publish(pubsub.ReloadedEvent, w.path)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "fsnotify error", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	base := filepath.Base(w.path)
	name := filepath.Base(ev.Name)
	return name == base || name == base+"-wal"
}
