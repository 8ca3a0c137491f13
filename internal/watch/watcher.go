// Package watch re-runs the aggregation whenever new invoices land in a
// watched directory. Bursts of file events (Excel saves fire several per
// file) collapse into one run via a debounce timer.
package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mkalv/faktura/internal/source"
)

// Handler runs after the directory has settled.
type Handler func() error

// Watcher monitors one invoice directory.
type Watcher struct {
	dir      string
	debounce time.Duration
	handler  Handler
	logf     func(format string, args ...interface{})

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher for dir. debounce defaults to 2s when zero; logf
// may be nil.
func New(dir string, debounce time.Duration, logf func(string, ...interface{}), handler Handler) *Watcher {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &Watcher{dir: dir, debounce: debounce, handler: handler, logf: logf}
}

// Start watches the directory and blocks until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("could not watch %s: %w", w.dir, err)
	}
	w.logf("watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logf("watch error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !source.Supported(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.logf("directory settled, re-running aggregation")
		if err := w.handler(); err != nil {
			w.logf("aggregation failed: %v", err)
		}
	})
}
