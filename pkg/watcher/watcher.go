// Package watcher reports when a data file changes on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher signals on Changed after the watched file has been written and
// then left alone for the debounce interval.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration

	changed chan struct{}
	errs    chan error

	mu      sync.Mutex
	timer   *time.Timer
	started bool
	stopped bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a watcher for path. A debounce <= 0 uses DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     abs,
		watcher:  fw,
		debounce: debounce,
		changed:  make(chan struct{}, 1),
		errs:     make(chan error, 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Changed delivers one value per settled change. Signals that arrive while a
// previous one is unread are merged.
func (w *Watcher) Changed() <-chan struct{} { return w.changed }

// Errors delivers watcher errors. Unread errors are dropped.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Start begins watching. The parent directory is watched rather than the
// file so atomic rename-on-save keeps working.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop shuts the watcher down and waits for its loop to exit. It is safe to
// call more than once, and before Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	started := w.started
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	w.cancel()
	w.watcher.Close()
	if started {
		<-w.done
	}
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

// schedule restarts the debounce timer; only the last event of a burst fires.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	if w.ctx.Err() != nil {
		return
	}
	select {
	case w.changed <- struct{}{}:
	default:
	}
}
