// Package ui provides the terminal interface for bubble maps.
// This file implements the BackgroundWorker that reloads the data file off
// the UI thread.
package ui

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/bubblemap/pkg/loader"
	"github.com/vanderheijden86/bubblemap/pkg/model"
	"github.com/vanderheijden86/bubblemap/pkg/watcher"
)

// WorkerState represents the current state of the background worker.
type WorkerState int

const (
	// WorkerIdle means the worker is waiting for file changes.
	WorkerIdle WorkerState = iota
	// WorkerProcessing means the worker is loading a new snapshot.
	WorkerProcessing
	// WorkerStopped means the worker has been stopped.
	WorkerStopped
)

func (s WorkerState) String() string {
	switch s {
	case WorkerIdle:
		return "idle"
	case WorkerProcessing:
		return "processing"
	case WorkerStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// WorkerError wraps errors with phase and retry context.
type WorkerError struct {
	Phase   string    // "read", "parse", "place"
	Cause   error     // The underlying error
	Time    time.Time // When the error occurred
	Retries int       // Number of consecutive failures
}

func (e WorkerError) Error() string {
	return fmt.Sprintf("%s failed: %v (retries: %d)", e.Phase, e.Cause, e.Retries)
}

func (e WorkerError) Unwrap() error {
	return e.Cause
}

// DataSnapshot is a freshly loaded and placed graph.
type DataSnapshot struct {
	Graph    model.Snapshot
	Path     string
	DataHash string
	LoadedAt time.Time
}

// BackgroundWorker owns the file watcher, coalesces changes and loads
// snapshots off the UI thread.
type BackgroundWorker struct {
	dataPath      string
	debounceDelay time.Duration
	placements    []model.Point

	mu         sync.RWMutex
	state      WorkerState
	dirty      bool // a change came in while processing
	started    bool
	lastHash   string
	lastError  *WorkerError
	errorCount int

	watcher *watcher.Watcher
	send    func(tea.Msg)

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// WorkerConfig configures the BackgroundWorker.
type WorkerConfig struct {
	DataPath      string
	DebounceDelay time.Duration
	// Placements is the slot table for nodes without stored positions; nil
	// uses the default table.
	Placements []model.Point
	Program    *tea.Program
}

// NewBackgroundWorker creates a new background worker.
func NewBackgroundWorker(cfg WorkerConfig) (*BackgroundWorker, error) {
	ctx, cancel := context.WithCancel(context.Background())

	if cfg.DebounceDelay == 0 {
		cfg.DebounceDelay = watcher.DefaultDebounce
	}

	w := &BackgroundWorker{
		dataPath:      cfg.DataPath,
		debounceDelay: cfg.DebounceDelay,
		placements:    cfg.Placements,
		state:         WorkerIdle,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
	}
	if cfg.Program != nil {
		w.send = cfg.Program.Send
	}

	if cfg.DataPath != "" {
		fw, err := watcher.New(cfg.DataPath, cfg.DebounceDelay)
		if err != nil {
			cancel()
			return nil, err
		}
		w.watcher = fw
	}

	return w, nil
}

// Start begins watching for file changes. It is idempotent.
func (w *BackgroundWorker) Start() error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = true
	w.mu.Unlock()

	if w.watcher != nil {
		if err := w.watcher.Start(); err != nil {
			return err
		}
		go w.processLoop()
	} else {
		close(w.done)
	}
	return nil
}

// Stop halts the worker and releases the watcher. It is idempotent.
func (w *BackgroundWorker) Stop() {
	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	w.state = WorkerStopped
	wasStarted := w.started
	w.mu.Unlock()

	w.cancel()

	if w.watcher != nil {
		w.watcher.Stop()
	}

	if wasStarted {
		select {
		case <-w.done:
		case <-time.After(2 * time.Second):
		}
	}
}

// TriggerRefresh reloads the file now. A refresh requested while one is
// running is queued.
func (w *BackgroundWorker) TriggerRefresh() {
	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	if w.state == WorkerProcessing {
		w.dirty = true
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	go w.process()
}

// State returns the current worker state.
func (w *BackgroundWorker) State() WorkerState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

func (w *BackgroundWorker) processLoop() {
	defer close(w.done)

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-w.watcher.Changed():
			w.process()

		case err := <-w.watcher.Errors():
			log.Printf("watcher: %v", err)
		}
	}
}

func (w *BackgroundWorker) process() {
	w.mu.Lock()
	if w.state != WorkerIdle {
		if w.state == WorkerProcessing {
			w.dirty = true
		}
		w.mu.Unlock()
		return
	}
	w.state = WorkerProcessing
	w.dirty = false
	w.mu.Unlock()

	snapshot := w.buildSnapshot()

	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	wasDirty := w.dirty
	w.state = WorkerIdle
	w.mu.Unlock()

	if snapshot != nil {
		w.notify(SnapshotReadyMsg{Snapshot: snapshot})
	}

	if wasDirty {
		go w.process()
	}
}

func (w *BackgroundWorker) notify(msg tea.Msg) {
	if w.send != nil {
		w.send(msg)
	}
}

// safeCompute runs fn and converts both errors and panics into a WorkerError.
func (w *BackgroundWorker) safeCompute(phase string, fn func() error) *WorkerError {
	var result *WorkerError
	func() {
		defer func() {
			if r := recover(); r != nil {
				result = &WorkerError{
					Phase: phase,
					Cause: fmt.Errorf("panic: %v\n%s", r, debug.Stack()),
					Time:  time.Now(),
				}
			}
		}()
		if err := fn(); err != nil {
			result = &WorkerError{
				Phase: phase,
				Cause: err,
				Time:  time.Now(),
			}
		}
	}()
	return result
}

func (w *BackgroundWorker) recordError(err *WorkerError) {
	w.mu.Lock()
	w.lastError = err
	if err != nil {
		w.errorCount++
		err.Retries = w.errorCount
	} else {
		w.errorCount = 0
	}
	w.mu.Unlock()
}

// LastError returns the most recent error (nil if the last load succeeded).
func (w *BackgroundWorker) LastError() *WorkerError {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastError
}

func (w *BackgroundWorker) fail(err *WorkerError) *DataSnapshot {
	log.Printf("buildSnapshot: %s: %v", w.dataPath, err)
	w.recordError(err)
	w.notify(SnapshotErrorMsg{Err: err, Recoverable: true})
	return nil
}

// buildSnapshot reads, parses and places the data file. It returns nil when
// the path is empty, loading fails or the content is unchanged.
func (w *BackgroundWorker) buildSnapshot() *DataSnapshot {
	if w.dataPath == "" {
		return nil
	}
	start := time.Now()

	var data []byte
	if werr := w.safeCompute("read", func() error {
		var err error
		data, err = os.ReadFile(w.dataPath)
		return err
	}); werr != nil {
		return w.fail(werr)
	}

	hash := ComputeDataHash(data)
	w.mu.RLock()
	lastHash := w.lastHash
	w.mu.RUnlock()
	if hash == lastHash && lastHash != "" {
		log.Printf("buildSnapshot: content unchanged (hash=%s), skipping reload", hashPrefix(hash))
		w.recordError(nil)
		return nil
	}

	var snap model.Snapshot
	if werr := w.safeCompute("parse", func() error {
		var err error
		snap, err = loader.Parse(data, loader.DetectFormat(w.dataPath, data))
		return err
	}); werr != nil {
		return w.fail(werr)
	}

	if werr := w.safeCompute("place", func() error {
		loader.Place(snap.Nodes, w.placements)
		return nil
	}); werr != nil {
		return w.fail(werr)
	}

	w.recordError(nil)
	w.mu.Lock()
	w.lastHash = hash
	w.mu.Unlock()

	log.Printf("buildSnapshot: loaded %d bubbles, %d nodes, %d links in %v (hash=%s)",
		len(snap.Bubbles), len(snap.Nodes), len(snap.Links), time.Since(start), hashPrefix(hash))

	return &DataSnapshot{
		Graph:    snap,
		Path:     w.dataPath,
		DataHash: hash,
		LoadedAt: time.Now(),
	}
}

// ComputeDataHash returns a hex digest of the raw file contents.
func ComputeDataHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SnapshotReadyMsg is sent to the UI when a new snapshot is ready.
type SnapshotReadyMsg struct {
	Snapshot *DataSnapshot
}

// SnapshotErrorMsg is sent to the UI when a reload fails.
type SnapshotErrorMsg struct {
	Err         error
	Recoverable bool // true if we expect to recover on the next file change
}

func hashPrefix(hash string) string {
	if len(hash) > 16 {
		return hash[:16]
	}
	return hash
}

// Reload rereads the file now, even when its content is unchanged.
func (w *BackgroundWorker) Reload() {
	w.resetHash()
	w.TriggerRefresh()
}

// resetHash forces the next load to run even if the content is unchanged.
func (w *BackgroundWorker) resetHash() {
	w.mu.Lock()
	w.lastHash = ""
	w.mu.Unlock()
}
