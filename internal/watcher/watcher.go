// Package watcher re-runs the diagnostic pass when the Homebrew prefix
// changes on disk.
package watcher

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches the burst of filesystem events a single
// `brew install` produces into one re-run.
const DefaultDebounce = 2 * time.Second

// Watcher observes a set of directories (typically the prefix's Cellar
// and Caskroom) and invokes onChange once per settled burst of events.
type Watcher struct {
	fsw      *fsnotify.Watcher
	paths    []string
	debounce time.Duration
	onChange func()
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New creates a Watcher over the given directories. Directories that do
// not exist are skipped; at least one must be watchable. A non-positive
// debounce falls back to DefaultDebounce.
func New(paths []string, debounce time.Duration, onChange func()) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback cannot be nil")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	var watched []string
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := fsw.Add(path); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", path, err)
		}
		watched = append(watched, path)
	}
	if len(watched) == 0 {
		fsw.Close()
		return nil, fmt.Errorf("none of the watch paths exist: %v", paths)
	}

	return &Watcher{
		fsw:      fsw,
		paths:    watched,
		debounce: debounce,
		onChange: onChange,
		stopCh:   make(chan struct{}),
	}, nil
}

// Paths returns the directories actually under watch.
func (w *Watcher) Paths() []string {
	return w.paths
}

// Start begins watching. Events are debounced: the callback fires once
// the filesystem has been quiet for the debounce interval.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case _, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			pending = false
			w.onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: %v\n", err)

		case <-w.stopCh:
			if pending && !timer.Stop() {
				<-timer.C
			}
			return
		}
	}
}

// Stop halts the watcher. Pending debounced events are dropped.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
