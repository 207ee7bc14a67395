package grocery

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the assistant when its backing data files are edited
// outside the process (a text editor on the JSON files, another one-shot
// invocation of the CLI). Only long-lived front-ends need one; one-shot
// commands read fresh state on startup anyway.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	assist   *Assistant
	log      *zap.Logger
	paths    map[string]bool
	debounce time.Duration
	lastSeen map[string]time.Time
	onReload func()
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher builds a watcher over the given data files. onReload, if
// non-nil, runs after every successful reload (front-ends use it to
// repaint).
func NewWatcher(assist *Assistant, log *zap.Logger, paths []string, onReload func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	watched := make(map[string]bool, len(paths))
	for _, p := range paths {
		watched[filepath.Clean(p)] = true
	}

	return &Watcher{
		watcher:  fsw,
		assist:   assist,
		log:      log,
		paths:    watched,
		debounce: 250 * time.Millisecond,
		lastSeen: make(map[string]time.Time),
		onReload: onReload,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Directories are watched rather than the files
// themselves so atomic rename-replace writes are still observed.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	dirs := make(map[string]bool)
	for p := range w.paths {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}

	w.running = true
	go w.loop()
	return nil
}

// Stop halts the watch loop and closes the underlying fsnotify watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) loop() {
	defer close(w.doneCh)
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	path := filepath.Clean(event.Name)
	if !w.paths[path] {
		return
	}

	// Editors and atomic saves fire bursts of events for one edit.
	now := time.Now()
	w.mu.Lock()
	last := w.lastSeen[path]
	w.lastSeen[path] = now
	w.mu.Unlock()
	if now.Sub(last) < w.debounce {
		return
	}

	w.log.Debug("data file changed", zap.String("path", path))
	if err := w.assist.Reload(); err != nil {
		w.log.Warn("reload failed", zap.String("path", path), zap.Error(err))
		return
	}
	if w.onReload != nil {
		w.onReload()
	}
}
