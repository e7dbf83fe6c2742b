package vault

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// Watcher monitors a vault for notes and directories appearing, disappearing
// or being renamed, and calls onChange once a burst of events settles.
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	logger   *log.Logger
	onChange func()

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewWatcher registers the vault root and every visible subdirectory.
func NewWatcher(v Vault, logger *log.Logger, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		root:     v.Path,
		logger:   logger,
		onChange: onChange,
	}

	_ = filepath.Walk(v.Path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != v.Path {
				return filepath.SkipDir
			}
			w.add(path)
		}
		return nil
	})

	return w, nil
}

func (w *Watcher) add(path string) {
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("watch directory", "path", path, "err", err)
	}
}

// Start begins watching for changes. Blocks until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("vault watcher", "err", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Plain writes never change the tree.
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.add(event.Name)
		} else if !IsNote(name) {
			return
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	closed := w.closed
	w.timer = nil
	w.mu.Unlock()

	if !closed && w.onChange != nil {
		w.onChange()
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
