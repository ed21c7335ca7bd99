// Package watch monitors a task file for edits so the ranking can be
// recomputed live. Events are debounced: rapid save bursts from editors
// collapse into a single change notification.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // task file edited or created
	ChangeRemoved                    // task file deleted
)

// Change represents a detected change to the watched task file.
type Change struct {
	Kind ChangeKind
	File string // absolute path
}

// Watcher monitors a single task file for changes using fsnotify.
type Watcher struct {
	Path    string
	Changes <-chan Change // read-only external channel

	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// New creates a watcher for the given task file.
func New(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	w := &Watcher{
		Path:    path,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	return w, nil
}

// Start begins watching. The watch is registered on the containing directory
// because editors commonly replace files by rename, which drops a watch
// registered on the file itself.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: track last event time per file.
	const debounce = 100 * time.Millisecond
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file := range pending {
					w.emitChange(file, ChangeModified)
				}
				return
			}

			if filepath.Clean(event.Name) != filepath.Clean(w.Path) {
				continue
			}

			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.emitChange(event.Name, ChangeRemoved)
				delete(pending, event.Name)
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending[event.Name] = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			now := time.Now()
			for file, ts := range pending {
				if now.Sub(ts) >= debounce {
					w.emitChange(file, ChangeModified)
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

func (w *Watcher) emitChange(file string, kind ChangeKind) {
	w.changes <- Change{Kind: kind, File: file}
}
