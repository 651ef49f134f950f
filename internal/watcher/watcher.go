// Package watcher notifies the pager's event loop when the active
// document's underlying file changes on disk, the trigger for follow
// mode's reload-and-jump-to-bottom behavior (spec §4.5 "Follow mode",
// §5 "watcher events").
//
// Grounded on the fsnotify usage in other_examples/kyaoi-mdview__model.go
// (ensureWatcher/watchLoop: watch the containing directory rather than
// the file itself, since editors and log rotation commonly replace a
// file rather than write into it in place, and filter to
// Write/Create/Rename/Remove), generalized from that file's
// tea.Msg-pushing loop into a plain coalescing channel the way
// internal/search's StartCommittedSearch exposes a channel + cancel pair
// for its own background worker.
package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"vpager/internal/perr"
)

// relevantOps is the set of fsnotify operations that should trigger a
// reload — a metadata-only Chmod is not one of them.
const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher watches one file's containing directory and coalesces every
// relevant change into a signal on Events(). Multiple changes between
// two drains of Events collapse into one signal, since OnWatchEvent only
// cares that a reload is due, not how many writes produced it.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan struct{}
	done   chan struct{}
}

// New starts watching path's containing directory. The caller must call
// Close when done to release the fsnotify handle and stop the goroutine.
func New(path string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, perr.Wrap(perr.KindIO, path, err)
	}

	dir := filepath.Dir(path)
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, perr.Wrap(perr.KindIO, path, err)
	}

	w := &Watcher{
		fs:     fs,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go w.loop(filepath.Clean(path))
	return w, nil
}

// Events delivers a signal every time the watched file changes. The
// channel is buffered to 1 and the loop drops a signal rather than
// blocking if it's already full, so a burst of writes coalesces into a
// single pending reload instead of queuing one per write.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watch loop and releases the underlying fsnotify
// handle.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) loop(target string) {
	defer close(w.events)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&relevantOps == 0 {
				continue
			}
			select {
			case w.events <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Str("path", target).Msg("watcher error")
		case <-w.done:
			return
		}
	}
}
