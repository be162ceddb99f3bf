// Package watch reports changes to a fixed set of snapshot files.
package watch

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is a set of change operations.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

func (op Op) String() string {
	names := []string{"create", "write", "remove", "rename", "chmod"}
	out := ""
	for i, n := range names {
		if op&(1<<i) != 0 {
			if out != "" {
				out += "|"
			}
			out += n
		}
	}
	if out == "" {
		return "none"
	}
	return out
}

// Event is a coalesced change to one watched file.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// Watcher watches the directories holding the files and filters by name,
// since editors commonly replace a file through a rename. Events for a file
// that arrive within the debounce window are merged into one.
type Watcher struct {
	w        *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration
	evC      chan Event
	erC      chan error
	done     chan struct{}
}

// New starts watching paths.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		w:        fw,
		files:    make(map[string]struct{}, len(paths)),
		debounce: debounce,
		evC:      make(chan Event, 64),
		erC:      make(chan error, 1),
		done:     make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	go w.loop()
	return w, nil
}

// Events is closed after Close.
func (w *Watcher) Events() <-chan Event { return w.evC }
func (w *Watcher) Errors() <-chan error { return w.erC }

func (w *Watcher) Close() error {
	close(w.done)
	return w.w.Close()
}

func (w *Watcher) loop() {
	defer close(w.evC)

	pending := make(map[string]Event)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			path := filepath.Clean(ev.Name)
			if _, watched := w.files[path]; !watched {
				continue
			}
			op := convert(ev.Op)
			if op == OpChmod {
				continue
			}
			p := pending[path]
			p.Path, p.Op, p.Time = path, p.Op|op, time.Now()
			pending[path] = p
			timer.Reset(w.debounce)

		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			select {
			case w.erC <- err:
			default:
			}

		case <-timer.C:
			if !w.flush(pending) {
				return
			}
		}
	}
}

// flush delivers pending events in path order. It reports false once the
// watcher is closed.
func (w *Watcher) flush(pending map[string]Event) bool {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		select {
		case w.evC <- pending[p]:
		case <-w.done:
			return false
		}
		delete(pending, p)
	}
	return true
}

func convert(in fsnotify.Op) Op {
	var op Op
	if in.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if in.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if in.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if in.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if in.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}
