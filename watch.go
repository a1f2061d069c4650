package bough

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce drops repeated events for one file within this window.
const watchDebounce = 100 * time.Millisecond

// SpecWatcher reports chart spec files that changed on disk. It watches the
// containing directories, so editors that replace files on save are seen.
type SpecWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]struct{}
	dirs    map[string]struct{} // watched whole
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// NewSpecWatcher watches paths, which may be chart spec files or
// directories. For a directory every chart spec file in it is reported.
func NewSpecWatcher(paths ...string) (*SpecWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]struct{})
	whole := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		dir := abs
		if IsChartSpecFile(abs) {
			files[abs] = struct{}{}
			dir = filepath.Dir(abs)
		} else {
			whole[abs] = struct{}{}
		}
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
		dirs[dir] = struct{}{}
	}

	sw := &SpecWatcher{
		watcher: w,
		files:   files,
		dirs:    whole,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go sw.run()
	return sw, nil
}

// Close stops the watcher and closes Events and Errors.
func (w *SpecWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
	})
	return err
}

func (w *SpecWatcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.doneCh)
	}()
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.wanted(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *SpecWatcher) wanted(name string) bool {
	if !IsChartSpecFile(name) {
		return false
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if _, ok := w.files[abs]; ok {
		return true
	}
	_, ok := w.dirs[filepath.Dir(abs)]
	return ok
}
