package config

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Writes to the same file inside this window collapse into one callback, so
// editors that truncate-then-write on save trigger a single reload.
const debounceWindow = 200 * time.Millisecond

// Watcher invokes a callback whenever a file with a watched extension changes
// under the watched directories. The callback runs on the watcher goroutine;
// hand off to the game loop (a buffered channel, an atomic flag) rather than
// touching scene state directly.
type Watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
	once sync.Once
}

// WatchDirs watches dirs for changes to files matching exts (".yaml",
// ".tengo", ...) and calls onChange with each changed path.
func WatchDirs(onChange func(path string), exts []string, dirs ...string) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("config: watch: nil callback")
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch: %w", err)
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, fmt.Errorf("config: watch %s: %w", dir, err)
		}
	}

	want := make(map[string]bool, len(exts))
	for _, ext := range exts {
		want[strings.ToLower(ext)] = true
	}

	w := &Watcher{fs: fs, done: make(chan struct{})}
	go w.run(onChange, want)
	return w, nil
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run(onChange func(string), want map[string]bool) {
	lastSeen := make(map[string]time.Time)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
				!ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
				continue
			}
			if !want[strings.ToLower(filepath.Ext(ev.Name))] {
				continue
			}
			now := time.Now()
			if last, seen := lastSeen[ev.Name]; seen && now.Sub(last) < debounceWindow {
				continue
			}
			lastSeen[ev.Name] = now
			onChange(ev.Name)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("config: watch: %v", err)
		case <-w.done:
			return
		}
	}
}
