// Package watch observes session directories for new or changed
// session files. It debounces bursts of filesystem events into
// one callback per batch and auto-watches directories created
// while running, so a tool starting its first session of the day
// (Codex's dated tree) is still picked up.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/sessionscout/sessionscout/internal/log"
	"github.com/sessionscout/sessionscout/internal/scanner"
)

// Watcher debounces filesystem events over session directories
// and invokes a callback with the batch of changed paths.
type Watcher struct {
	onChange func(paths []string)
	watcher  *fsnotify.Watcher
	debounce time.Duration
	pending  map[string]time.Time
	mu       sync.Mutex
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// New creates a watcher that calls onChange once per batch after
// the debounce period elapses.
func New(debounce time.Duration, onChange func(paths []string)) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback is nil: %w", os.ErrInvalid)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		onChange: onChange,
		watcher:  fsw,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		now:      time.Now,
	}, nil
}

// WatchRegistry adds every registered scanner's existing session
// directories recursively, returning the number of directories
// under watch.
func (w *Watcher) WatchRegistry(reg *scanner.Registry) int {
	var watched int
	for _, s := range reg.Scanners() {
		for _, dir := range s.SessionDirs() {
			n, _ := w.WatchRecursive(dir)
			watched += n
		}
	}
	return watched
}

// WatchRecursive adds root and all its subdirectories to the
// watch list. Inaccessible entries are skipped.
func (w *Watcher) WatchRecursive(root string) (watched, failed int) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if addErr := w.watcher.Add(path); addErr != nil {
				failed++
			} else {
				watched++
			}
		}
		return nil
	})
	return watched, failed
}

// Start begins processing events in a goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop halts the watcher and waits for the loop to finish. Safe
// to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		<-w.done
		w.watcher.Close()
	})
}

func (w *Watcher) loop() {
	defer close(w.done)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
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
			log.L().Warn("watch error", zap.Error(err))

		case <-ticker.C:
			w.flush()
		}
	}
}

// handleEvent records write and create events, auto-watching
// directories as they appear.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if event.Op&fsnotify.Create != 0 {
		w.watchIfDir(event.Name)
	}

	w.mu.Lock()
	w.pending[event.Name] = w.now()
	w.mu.Unlock()
}

func (w *Watcher) watchIfDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	_ = w.watcher.Add(path)
}

// flush emits paths whose debounce window has passed.
func (w *Watcher) flush() {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	now := w.now()
	var ready []string
	for path, t := range w.pending {
		if now.Sub(t) >= w.debounce {
			ready = append(ready, path)
		}
	}
	for _, path := range ready {
		delete(w.pending, path)
	}
	w.mu.Unlock()

	if len(ready) > 0 {
		log.L().Info("session files changed", zap.Int("count", len(ready)))
		w.onChange(ready)
	}
}
