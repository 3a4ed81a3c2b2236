package source

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	goPermit "github.com/MrEthical07/goPermit"
)

const defaultDebounce = 100 * time.Millisecond

// Applier receives reloaded configurations. *bind.Store satisfies it.
type Applier interface {
	Apply(cfg goPermit.Config)
}

// Watcher reloads a config file whenever it changes and pushes the result
// into an [Applier] as one transition per reload.
//
// The watch is placed on the file's directory, not the file itself, so the
// common editor save sequence (write temp, rename over target) keeps being
// observed. Bursts of filesystem events within the debounce window collapse
// into a single reload.
type Watcher struct {
	path     string
	debounce time.Duration
	onError  func(error)

	fw     *fsnotify.Watcher
	target Applier
	source *FileSource

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// WatchOption configures a [Watcher].
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period between the last filesystem event and
// the reload.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler routes reload failures to fn instead of the process log.
// A failed reload never tears the watcher down; the last applied
// configuration stays in effect until the file loads cleanly again.
func WithErrorHandler(fn func(error)) WatchOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watch starts watching path and applies an initial load before returning.
// The caller owns the returned Watcher and must Close it.
func Watch(path string, target Applier, opts ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	w := &Watcher{
		path:     abs,
		debounce: defaultDebounce,
		target:   target,
		source:   NewFileSource(abs),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	cfg, err := w.source.Load()
	if err != nil {
		return nil, err
	}
	target.Apply(cfg)

	w.fw, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}
	if err := w.fw.Add(filepath.Dir(abs)); err != nil {
		_ = w.fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching and waits for the reload goroutine to exit. Safe to
// call more than once.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
		_ = w.fw.Close()
		w.wg.Wait()
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != filepath.Base(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.fail(err)

		case <-fire:
			timer = nil
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.source.Load()
	if err != nil {
		w.fail(err)
		return
	}
	w.target.Apply(cfg)
}

func (w *Watcher) fail(err error) {
	if w.onError != nil {
		w.onError(err)
		return
	}
	log.Print("goPermit: config reload failed: ", err)
}
