// Package watcher provides the default debounced filesystem watcher for
// the asset registry, built on fsnotify.
//
// Raw filesystem event streams are bursty: an editor save typically
// produces several writes, or a temp-file-then-rename sequence, within
// milliseconds. Debounced aggregates raw events per path over a settle
// window and emits one notification per settled change.
package watcher

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounced watches individual files and emits one canonical path on its
// Events channel per settled change. It satisfies the registry's Watcher
// contract.
type Debounced struct {
	fs     *fsnotify.Watcher
	out    chan string
	window time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// NewDebounced creates a watcher with the given settle window. Tens of
// milliseconds is enough to absorb editor save bursts.
func NewDebounced(window time.Duration) (*Debounced, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	d := &Debounced{
		fs:     fs,
		out:    make(chan string, 64),
		window: window,
		timers: make(map[string]*time.Timer),
		done:   make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d, nil
}

// Watch subscribes path. Pass canonical paths: notifications carry the
// path exactly as it was added. Adding the same path twice is a no-op.
func (d *Debounced) Watch(path string) error {
	return d.fs.Add(path)
}

// Events emits one path per settled change. Notifications are dropped
// when the channel is full; the next change re-arms.
func (d *Debounced) Events() <-chan string {
	return d.out
}

// Close stops the event loop and releases the underlying watcher.
func (d *Debounced) Close() error {
	d.closeOnce.Do(func() {
		close(d.done)
		d.closeErr = d.fs.Close()
		d.wg.Wait()
		d.mu.Lock()
		for path, t := range d.timers {
			t.Stop()
			delete(d.timers, path)
		}
		d.mu.Unlock()
	})
	return d.closeErr
}

func (d *Debounced) run() {
	defer d.wg.Done()
	for {
		select {
		case ev, ok := <-d.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue // chmod noise
			}
			d.bump(ev.Name)
		case _, ok := <-d.fs.Errors:
			if !ok {
				return
			}
			// transient inotify errors; the next event re-arms the timer
		case <-d.done:
			return
		}
	}
}

// bump starts or resets the settle timer for path.
func (d *Debounced) bump(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[path]; ok {
		t.Reset(d.window)
		return
	}
	d.timers[path] = time.AfterFunc(d.window, func() { d.fire(path) })
}

func (d *Debounced) fire(path string) {
	d.mu.Lock()
	delete(d.timers, path)
	d.mu.Unlock()

	select {
	case <-d.done:
		return
	default:
	}

	// editors save via rename, which replaces the inode we were watching
	_ = d.fs.Add(path)

	select {
	case d.out <- path:
	default:
		// consumer is behind; drop
	}
}
