// Package asynchook decouples hook consumers from the registry's hot
// paths: events are queued to a bounded channel and delivered by worker
// goroutines; the queue drops on overflow.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{ReloadFailedEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	reg, _ := assetcache.New(assetcache.Options{Hooks: hooks})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/assetcache"
)

type Hooks struct {
	inner assetcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ assetcache.Hooks = (*Hooks)(nil)

func New(inner assetcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) AsyncLoadFailed(p string, err error) {
	h.try(func() { h.inner.AsyncLoadFailed(p, err) })
}
func (h *Hooks) LoadDropped(p string)           { h.try(func() { h.inner.LoadDropped(p) }) }
func (h *Hooks) ReloadFailed(p string, e error) { h.try(func() { h.inner.ReloadFailed(p, e) }) }
func (h *Hooks) WatchRebound(p string, o, n uint64) {
	h.try(func() { h.inner.WatchRebound(p, o, n) })
}
func (h *Hooks) MissingLoader(t, p string)     { h.try(func() { h.inner.MissingLoader(t, p) }) }
func (h *Hooks) MissingWriter(t, p string)     { h.try(func() { h.inner.MissingWriter(t, p) }) }
func (h *Hooks) WriteFailed(p string, e error) { h.try(func() { h.inner.WriteFailed(p, e) }) }
func (h *Hooks) ConvertFailed(id uint64, e error) {
	h.try(func() { h.inner.ConvertFailed(id, e) })
}
