package assetcache

import (
	"errors"

	"github.com/unkn0wn-root/assetcache/internal/pathutil"
)

// Watcher is a debounced filesystem change notifier. It is designed for
// reload signals rather than durable delivery: implementations may drop
// notifications when the consumer is slow. Events carries one canonical
// path per settled change; editor save bursts (temp-file-then-rename,
// multiple writes) must coalesce into a single notification.
type Watcher interface {
	// Watch subscribes a canonical path. Watching the same path twice is
	// a no-op. Unwatching is not supported; paths are watched until Close.
	Watch(path string) error

	// Events is the stream of settled change notifications.
	Events() <-chan string

	// Close releases resources and stops the stream.
	Close() error
}

// WatchPath subscribes an existing handle to disk changes of path, as if
// it had been loaded with LoadOptions.Watch. Only one handle may be bound
// per canonical path: a second binding replaces the first and fires
// Hooks.WatchRebound.
func WatchPath[T any](r *Registry, h Handle[T], ty Type[T], path string) error {
	canonical, err := pathutil.Canonical(path)
	if err != nil {
		return err
	}
	registerType(r, ty)
	return r.bindWatch(h.u, canonical)
}

// ForceReload synthesizes a change notification for path without waiting
// for the filesystem; the reload happens on the next PollReload.
func (r *Registry) ForceReload(path string) {
	canonical, err := pathutil.Canonical(path)
	if err != nil {
		canonical = path
	}
	select {
	case r.forced <- canonical:
	default:
		r.log.Warn("forced reload queue full; notification dropped", Fields{"path": canonical})
	}
}

// PollReload drains all pending change notifications without blocking.
// For each bound path it re-runs the registered load function on the
// calling goroutine, replaces the store entry and evicts the derived
// entry. A load error keeps the previous value. Returns the number of
// entries replaced.
func (r *Registry) PollReload() int {
	n := r.drainReloads(r.forced)
	if r.watcher != nil {
		n += r.drainReloads(r.watcher.Events())
	}
	return n
}

func (r *Registry) drainReloads(ch <-chan string) int {
	n := 0
	for {
		select {
		case path := <-ch:
			if r.reloadPath(path) {
				n++
			}
		default:
			return n
		}
	}
}

func (r *Registry) reloadPath(path string) bool {
	id, ok := r.watchBound[path]
	if !ok {
		r.log.Debug("change notification for unbound path", Fields{"path": path})
		return false
	}
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	load, ok := r.loadFns[e.typ]
	if !ok {
		// configuration error: the type was bound without a load function
		r.log.Error("no load function registered", Fields{"type": e.typ.String(), "path": path})
		r.hooks.MissingLoader(e.typ.String(), path)
		return false
	}

	v, err := load(path)
	if err != nil {
		if errors.Is(err, ErrUnchanged) {
			r.log.Debug("reload skipped, content unchanged", Fields{"path": path})
			return false
		}
		r.log.Warn("reload failed, keeping previous value", Fields{"path": path, "err": err})
		r.hooks.ReloadFailed(path, err)
		return false
	}

	e.value = v
	r.entries[id] = e
	delete(r.derived, id)
	r.log.Debug("reloaded", Fields{"path": path, "handle": id})
	return true
}

func (r *Registry) bindWatch(u Untyped, canonical string) error {
	if prev, bound := r.watchBound[canonical]; bound {
		if prev != u.id {
			// one binding per path; last bind wins
			r.log.Warn("watch rebound to a different handle",
				Fields{"path": canonical, "old": prev, "new": u.id})
			r.hooks.WatchRebound(canonical, prev, u.id)
			r.watchBound[canonical] = u.id
		}
		return nil
	}
	if err := r.watcher.Watch(canonical); err != nil {
		return err
	}
	r.watchBound[canonical] = u.id
	return nil
}
