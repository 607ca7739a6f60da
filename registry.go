package assetcache

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// entry is one slot of the type-erased store. value is a *T box for the
// concrete asset type recorded in typ; nil value means a background load
// was dispatched but has not completed yet (pending).
type entry struct {
	typ   reflect.Type
	value any
}

// Registry owns every externally-sourced asset behind handles. It is not
// internally synchronized: call all methods from one owning goroutine.
// Background work reaches it only through channels drained by PollLoaded
// and PollReload.
type Registry struct {
	log   Logger
	hooks Hooks

	nextHandleID  atomic.Uint64
	nextDerivedID atomic.Uint64

	entries map[uint64]entry
	derived map[uint64]derivedEntry

	// write-back
	dirty      map[uint64]struct{}
	writePaths map[uint64]string

	// per-type function registries, filled lazily on first registration
	loadFns  map[reflect.Type]func(path string) (any, error)
	writeFns map[reflect.Type]func(v any, path string) error

	// background load completions
	loaded chan loadResult

	// hot-reload
	watcher    Watcher
	ownWatcher bool
	watchBound map[string]uint64
	forced     chan string
}

// Insert stores v under a fresh handle. It always succeeds.
func Insert[T any](r *Registry, v T) Handle[T] {
	h := newHandle[T](r)
	p := new(T)
	*p = v
	r.entries[h.u.id] = entry{typ: h.u.typ, value: p}
	return h
}

// Get returns the asset for h, or (nil, false) when the entry is absent or
// still pending. It has no side effects; treat the result as read-only and
// go through GetMut for any mutation. Requesting the wrong T for a present
// entry is a contract violation and panics.
func Get[T any](r *Registry, h Handle[T]) (*T, bool) {
	e, ok := r.entries[h.u.id]
	if !ok || e.value == nil {
		return nil, false
	}
	return downcast[T](e, h.u.id), true
}

// GetMut is the sanctioned mutation path: beyond returning the asset it
// marks the handle dirty for the next PollWrite and evicts any derived
// entry keyed by it. Absent or pending entries return (nil, false).
func GetMut[T any](r *Registry, h Handle[T]) (*T, bool) {
	e, ok := r.entries[h.u.id]
	if !ok || e.value == nil {
		return nil, false
	}
	delete(r.derived, h.u.id)
	r.dirty[h.u.id] = struct{}{}
	return downcast[T](e, h.u.id), true
}

func downcast[T any](e entry, id uint64) *T {
	p, ok := e.value.(*T)
	if !ok {
		panic(fmt.Sprintf("assetcache: handle %d holds %s, requested %s",
			id, e.typ, reflect.TypeFor[T]()))
	}
	return p
}
