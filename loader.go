package assetcache

import (
	"fmt"
	"reflect"

	"github.com/unkn0wn-root/assetcache/internal/pathutil"
)

// LoadFunc constructs an asset of type T from a file. It runs on the
// calling goroutine for synchronous loads and on a spawned goroutine for
// asynchronous ones, so it must not touch the registry.
type LoadFunc[T any] func(path string) (T, error)

// WriteFunc persists an asset of type T to a file.
type WriteFunc[T any] func(v T, path string) error

// Type describes how assets of one concrete type move to and from disk.
// The functions are registered in the registry's per-type tables the first
// time a handle of that type is loaded or bound; later registrations for
// the same type are ignored.
type Type[T any] struct {
	Load  LoadFunc[T]
	Write WriteFunc[T]
}

// LoadOptions select the side registrations performed by a load call.
type LoadOptions struct {
	// Watch subscribes the canonical path to the watcher so disk changes
	// reload the asset on the next PollReload.
	Watch bool

	// WriteBack binds the canonical path as the handle's write target so
	// mutations flush to it on the next PollWrite.
	WriteBack bool
}

type loadResult struct {
	id    uint64
	path  string
	value any // *T box; nil when err != nil
	err   error
}

// LoadSync loads path on the calling goroutine and inserts the result as
// present before returning. Used when the caller cannot tolerate a
// "not ready" window.
func LoadSync[T any](r *Registry, ty Type[T], path string, opt LoadOptions) (Handle[T], error) {
	var zero Handle[T]
	if ty.Load == nil {
		return zero, fmt.Errorf("assetcache: no load function for %s", reflect.TypeFor[T]())
	}
	canonical, err := pathutil.Canonical(path)
	if err != nil {
		return zero, err
	}

	v, err := ty.Load(canonical)
	if err != nil {
		return zero, err
	}

	h := newHandle[T](r)
	p := new(T)
	*p = v
	r.entries[h.u.id] = entry{typ: h.u.typ, value: p}

	registerType(r, ty)
	if err := r.applyLoadOptions(h.u, canonical, opt); err != nil {
		return zero, err
	}
	return h, nil
}

// LoadAsync inserts a pending placeholder and returns its handle without
// delay; a spawned goroutine performs the load and queues the completion
// for the next PollLoaded. Get reports "not ready" until then.
func LoadAsync[T any](r *Registry, ty Type[T], path string, opt LoadOptions) (Handle[T], error) {
	var zero Handle[T]
	if ty.Load == nil {
		return zero, fmt.Errorf("assetcache: no load function for %s", reflect.TypeFor[T]())
	}
	canonical, err := pathutil.Canonical(path)
	if err != nil {
		return zero, err
	}

	h := newHandle[T](r)
	r.entries[h.u.id] = entry{typ: h.u.typ, value: nil} // pending

	registerType(r, ty)
	if err := r.applyLoadOptions(h.u, canonical, opt); err != nil {
		return zero, err
	}

	// The goroutine owns copies only; it never touches the registry.
	load := ty.Load
	id := h.u.id
	out := r.loaded
	hooks := r.hooks
	go func() {
		res := loadResult{id: id, path: canonical}
		v, err := load(canonical)
		if err != nil {
			res.err = err
		} else {
			p := new(T)
			*p = v
			res.value = p
		}
		select {
		case out <- res:
		default:
			hooks.LoadDropped(canonical)
		}
	}()
	return h, nil
}

// PollLoaded drains all currently-available load completions without
// waiting for more, applying them in arrival order; concurrent loads for
// one handle resolve last-writer-wins. Each applied completion overwrites
// the store entry and evicts the derived entry. Returns the number of
// entries updated.
func (r *Registry) PollLoaded() int {
	applied := 0
	for {
		select {
		case res := <-r.loaded:
			if res.err != nil {
				// entry stays pending; the collaborator owns retry policy
				r.log.Warn("async load failed", Fields{"path": res.path, "err": res.err})
				r.hooks.AsyncLoadFailed(res.path, res.err)
				continue
			}
			e, ok := r.entries[res.id]
			if !ok {
				continue
			}
			e.value = res.value
			r.entries[res.id] = e
			delete(r.derived, res.id)
			applied++
		default:
			return applied
		}
	}
}

func (r *Registry) applyLoadOptions(u Untyped, canonical string, opt LoadOptions) error {
	if opt.Watch {
		if err := r.bindWatch(u, canonical); err != nil {
			return err
		}
	}
	if opt.WriteBack {
		r.writePaths[u.id] = canonical
	}
	return nil
}

// registerType fills the per-type dispatch tables. First registration per
// concrete type wins.
func registerType[T any](r *Registry, ty Type[T]) {
	t := reflect.TypeFor[T]()
	if _, ok := r.loadFns[t]; !ok && ty.Load != nil {
		load := ty.Load
		r.loadFns[t] = func(path string) (any, error) {
			v, err := load(path)
			if err != nil {
				return nil, err
			}
			p := new(T)
			*p = v
			return p, nil
		}
	}
	if _, ok := r.writeFns[t]; !ok && ty.Write != nil {
		write := ty.Write
		r.writeFns[t] = func(v any, path string) error {
			p, ok := v.(*T)
			if !ok {
				panic(fmt.Sprintf("assetcache: write dispatch for %s got %T", t, v))
			}
			return write(*p, path)
		}
	}
}
