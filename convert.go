package assetcache

import (
	"fmt"
	"reflect"
)

// derivedEntry is a memoized conversion result, keyed in the registry by
// the source handle's id. The derived id comes from its own counter: a
// recompute after invalidation yields a new identity.
type derivedEntry struct {
	id    uint64
	value any // *D box
}

// Derived is a shared reference to a cached derived asset. Copies compare
// equal iff they refer to the same computation (same derived id); the
// source handle's id plays no part in its identity. The referenced value
// stays alive as long as any Derived copy does, independent of the cache.
type Derived[D any] struct {
	id    uint64
	value *D
}

// ID returns the identity of this computation, distinct from any handle id.
func (d Derived[D]) ID() uint64 { return d.id }

// Value returns the derived asset. nil for the zero Derived.
func (d Derived[D]) Value() *D { return d.value }

// ConvertFunc computes a derived asset from a live source asset and
// parameters. It must be pure: no side effects, no registry access.
type ConvertFunc[S, P, D any] func(src *S, params P) (D, error)

// Convert returns the memoized derived asset for h, computing it on first
// use. It is safe to call speculatively every frame: an absent or pending
// source yields (zero, false) instead of blocking or panicking. The cache
// key is the source handle alone; params are fixed for the lifetime of a
// derived entry and only a mutation or reload of the source recomputes.
func Convert[S, P, D any](r *Registry, h Handle[S], params P, fn ConvertFunc[S, P, D]) (Derived[D], bool) {
	var zero Derived[D]
	if de, ok := r.derived[h.u.id]; ok {
		p, ok := de.value.(*D)
		if !ok {
			panic(fmt.Sprintf("assetcache: derived entry for handle %d holds %T, requested %s",
				h.u.id, de.value, reflect.TypeFor[D]()))
		}
		return Derived[D]{id: de.id, value: p}, true
	}

	src, ok := Get(r, h)
	if !ok {
		return zero, false
	}
	v, err := fn(src, params)
	if err != nil {
		r.log.Warn("conversion failed", Fields{"handle": h.u.id, "err": err})
		r.hooks.ConvertFailed(h.u.id, err)
		return zero, false
	}

	p := new(D)
	*p = v
	de := derivedEntry{id: r.nextDerivedID.Add(1), value: p}
	r.derived[h.u.id] = de
	return Derived[D]{id: de.id, value: p}, true
}
