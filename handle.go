package assetcache

import "reflect"

// Untyped is a handle with its compile-time type information stripped,
// used as the uniform lookup key inside the registry. The type tag it
// carries is for dispatch only and never participates in identity: two
// handles refer to the same asset iff their ids are equal (the registry
// never hands out the same id under two different types, so comparing
// Untyped values with == is equivalent to comparing ids).
type Untyped struct {
	id  uint64
	typ reflect.Type
}

// ID returns the process-unique id of the handle. Ids are allocated
// monotonically per registry and never reused.
func (u Untyped) ID() uint64 { return u.id }

// AssetType returns the concrete type of the asset this handle refers to.
func (u Untyped) AssetType() reflect.Type { return u.typ }

// Handle is an opaque identity for one logical asset of type T. It is a
// weak reference plus lookup key: copying it is free and carries no
// ownership of the asset. A handle whose entry was never inserted (the
// zero Handle) looks up as absent.
type Handle[T any] struct {
	u Untyped
}

// ID returns the id shared with the untyped form.
func (h Handle[T]) ID() uint64 { return h.u.id }

// Untyped erases the handle's compile-time type, preserving id and the
// runtime type tag.
func (h Handle[T]) Untyped() Untyped { return h.u }

// Retype reattaches a compile-time type to an untyped handle. It performs
// no check: a wrong T surfaces as a downcast panic on first access.
func Retype[T any](u Untyped) Handle[T] { return Handle[T]{u: u} }

func newHandle[T any](r *Registry) Handle[T] {
	return Handle[T]{u: Untyped{
		id:  r.nextHandleID.Add(1),
		typ: reflect.TypeFor[T](),
	}}
}
