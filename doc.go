// Package assetcache implements an in-memory asset registry with opaque
// typed handles, background loading, hot-reload and dirty-tracked
// write-back. Assets of arbitrary concrete types live behind a single
// type-erased store; access is type-checked at runtime. Derived values
// (e.g. GPU-ready forms) are memoized per source handle and evicted
// whenever the source is mutated or reloaded.
//
// Components:
//   - Handle[T] / Untyped: cheap identity values; equality by id, never by type.
//   - Type[T]: per-type load/write functions (the asset collaborator contract).
//   - Watcher: debounced filesystem change notifier. Default is the
//     fsnotify-backed watcher.Debounced.
//   - fingerprint.Store: optional content-fingerprint byte store used by
//     codec.DedupLoader / codec.DedupWriter to suppress redundant work.
//
// The Registry is single-threaded: all of its methods are meant to be called
// from one owning goroutine (e.g. once per frame). Background loads
// communicate only through channels drained by the poll methods, so the
// store itself needs no locks.
//
// Frame pattern:
//
//	h, _ := assetcache.LoadAsync(reg, shaderType, "assets/basic.glsl",
//	    assetcache.LoadOptions{Watch: true})
//	for {
//	    if gpu, ok := assetcache.Convert(reg, h, params, compile); ok {
//	        draw(gpu.Value())
//	    }
//	    reg.PollReload()
//	    reg.PollWrite()
//	    reg.PollLoaded()
//	}
package assetcache
