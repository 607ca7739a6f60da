package assetcache

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking: the registry calls them
// from the poll methods and from load goroutines.
type Hooks interface {
	// A background load finished with an error; the entry stays pending.
	AsyncLoadFailed(path string, err error)

	// A completion could not be queued (queue full or registry abandoned).
	// The result is discarded and the entry stays pending.
	LoadDropped(path string)

	// A reload attempt failed; the previous value is kept.
	ReloadFailed(path string, err error)

	// A watched path was re-bound to a different handle. Only one handle
	// may consume a path; the newer binding wins.
	WatchRebound(path string, oldID, newID uint64)

	// A bound type is missing its load function (reload) or write
	// function (write-back). Configuration errors, reported per poll item.
	MissingLoader(typ, path string)
	MissingWriter(typ, path string)

	// One entry of a write-back flush failed; the batch continued.
	WriteFailed(path string, err error)

	// A conversion callback failed; nothing was cached.
	ConvertFailed(handleID uint64, err error)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) AsyncLoadFailed(string, error)       {}
func (NopHooks) LoadDropped(string)                  {}
func (NopHooks) ReloadFailed(string, error)          {}
func (NopHooks) WatchRebound(string, uint64, uint64) {}
func (NopHooks) MissingLoader(string, string)        {}
func (NopHooks) MissingWriter(string, string)        {}
func (NopHooks) WriteFailed(string, error)           {}
func (NopHooks) ConvertFailed(uint64, error)         {}
