package assetcache

import (
	"reflect"
	"time"

	"github.com/unkn0wn-root/assetcache/watcher"
)

const (
	defaultDebounce    = 100 * time.Millisecond
	defaultLoadQueue   = 256
	defaultReloadQueue = 64
)

// Options tune the Registry. All fields are optional.
type Options struct {
	// Watcher delivers debounced filesystem change notifications for
	// watched paths. If nil, a watcher.Debounced over fsnotify is created
	// with DebounceWindow.
	Watcher Watcher

	// DebounceWindow is the settle window of the default watcher.
	// 0 => 100ms. Ignored when Watcher is set.
	DebounceWindow time.Duration

	// LoadQueue caps outstanding background load completions. A completion
	// that finds the queue full is dropped (reported via Hooks.LoadDropped)
	// and the entry stays pending. 0 => 256.
	LoadQueue int

	// ReloadQueue caps pending ForceReload notifications. 0 => 64.
	ReloadQueue int

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks
}

// New constructs an empty Registry. Close it to release the watcher.
func New(opts Options) (*Registry, error) {
	r := &Registry{
		entries:    make(map[uint64]entry),
		derived:    make(map[uint64]derivedEntry),
		dirty:      make(map[uint64]struct{}),
		writePaths: make(map[uint64]string),
		loadFns:    make(map[reflect.Type]func(string) (any, error)),
		writeFns:   make(map[reflect.Type]func(any, string) error),
		watchBound: make(map[string]uint64),
	}

	r.log = coalesce[Logger](opts.Logger, NopLogger{})
	r.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	r.loaded = make(chan loadResult, coalesce(opts.LoadQueue, defaultLoadQueue))
	r.forced = make(chan string, coalesce(opts.ReloadQueue, defaultReloadQueue))

	if opts.Watcher != nil {
		r.watcher = opts.Watcher
	} else {
		w, err := watcher.NewDebounced(coalesce(opts.DebounceWindow, defaultDebounce))
		if err != nil {
			return nil, err
		}
		r.watcher = w
		r.ownWatcher = true
	}
	return r, nil
}

// Close shuts the watcher down when the registry created it. In-flight
// background loads run to completion; their results are dropped on the
// floor once nobody drains the completion queue.
func (r *Registry) Close() error {
	if r.ownWatcher && r.watcher != nil {
		return r.watcher.Close()
	}
	return nil
}
