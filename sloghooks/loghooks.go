// Package sloghooks emits registry hook events through log/slog, with
// sampling on the two events that can fire every frame while a file is
// broken (reload failures) or a producer is stuck (dropped completions).
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/assetcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ReloadFailedEvery uint64
	LoadDroppedEvery  uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	reloadCtr  atomic.Uint64
	droppedCtr atomic.Uint64
}

var _ assetcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) AsyncLoadFailed(path string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("assetcache.async_load_failed", "path", path, "err", err)
}

func (h *Hooks) LoadDropped(path string) {
	if h.l == nil || !sample(h.opts.LoadDroppedEvery, &h.droppedCtr) {
		return
	}
	h.l.Warn("assetcache.load_dropped", "path", path)
}

func (h *Hooks) ReloadFailed(path string, err error) {
	if h.l == nil || !sample(h.opts.ReloadFailedEvery, &h.reloadCtr) {
		return
	}
	h.l.Warn("assetcache.reload_failed", "path", path, "err", err)
}

func (h *Hooks) WatchRebound(path string, oldID, newID uint64) {
	if h.l == nil {
		return
	}
	h.l.Warn("assetcache.watch_rebound",
		"path", path,
		"old_handle", oldID,
		"new_handle", newID)
}

func (h *Hooks) MissingLoader(typ, path string) {
	if h.l == nil {
		return
	}
	h.l.Error("assetcache.missing_loader", "type", typ, "path", path)
}

func (h *Hooks) MissingWriter(typ, path string) {
	if h.l == nil {
		return
	}
	h.l.Error("assetcache.missing_writer", "type", typ, "path", path)
}

func (h *Hooks) WriteFailed(path string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("assetcache.write_failed", "path", path, "err", err)
}

func (h *Hooks) ConvertFailed(handleID uint64, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("assetcache.convert_failed", "handle", handleID, "err", err)
}
