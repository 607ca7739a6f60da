package assetcache

import "github.com/unkn0wn-root/assetcache/internal/pathutil"

// BindWrite makes path the write-back target for h, as if it had been
// loaded with LoadOptions.WriteBack. The file does not have to exist yet;
// its directory does.
func BindWrite[T any](r *Registry, h Handle[T], ty Type[T], path string) error {
	canonical, err := pathutil.Canonical(path)
	if err != nil {
		return err
	}
	registerType(r, ty)
	r.writePaths[h.u.id] = canonical
	return nil
}

// PollWrite takes ownership of the current dirty set (clearing it) and
// writes each dirty asset that has a bound path with the registered write
// function. Handles without a bound path are skipped: write-back is
// opt-in per handle. Per-entry failures do not stop the batch; they are
// collected into the returned *FlushError (nil when everything flushed).
func (r *Registry) PollWrite() error {
	if len(r.dirty) == 0 {
		return nil
	}
	dirty := r.dirty
	r.dirty = make(map[uint64]struct{})

	var failures []WriteFailure
	for id := range dirty {
		path, bound := r.writePaths[id]
		if !bound {
			r.log.Debug("dirty handle has no write path, skipping", Fields{"handle": id})
			continue
		}
		e, ok := r.entries[id]
		if !ok || e.value == nil {
			// evicted or still pending; nothing to flush
			continue
		}
		write, ok := r.writeFns[e.typ]
		if !ok {
			// configuration error: bound for write-back without a write function
			r.log.Error("no write function registered", Fields{"type": e.typ.String(), "path": path})
			r.hooks.MissingWriter(e.typ.String(), path)
			failures = append(failures, WriteFailure{
				Path: path,
				Err:  &MissingWriterError{Type: e.typ.String()},
			})
			continue
		}
		if err := write(e.value, path); err != nil {
			r.log.Warn("write-back failed", Fields{"path": path, "err": err})
			r.hooks.WriteFailed(path, err)
			failures = append(failures, WriteFailure{Path: path, Err: err})
		}
	}
	if len(failures) > 0 {
		return &FlushError{Failures: failures}
	}
	return nil
}
