package assetcache

import (
	"errors"
	"fmt"
)

// ErrUnchanged may be returned by a LoadFunc to signal that the file
// content is identical to what produced the current value. The registry
// keeps the entry and skips derived-cache eviction. codec.DedupLoader
// returns it when the content fingerprint matches.
var ErrUnchanged = errors.New("assetcache: content unchanged")

// MissingWriterError reports a dirty handle whose type never registered a
// write function even though a write path is bound.
type MissingWriterError struct {
	Type string
}

func (e *MissingWriterError) Error() string {
	return fmt.Sprintf("assetcache: no write function registered for %s", e.Type)
}

// WriteFailure is one failed entry of a PollWrite batch.
type WriteFailure struct {
	Path string
	Err  error
}

// FlushError aggregates the per-entry failures of one PollWrite call.
// The remaining dirty entries were still attempted.
type FlushError struct {
	Failures []WriteFailure
}

func (e *FlushError) Error() string {
	switch len(e.Failures) {
	case 0:
		return "assetcache: flush failed"
	case 1:
		return fmt.Sprintf("assetcache: flush of %q failed: %v", e.Failures[0].Path, e.Failures[0].Err)
	default:
		return fmt.Sprintf("assetcache: flush failed for %d entries (first %q: %v)",
			len(e.Failures), e.Failures[0].Path, e.Failures[0].Err)
	}
}

func (e *FlushError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}
