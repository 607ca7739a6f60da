package codec

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/unkn0wn-root/assetcache"
	"github.com/unkn0wn-root/assetcache/fingerprint"
)

// FileLoader builds a LoadFunc that reads the whole file and decodes it
// with c.
func FileLoader[V any](c Codec[V]) assetcache.LoadFunc[V] {
	return func(path string) (V, error) {
		var zero V
		b, err := os.ReadFile(path)
		if err != nil {
			return zero, err
		}
		return c.Decode(b)
	}
}

// FileWriter builds a WriteFunc that encodes with c and writes the file.
func FileWriter[V any](c Codec[V]) assetcache.WriteFunc[V] {
	return func(v V, path string) error {
		b, err := c.Encode(v)
		if err != nil {
			return err
		}
		return os.WriteFile(path, b, 0o644)
	}
}

// DedupLoader is FileLoader plus content fingerprinting: when the file's
// bytes hash to the fingerprint already recorded for path, it returns
// assetcache.ErrUnchanged and the registry keeps the current value. An
// editor save that touches mtime without changing content then costs one
// hash instead of a re-parse and a derived-cache eviction.
func DedupLoader[V any](c Codec[V], fp fingerprint.Store, ttl time.Duration) assetcache.LoadFunc[V] {
	return func(path string) (V, error) {
		var zero V
		b, err := os.ReadFile(path)
		if err != nil {
			return zero, err
		}
		sum := fingerprint.Sum(b)
		if prev, ok, _ := fp.Get(context.Background(), path); ok && bytes.Equal(prev, sum) {
			return zero, assetcache.ErrUnchanged
		}
		v, err := c.Decode(b)
		if err != nil {
			return zero, err
		}
		_, _ = fp.Set(context.Background(), path, sum, ttl)
		return v, nil
	}
}

// DedupWriter is FileWriter plus content fingerprinting: a flush whose
// encoded bytes match the recorded fingerprint skips the disk write, so a
// write-back does not echo through the watcher as a reload. Share one
// Store between the DedupLoader and DedupWriter of a path for that to
// line up.
func DedupWriter[V any](c Codec[V], fp fingerprint.Store, ttl time.Duration) assetcache.WriteFunc[V] {
	return func(v V, path string) error {
		b, err := c.Encode(v)
		if err != nil {
			return err
		}
		sum := fingerprint.Sum(b)
		if prev, ok, _ := fp.Get(context.Background(), path); ok && bytes.Equal(prev, sum) {
			return nil
		}
		if err := os.WriteFile(path, b, 0o644); err != nil {
			return err
		}
		_, _ = fp.Set(context.Background(), path, sum, ttl)
		return nil
	}
}
