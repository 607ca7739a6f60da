// Package fingerprint defines a small byte store used to remember content
// fingerprints per canonical path. codec.DedupLoader and codec.DedupWriter
// consult it to skip re-parsing a file whose bytes did not change and to
// suppress disk writes that would rewrite identical content (which would
// otherwise echo back through the watcher as a spurious reload).
//
// Implementations MUST be byte-for-byte transparent: Get must return
// exactly the []byte previously passed to Set for the same key. The local
// map store is the default; bounded adapters exist for Ristretto and
// BigCache when the watched set is large.
package fingerprint

import (
	"context"
	"crypto/sha256"
	"time"
)

// Store is a byte store with TTLs. Must be safe for concurrent use:
// loaders run on background goroutines.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL (0 = no expiry, if supported).
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// Sum is the fingerprint function: SHA-256 over the raw file bytes.
func Sum(b []byte) []byte {
	s := sha256.Sum256(b)
	return s[:]
}
