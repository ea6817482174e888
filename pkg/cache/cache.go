// Package cache stores serialized values, such as loaded dataset
// snapshots, between runs.
//
// # Backends
//
//   - [FileCache]: one JSON file per key under a local directory. This is
//     what the CLI uses.
//   - [RedisCache]: a shared Redis instance, for several API servers
//     loading the same dataset.
//   - [NullCache]: stores nothing, used when caching is disabled.
//
// # Keys
//
// Keys are produced by a [Keyer] so every consumer derives the same key for
// the same content. [ScopedKeyer] prefixes every key, which keeps several
// deployments apart on a shared backend.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.DatasetKey(fingerprint, cache.DatasetKeyOpts{Schema: 1})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of zero keeps the entry until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default expiry per entry type.
const (
	// TTLDataset bounds how long a dataset snapshot is trusted. Snapshots
	// are keyed by content fingerprint, so expiry only reclaims space.
	TTLDataset = 7 * 24 * time.Hour
)

// DatasetKeyOpts distinguishes snapshots of the same content.
type DatasetKeyOpts struct {
	// Schema is the snapshot encoding version.
	Schema int `json:"schema"`
}

// Keyer derives cache keys.
type Keyer interface {
	// DatasetKey returns the key of a dataset snapshot with the given
	// content fingerprint.
	DatasetKey(fingerprint string, opts DatasetKeyOpts) string
}

// DefaultKeyer hashes key components so keys have a fixed length and
// never contain separator characters from user input.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DatasetKey implements [Keyer].
func (DefaultKeyer) DatasetKey(fingerprint string, opts DatasetKeyOpts) string {
	return hashKey("dataset", fingerprint, opts)
}
