// Package cache stores laid-out diagram documents so host tools can skip
// recomputing a layout for input they have already seen.
//
// The engine itself never caches; the CLI and the HTTP host look up a key
// derived from the input document's hash and the effective layout
// configuration before running it.
//
// # Backends
//
//   - [FileCache]: one JSON entry file per key under a directory, with TTL
//   - [RedisCache]: shared entries in Redis for several server instances
//   - [NullCache]: never stores anything, used when caching is disabled
//
// # Keys
//
// A [Keyer] derives keys. [DefaultKeyer] hashes the configuration together
// with the document hash; [ScopedKeyer] prefixes every key, which the CLI
// uses to separate entries written by different releases.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1.2.0:")
//	key := k.LayoutKey(cache.Hash(input), cfg)
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// keyTypeLayout labels cache hook events.
const keyTypeLayout = "layout"

// Cache is a byte store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}

// NullCache is a no-op cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
