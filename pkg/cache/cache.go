// Package cache stores computed placements and previews keyed by board and
// page.
//
// The layout engine never caches. A board service may, and this package is
// how the CLI and the HTTP server do it. Entries are content-addressed: the
// key embeds a hash of the page's notes, the canvas, and the request, so a
// board that changes produces new keys and stale entries simply expire.
//
// # Backends
//
//   - [FileCache] stores entries under a directory, for the CLI.
//   - [RedisCache] stores entries in Redis, for the HTTP server.
//   - [NullCache] stores nothing.
//
// Backends are interchangeable behind [Cache]. Lookups that fail are treated
// as misses by callers; a cache is never required for correctness.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// PrefixDeleter is implemented by caches that can drop every entry whose key
// starts with a prefix, such as all entries of one board page.
type PrefixDeleter interface {
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// Entry lifetimes.
const (
	// TTLPlacement bounds how long a placement answer is reused. Placements
	// are pure functions of their key, so this only limits growth.
	TTLPlacement = 24 * time.Hour

	// TTLPreview is the lifetime of rendered SVG previews.
	TTLPreview = 7 * 24 * time.Hour
)
