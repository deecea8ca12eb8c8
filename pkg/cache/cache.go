// Package cache stores fetched documents between runs.
//
// Only raw document bodies are cached, keyed by the document URL. Parsed
// tables, entries and renderings are always recomputed.
//
// # Backends
//
//   - [NullCache]: never stores anything (the default)
//   - [FileCache]: one JSON file per entry under the XDG cache directory
//   - [MemoryCache]: bounded in-process LRU, suited to the HTTP server
//   - [RedisCache]: shared cache in Redis
//   - [MongoCache]: shared cache in a MongoDB collection with a TTL index
//
// All backends implement [Cache] and report misses as (nil, false, nil).
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnknownBackend is returned by [Open] for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists every backend name in display order.
var Backends = []string{BackendNone, BackendFile, BackendMemory, BackendRedis, BackendMongo}

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and true on a hit. Misses and expired
	// entries return (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys for fetched documents.
type Keyer interface {
	DocumentKey(url string) string
}
