package cache

import (
	"context"
	"fmt"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend    string // one of Backends; empty means BackendNone
	Dir        string // FileCache directory
	MemorySize int    // MemoryCache entry limit
	Redis      RedisOptions
	Mongo      MongoOptions
}

// Open creates the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: directory is required")
		}
		return NewFileCache(opts.Dir)
	case BackendMemory:
		return NewMemoryCache(opts.MemorySize)
	case BackendRedis:
		c, err := NewRedisCache(ctx, opts.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis cache %s: %w", opts.Redis.Addr, err)
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, opts.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo cache: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
