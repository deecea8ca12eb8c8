package cache

import (
	"context"
	"time"
)

// NullCache backs the "none" backend, the default. Every Get misses, so each
// run downloads the document again, and writes are discarded.
type NullCache struct{}

// NewNullCache returns the "none" backend.
func NewNullCache() Cache { return &NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
