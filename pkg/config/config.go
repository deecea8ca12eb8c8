// Package config loads glyphgrid settings from a TOML file.
//
// The file is optional. Without it every run uses the built-in defaults:
// the published sample document, a single request with a 30 second
// timeout, and no cache. Example:
//
//	url = "https://docs.google.com/document/d/e/.../pub"
//	timeout = "10s"
//	attempts = 3
//
//	[cache]
//	backend = "file"
//	ttl = "1h"
//
//	[server]
//	addr = ":8080"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/glyphgrid/pkg/cache"
	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/fetch"
)

const (
	// AppName names the XDG config and cache subdirectories.
	AppName = "glyphgrid"

	// FileName is the config file name inside the config directory.
	FileName = "config.toml"

	// DefaultURL is the published glyph table rendered when no URL is given.
	DefaultURL = "https://docs.google.com/document/d/e/2PACX-1vRPzbNQcx5UriHSbZ-9vmsTow_R6RRe7eyAU60xIF9Dlz-vaHiHNO2TKgDi7jy4ZpTpNqM7EvEcfr_p/pub"

	// DefaultCacheTTL applies when a cache backend is enabled without a ttl.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultServerAddr is the listen address of the serve command.
	DefaultServerAddr = ":8080"

	// DefaultRedisAddr is used by the redis backend when no address is set.
	DefaultRedisAddr = "localhost:6379"

	// DefaultMongoDatabase is used by the mongo backend when no database is set.
	DefaultMongoDatabase = AppName
)

// Config holds all settings.
type Config struct {
	URL       string        `toml:"url"`
	Timeout   time.Duration `toml:"timeout"`
	Attempts  int           `toml:"attempts"`
	UserAgent string        `toml:"user_agent"`
	Cache     CacheConfig   `toml:"cache"`
	Server    ServerConfig  `toml:"server"`
}

// CacheConfig selects the document cache backend.
type CacheConfig struct {
	Backend         string        `toml:"backend"`
	TTL             time.Duration `toml:"ttl"`
	Dir             string        `toml:"dir"`
	Namespace       string        `toml:"namespace"`
	MemorySize      int           `toml:"memory_size"`
	RedisAddr       string        `toml:"redis_addr"`
	RedisPassword   string        `toml:"redis_password"`
	RedisDB         int           `toml:"redis_db"`
	MongoURI        string        `toml:"mongo_uri"`
	MongoDatabase   string        `toml:"mongo_database"`
	MongoCollection string        `toml:"mongo_collection"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		URL:      DefaultURL,
		Timeout:  fetch.DefaultTimeout,
		Attempts: fetch.DefaultAttempts,
		Cache: CacheConfig{
			Backend:    cache.BackendNone,
			TTL:        DefaultCacheTTL,
			MemorySize: cache.DefaultMemorySize,
			RedisAddr:  DefaultRedisAddr,
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// Load reads the file at path on top of the defaults. An empty path means
// [DefaultPath], which may be absent. An explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and the backend name.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout must not be negative")
	}
	if c.Attempts < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "attempts must not be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	switch c.Cache.Backend {
	case "", cache.BackendNone, cache.BackendFile, cache.BackendMemory, cache.BackendRedis:
	case cache.BackendMongo:
		if c.Cache.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: %s)",
			c.Cache.Backend, strings.Join(cache.Backends, ", "))
	}
	return nil
}

// CacheOptions converts the cache section for [cache.Open].
func (c *Config) CacheOptions() (cache.Options, error) {
	opts := cache.Options{
		Backend:    c.Cache.Backend,
		Dir:        c.Cache.Dir,
		MemorySize: c.Cache.MemorySize,
		Redis: cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
		Mongo: cache.MongoOptions{
			URI:        c.Cache.MongoURI,
			Database:   c.Cache.MongoDatabase,
			Collection: c.Cache.MongoCollection,
		},
	}
	if opts.Backend == cache.BackendFile && opts.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return opts, err
		}
		opts.Dir = dir
	}
	if opts.Redis.Addr == "" {
		opts.Redis.Addr = DefaultRedisAddr
	}
	if opts.Mongo.Database == "" {
		opts.Mongo.Database = DefaultMongoDatabase
	}
	return opts, nil
}

// Keyer returns the document keyer, scoped by cache.namespace when set.
func (c *Config) Keyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Namespace)
}

// FetchOptions converts the fetch settings. The cache is supplied separately.
func (c *Config) FetchOptions() fetch.Options {
	return fetch.Options{
		Timeout:   c.Timeout,
		Attempts:  c.Attempts,
		UserAgent: c.UserAgent,
		CacheTTL:  c.Cache.TTL,
		Keyer:     c.Keyer(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/glyphgrid/config.toml, falling back
// to ~/.config/glyphgrid/config.toml.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, FileName), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/glyphgrid/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
