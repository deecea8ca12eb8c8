package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

// backends returns the caches that can run without external services.
func backends(t *testing.T) map[string]Cache {
	t.Helper()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	mc, err := NewMemoryCache(8)
	if err != nil {
		t.Fatalf("NewMemoryCache: %v", err)
	}
	return map[string]Cache{"file": fc, "memory": mc}
}

func TestCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer c.Close()

			if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
				t.Fatalf("Get(missing) = %v, %v; want miss", hit, err)
			}

			if err := c.Set(ctx, "doc", []byte("<table></table>"), time.Hour); err != nil {
				t.Fatalf("Set: %v", err)
			}
			data, hit, err := c.Get(ctx, "doc")
			if err != nil || !hit {
				t.Fatalf("Get(doc) = %v, %v; want hit", hit, err)
			}
			if string(data) != "<table></table>" {
				t.Errorf("Get(doc) = %q", data)
			}

			if err := c.Delete(ctx, "doc"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, hit, _ := c.Get(ctx, "doc"); hit {
				t.Error("entry still present after Delete")
			}
			if err := c.Delete(ctx, "doc"); err != nil {
				t.Errorf("Delete of missing key: %v", err)
			}
		})
	}
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := c.Set(ctx, "short", []byte("v"), 10*time.Millisecond); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
				t.Fatalf("Set: %v", err)
			}

			time.Sleep(20 * time.Millisecond)

			if _, hit, err := c.Get(ctx, "short"); hit || err != nil {
				t.Errorf("Get(short) = %v, %v; want expired miss", hit, err)
			}
			if _, hit, err := c.Get(ctx, "forever"); !hit || err != nil {
				t.Errorf("Get(forever) = %v, %v; want hit", hit, err)
			}
		})
	}
}

func TestFileCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("Get(bad) = %v, %v; want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCache_Clear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir not empty after Clear: %d entries", len(entries))
	}
}

func TestFileCache_PathLayout(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	p := c.path("key")
	if p != c.path("key") {
		t.Error("path should be deterministic")
	}
	if p == c.path("other") {
		t.Error("different keys should produce different paths")
	}
	rel, _ := filepath.Rel(c.Dir(), p)
	if parts := strings.Split(rel, string(filepath.Separator)); len(parts) != 2 || len(parts[0]) != 2 {
		t.Errorf("unexpected layout %q", rel)
	}
}

func TestMemoryCache_Eviction(t *testing.T) {
	ctx := context.Background()
	c, _ := NewMemoryCache(2)

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_, _, _ = c.Get(ctx, "a") // a becomes most recently used
	_ = c.Set(ctx, "c", []byte("3"), 0)

	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("least recently used entry should be evicted")
	}
	if _, hit, _ := c.Get(ctx, "a"); !hit {
		t.Error("recently used entry should survive")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestMemoryCache_CopiesInput(t *testing.T) {
	ctx := context.Background()
	c, _ := NewMemoryCache(0)

	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, 0)
	buf[0] = 'z'

	data, _, _ := c.Get(ctx, "k")
	if string(data) != "abc" {
		t.Errorf("Get() = %q, want %q", data, "abc")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKeyers(t *testing.T) {
	k := NewDefaultKeyer()
	a := k.DocumentKey("https://example.com/a")
	if !strings.HasPrefix(a, "doc:") {
		t.Errorf("DocumentKey = %q, want doc: prefix", a)
	}
	if a == k.DocumentKey("https://example.com/b") {
		t.Error("different URLs should produce different keys")
	}
	if got := k.DocumentKey("https://example.com/a#h.x1"); got != a {
		t.Errorf("fragment changed the key: %q != %q", got, a)
	}

	scoped := NewScopedKeyer(k, "team:")
	if got := scoped.DocumentKey("https://example.com/a"); got != "team:"+a {
		t.Errorf("scoped key = %q, want %q", got, "team:"+a)
	}
	if got := NewScopedKeyer(nil, "p:").DocumentKey("u"); got != "p:"+k.DocumentKey("u") {
		t.Errorf("nil inner should use default keyer, got %q", got)
	}
	if NewScopedKeyer(k, "") != k {
		t.Error("empty prefix should return inner keyer")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    Options
		wantErr error
		check   func(Cache) bool
	}{
		{"default", Options{}, nil, func(c Cache) bool { _, ok := c.(*NullCache); return ok }},
		{"none", Options{Backend: BackendNone}, nil, func(c Cache) bool { _, ok := c.(*NullCache); return ok }},
		{"file", Options{Backend: BackendFile, Dir: t.TempDir()}, nil, func(c Cache) bool { _, ok := c.(*FileCache); return ok }},
		{"memory", Options{Backend: BackendMemory}, nil, func(c Cache) bool { _, ok := c.(*MemoryCache); return ok }},
		{"unknown", Options{Backend: "etcd"}, ErrUnknownBackend, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			defer c.Close()
			if !tt.check(c) {
				t.Errorf("Open() returned %T", c)
			}
		})
	}

	if _, err := Open(ctx, Options{Backend: BackendFile}); err == nil {
		t.Error("file backend without directory should fail")
	}
}
