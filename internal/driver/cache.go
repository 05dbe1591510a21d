package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ngmigrate/internal/project"
)

// cacheSchemaVersion invalidates old entries when the payload changes.
const cacheSchemaVersion uint16 = 1

// CleanCache remembers files that previous runs found clean, keyed by
// content hash combined with the configuration digest. A cache hit means
// the file can be skipped without re-parsing. Thread-safe; a nil cache is
// a valid no-op.
type CleanCache struct {
	mu  sync.RWMutex
	dir string
}

// cleanEntry is what one cache file stores.
type cleanEntry struct {
	Schema    uint16
	Path      string
	CheckedAt int64
}

// OpenCleanCache initializes a cache under the XDG cache directory.
func OpenCleanCache(app string) (*CleanCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "clean")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CleanCache{dir: dir}, nil
}

func (c *CleanCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Known reports whether key was recorded clean by an earlier run.
func (c *CleanCache) Known(key project.Digest) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	var entry cleanEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return false
	}
	return entry.Schema == cacheSchemaVersion
}

// Remember records key as clean. Written atomically via rename.
func (c *CleanCache) Remember(key project.Digest, path string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	entry := cleanEntry{
		Schema:    cacheSchemaVersion,
		Path:      path,
		CheckedAt: time.Now().Unix(),
	}
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	if err := os.Rename(f.Name(), p); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("cache rename: %w", err)
	}
	return nil
}

// DropAll wipes the cache directory.
func (c *CleanCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
