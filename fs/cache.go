// Package fs provides file-based storage for verified source content.
package fs

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/govdoc"
)

// DefaultExtension is the file extension used for cache entries.
const DefaultExtension = ".pdf"

// Ensure Cache implements govdoc.Cache at compile time.
var _ govdoc.Cache = (*Cache)(nil)

// Cache implements govdoc.Cache as a directory of files named by the MD5
// digest of the source URL. The digest is a file name, not a security
// boundary.
//
// Entries are written to a temporary file in the same directory and renamed
// into place, so a partially written entry is never visible. Concurrent
// misses for the same URL each fetch and the last rename wins.
type Cache struct {
	dir    string
	policy govdoc.CachePolicy
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithPolicy sets the expiry policy. Defaults to govdoc.NeverExpire.
func WithPolicy(p govdoc.CachePolicy) CacheOption {
	return func(c *Cache) {
		c.policy = p
	}
}

// NewCache creates a new Cache rooted at dir. The directory is created on
// first write.
func NewCache(dir string, opts ...CacheOption) *Cache {
	c := &Cache{
		dir:    dir,
		policy: govdoc.NeverExpire,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Key returns the cache key for url.
func Key(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Path returns the file path of the entry for url.
func (c *Cache) Path(url string) string {
	return filepath.Join(c.dir, Key(url)+DefaultExtension)
}

// GetOrFetch returns the cached bytes for url, calling fetch on a miss.
func (c *Cache) GetOrFetch(ctx context.Context, url string, fetch govdoc.FetchFunc) ([]byte, error) {
	path := c.Path(url)

	data, ok, err := c.load(path)
	if err != nil {
		return nil, err
	}
	if ok {
		return data, nil
	}

	data, err = fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.store(path, data); err != nil {
		return nil, err
	}
	return data, nil
}

// load reads the entry at path. It reports ok=false for missing or expired entries.
func (c *Cache) load(path string) ([]byte, bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, govdoc.Errorf(govdoc.EFETCH, "reading cache entry: %v", err)
	}
	if c.policy.Expired(info.ModTime(), time.Now()) {
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, govdoc.Errorf(govdoc.EFETCH, "reading cache entry: %v", err)
	}
	return data, true, nil
}

// store writes data to a temporary file and renames it to path.
func (c *Cache) store(path string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return govdoc.Errorf(govdoc.EFETCH, "creating cache directory: %v", err)
	}

	tmp, err := os.CreateTemp(c.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return govdoc.Errorf(govdoc.EFETCH, "writing cache entry: %v", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return govdoc.Errorf(govdoc.EFETCH, "writing cache entry: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return govdoc.Errorf(govdoc.EFETCH, "writing cache entry: %v", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return govdoc.Errorf(govdoc.EFETCH, "committing cache entry: %v", err)
	}
	return nil
}

// Purge removes entries that are expired under the cache policy and
// returns how many were removed. With govdoc.NeverExpire nothing is removed.
func (c *Cache) Purge(ctx context.Context) (int, error) {
	if c.policy.MaxAge <= 0 {
		return 0, nil
	}

	entries, err := c.entries()
	if err != nil {
		return 0, err
	}

	now := time.Now()
	removed := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		info, err := e.Info()
		if err != nil {
			continue // removed concurrently
		}
		if !c.policy.Expired(info.ModTime(), now) {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Clear removes every entry and leftover temporary file. The directory
// itself is kept.
func (c *Cache) Clear() (int, error) {
	entries, err := c.entries()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// entries lists cache entry files and temporary files in the directory.
func (c *Cache) entries() ([]os.DirEntry, error) {
	all, err := os.ReadDir(c.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []os.DirEntry
	for _, e := range all {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, DefaultExtension) || strings.HasSuffix(name, ".tmp") {
			out = append(out, e)
		}
	}
	return out, nil
}
