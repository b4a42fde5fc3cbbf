package main

import (
	"fmt"

	"github.com/fwojciec/govdoc"
	"github.com/fwojciec/govdoc/fs"
)

// Run executes the cache purge command.
func (c *CachePurgeCmd) Run(deps *Dependencies) error {
	if c.MaxAge <= 0 {
		return govdoc.Errorf(govdoc.EINVALID, "--max-age must be positive")
	}
	cache := fs.NewCache(deps.CacheDir, fs.WithPolicy(govdoc.CachePolicy{MaxAge: c.MaxAge}))
	n, err := cache.Purge(deps.Ctx)
	if err != nil {
		return fmt.Errorf("purging cache: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "Removed %d cached documents older than %s from %s\n", n, c.MaxAge, cache.Dir())
	return nil
}

// Run executes the cache clear command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	cache := fs.NewCache(deps.CacheDir)
	n, err := cache.Clear()
	if err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "Removed %d cached documents from %s\n", n, cache.Dir())
	return nil
}

// Run executes the cache path command.
func (c *CachePathCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, fs.NewCache(deps.CacheDir).Path(c.URL))
	return nil
}
