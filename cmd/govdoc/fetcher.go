package main

import (
	"context"
	"sync"

	"github.com/fwojciec/govdoc"
	"github.com/fwojciec/govdoc/rod"
)

var _ govdoc.Fetcher = (*lazyFetcher)(nil)

// lazyFetcher launches the browser on the first Fetch so commands that never
// render a page do not pay for a Chrome start.
type lazyFetcher struct {
	opts []rod.FetcherOption

	once    sync.Once
	mu      sync.Mutex
	fetcher *rod.Fetcher
	err     error
}

func (f *lazyFetcher) start() (*rod.Fetcher, error) {
	f.once.Do(func() {
		fetcher, err := rod.NewFetcher(f.opts...)
		if err != nil {
			err = govdoc.Errorf(govdoc.EFETCH, "starting browser (Chrome or Chromium must be installed): %v", err)
		}
		f.mu.Lock()
		f.fetcher, f.err = fetcher, err
		f.mu.Unlock()
	})
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetcher, f.err
}

func (f *lazyFetcher) Fetch(ctx context.Context, url string) (string, error) {
	fetcher, err := f.start()
	if err != nil {
		return "", err
	}
	return fetcher.Fetch(ctx, url)
}

func (f *lazyFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetcher == nil {
		return nil
	}
	return f.fetcher.Close()
}
