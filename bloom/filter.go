// Package bloom provides URL de-duplication for large sitemap listings
// using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/govdoc"
)

// DefaultFalsePositiveRate is the chance that an unseen URL is reported as
// seen and dropped from a listing.
const DefaultFalsePositiveRate = 1e-6

// minCapacity keeps filters for tiny listings from degenerating.
const minCapacity = 64

var _ govdoc.URLSet = (*Filter)(nil)

// Filter is a Bloom filter of URLs. A false positive makes an unseen URL
// look seen; a seen URL is never reported as unseen.
// Filter is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(max(n, minCapacity), fpRate),
	}
}

// NewURLSet returns a filter sized for a listing of n URLs.
func NewURLSet(n int) govdoc.URLSet {
	return NewFilter(uint(max(n, 0)), DefaultFalsePositiveRate)
}

// TestAndAdd reports whether the URL might already be in the filter and
// adds it.
func (f *Filter) TestAndAdd(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(url)
}
