package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/govdoc/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	set := bloom.NewURLSet(3)

	assert.False(t, set.TestAndAdd("https://upsc.gov.in/exams"), "first sighting")
	assert.True(t, set.TestAndAdd("https://upsc.gov.in/exams"), "second sighting")
	assert.False(t, set.TestAndAdd("https://upsc.gov.in/results"))
}

func TestFilter_TestAndAdd_Concurrent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.001)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fresh int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !f.TestAndAdd("https://gov.in/shared") {
				mu.Lock()
				fresh++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fresh, "exactly one goroutine sees the URL first")
}

func TestNewURLSet_SizedListingKeepsDistinctURLs(t *testing.T) {
	t.Parallel()

	const n = 50000

	set := bloom.NewURLSet(n)
	dropped := 0
	for i := range n {
		if set.TestAndAdd(fmt.Sprintf("https://india.gov.in/sitemap/page/%d", i)) {
			dropped++
		}
	}

	// Expected false positives at this sizing are about 0.05.
	assert.LessOrEqual(t, dropped, 2, "%d distinct URLs reported as seen", dropped)
}

func TestNewURLSet_EmptyListing(t *testing.T) {
	t.Parallel()

	set := bloom.NewURLSet(0)

	assert.False(t, set.TestAndAdd("https://gov.in/"))
	assert.True(t, set.TestAndAdd("https://gov.in/"))
}
