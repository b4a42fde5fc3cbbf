//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/govdoc"
	"github.com/fwojciec/govdoc/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// render leases a browser for one page and releases it.
func render(t *testing.T, manager *rod.BrowserManager) {
	t.Helper()

	lease, err := manager.Acquire()
	require.NoError(t, err)
	lease.Release()
}

func TestBrowserManager_RecyclesBrowserAfterMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(3))
	require.NoError(t, err)
	defer manager.Close()

	first, err := manager.Acquire()
	require.NoError(t, err)
	first.Release()
	render(t, manager)
	render(t, manager)

	second, err := manager.Acquire()
	require.NoError(t, err)
	defer second.Release()

	assert.NotSame(t, first.Browser, second.Browser)
}

func TestBrowserManager_DoesNotRecycleBeforeMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(5))
	require.NoError(t, err)
	defer manager.Close()

	first, err := manager.Acquire()
	require.NoError(t, err)
	first.Release()
	render(t, manager)

	same, err := manager.Acquire()
	require.NoError(t, err)
	defer same.Release()

	assert.Same(t, first.Browser, same.Browser)
}

func TestBrowserManager_KeepsRetiredBrowserForLeasedPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
	require.NoError(t, err)
	defer manager.Close()

	inFlight, err := manager.Acquire()
	require.NoError(t, err)
	render(t, manager)

	fresh, err := manager.Acquire()
	require.NoError(t, err)
	defer fresh.Release()
	require.NotSame(t, inFlight.Browser, fresh.Browser)

	page, err := inFlight.Browser.Page(proto.TargetCreateTarget{})
	require.NoError(t, err, "retired browser should still serve its lease")
	require.NoError(t, page.Close())

	inFlight.Release()
	inFlight.Release()
}

func TestBrowserManager_Acquire_AfterClose(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	require.NoError(t, manager.Close())
	require.NoError(t, manager.Close())

	_, err = manager.Acquire()

	require.Error(t, err)
	assert.Equal(t, govdoc.EINVALID, govdoc.ErrorCode(err))
}
