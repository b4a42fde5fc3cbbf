package rod

import (
	"sync"

	"github.com/fwojciec/govdoc"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages a browser renders before it is
// replaced.
const DefaultMaxPages = 75

// instance is one launched Chrome process and its usage.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	rendered int64
	leased   int
	retired  bool
}

// shutdown closes the browser and kills its process.
func (in *instance) shutdown() error {
	err := in.browser.Close()
	in.launcher.Kill()
	return err
}

// Lease is a browser checked out for rendering one page. Release must be
// called once the page is closed.
type Lease struct {
	Browser *rod.Browser

	once    sync.Once
	release func()
}

// Release returns the browser to the manager. Release is safe to call more
// than once.
func (l *Lease) Release() {
	l.once.Do(l.release)
}

// BrowserManager owns the headless Chrome process and replaces it after a
// fixed number of rendered pages. Chrome memory grows with every page and
// does not return to baseline after pages are closed.
//
// A replaced browser is retired rather than closed: pages still rendering
// on it finish, and it shuts down when its last lease is released.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *instance
	maxPages int64
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a browser renders before it is replaced.
// Zero disables recycling.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome browser. Close must be called
// when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	in, err := launch()
	if err != nil {
		return nil, err
	}
	bm.current = in

	return bm, nil
}

// Acquire leases the current browser for one page, first replacing it if it
// has rendered maxPages. Returns EINVALID after Close.
func (bm *BrowserManager) Acquire() (*Lease, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, govdoc.Errorf(govdoc.EINVALID, "browser is closed")
	}

	if bm.maxPages > 0 && bm.current.rendered >= bm.maxPages {
		bm.recycle()
	}

	in := bm.current
	in.leased++
	return &Lease{
		Browser: in.browser,
		release: func() { bm.release(in) },
	}, nil
}

// release counts a rendered page against in and shuts it down if it was
// retired and this was its last lease.
func (bm *BrowserManager) release(in *instance) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	in.leased--
	in.rendered++
	if in.retired && in.leased == 0 {
		_ = in.shutdown()
	}
}

// recycle replaces the current browser. If the new launch fails the current
// browser keeps serving and the next Acquire tries again.
// Must be called with mu held.
func (bm *BrowserManager) recycle() {
	next, err := launch()
	if err != nil {
		return
	}

	old := bm.current
	bm.current = next
	old.retired = true
	if old.leased == 0 {
		_ = old.shutdown()
	}
}

// Close shuts down the current browser. Retired browsers with pages still in
// flight shut down as their leases are released. Close is safe to call
// multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return bm.current.shutdown()
}

// launch starts a browser with flags that keep background pages rendering
// at full speed.
func launch() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, govdoc.Errorf(govdoc.EFETCH, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, govdoc.Errorf(govdoc.EFETCH, "connecting to browser: %v", err)
	}

	return &instance{browser: browser, launcher: l}, nil
}

// LauncherPID returns the process ID of the current browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.current.launcher.PID()
}
