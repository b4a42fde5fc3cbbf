// Package limit provides per-domain request pacing using x/time/rate.
package limit

import (
	"context"
	"sync"

	"github.com/fwojciec/govdoc"
	"golang.org/x/time/rate"
)

// DefaultRPS is the default number of requests per second to one domain.
const DefaultRPS = 1.0

var _ govdoc.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests with one token bucket per host, so requests
// to different government sites proceed concurrently while each site sees at
// most rps requests per second.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests per
// second limit. A non-positive rps disables pacing.
func NewDomainLimiter(rps float64) *DomainLimiter {
	d := &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
	}
	if rps <= 0 {
		d.limit = rate.Inf
	}
	return d
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
