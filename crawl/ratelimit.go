package crawl

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/jobscout"
	"golang.org/x/time/rate"
)

var _ jobscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter keeps one token bucket per host so that a run paging
// through one careers site never hammers it, while runs against different
// sites proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each domain, with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// waitURL waits on the limiter for rawURL's host. A nil limiter never blocks.
func waitURL(ctx context.Context, limiter jobscout.DomainLimiter, rawURL string) error {
	if limiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return jobscout.Errorf(jobscout.EINVALID, "invalid page URL %q", rawURL)
	}
	return limiter.Wait(ctx, u.Host)
}
