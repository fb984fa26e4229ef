package sources

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrDailyLimitReached is returned when the provider's daily call quota is
// used up.
var ErrDailyLimitReached = errors.New("daily API limit reached")

// RateLimiter throttles calls to a metered provider: a token bucket bounds
// the per-second rate and a counter bounds calls per rolling 24 hours. The
// window opens at construction and restarts the first time it is checked
// after expiring.
type RateLimiter struct {
	limiter *rate.Limiter
	now     func() time.Time

	mu       sync.Mutex
	used     int64
	maxDaily int64
	resetAt  time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.now = now
	}
}

// NewRateLimiter allows perSecond calls per second with the given burst and
// at most maxDaily calls per window. A maxDaily of zero or less disables
// the daily quota.
func NewRateLimiter(perSecond float64, burst int, maxDaily int64, opts ...RateLimiterOption) *RateLimiter {
	r := &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.now().Add(24 * time.Hour)
	return r
}

// Wait blocks until a call is allowed or ctx is done. The quota is charged
// only when Wait returns nil.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.reserveDaily(); err != nil {
		return err
	}
	if err := r.limiter.Wait(ctx); err != nil {
		r.refundDaily()
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// MaxDaily returns the configured daily budget. Zero or less means
// unlimited.
func (r *RateLimiter) MaxDaily() int64 {
	return r.maxDaily
}

// DailyCount returns the calls charged in the current window.
func (r *RateLimiter) DailyCount() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used
}

// Remaining returns the calls left in the current window.
func (r *RateLimiter) Remaining() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.maxDaily <= 0 {
		return -1
	}
	return max(r.maxDaily-r.used, 0)
}

// ResetAt returns when the current window expires.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}

func (r *RateLimiter) reserveDaily() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if now := r.now(); now.After(r.resetAt) {
		r.used = 0
		r.resetAt = now.Add(24 * time.Hour)
	}
	if r.maxDaily > 0 && r.used >= r.maxDaily {
		return fmt.Errorf("%w (%d/%d)", ErrDailyLimitReached, r.used, r.maxDaily)
	}
	r.used++
	return nil
}

func (r *RateLimiter) refundDaily() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.used > 0 {
		r.used--
	}
}
