// Package ratelimit throttles credential endpoints per client IP with token
// buckets from golang.org/x/time/rate.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"assetdesk/internal/ratelimit/metrics"
)

const (
	cleanupInterval = 3 * time.Minute
	idleAfter       = 5 * time.Minute
)

// Result is the outcome of one check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter int // seconds
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPLimiter keeps one token bucket per client IP.
type IPLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	burst    int
	now      func() time.Time
	metrics  *metrics.Metrics
}

// LimiterOption configures an IPLimiter.
type LimiterOption func(*IPLimiter)

// WithLimiterMetrics reports the number of tracked IPs.
func WithLimiterMetrics(m *metrics.Metrics) LimiterOption {
	return func(l *IPLimiter) {
		l.metrics = m
	}
}

// NewIPLimiter allows perSecond sustained requests with the given burst.
func NewIPLimiter(perSecond float64, burst int, opts ...LimiterOption) *IPLimiter {
	l := &IPLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check consumes one token for ip.
func (l *IPLimiter) Check(ip string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now

	allowed := entry.limiter.AllowN(now, 1)
	remaining := max(int(math.Floor(entry.limiter.TokensAt(now))), 0)

	res := Result{Allowed: allowed, Limit: l.burst, Remaining: remaining}
	if !allowed {
		res.RetryAfter = max(int(math.Ceil(1/float64(l.rate))), 1)
	}
	return res
}

// Run evicts idle buckets until ctx is done.
func (l *IPLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evictIdle()
		}
	}
}

func (l *IPLimiter) evictIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idleAfter)
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
	l.metrics.SetTrackedIPs(len(l.limiters))
}

func (l *IPLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
