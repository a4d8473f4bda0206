package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"

	"assetdesk/internal/ratelimit/metrics"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/httputil"
	"assetdesk/pkg/requestcontext"
)

// Checker decides whether an IP may proceed.
type Checker interface {
	Check(ip string) Result
}

type Middleware struct {
	limiter  Checker
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

type Option func(*Middleware)

// WithDisabled disables rate limiting entirely (for testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

// WithMetrics counts rejections.
func WithMetrics(collector *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = collector
	}
}

func New(limiter Checker, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimit rejects requests over the per-IP budget with 429.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		result := m.limiter.Check(ip)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			m.metrics.IncrementRejections(r.URL.Path)
			m.logger.WarnContext(ctx, "rate limit exceeded",
				"path", r.URL.Path,
				"request_id", requestcontext.RequestID(ctx),
			)
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
			httputil.WriteError(w, dErrors.New(dErrors.CodeTooManyRequests, "Too many attempts. Please try again later."))
			return
		}

		next.ServeHTTP(w, r)
	})
}
