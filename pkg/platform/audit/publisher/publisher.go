// Package publisher fronts an audit store with timestamping, categorisation,
// an optional asynchronous buffer and a circuit breaker.
//
// Audit emission is best-effort: in async mode Emit never blocks the caller
// and never fails once the event is buffered.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	audit "assetdesk/pkg/platform/audit"
	"assetdesk/pkg/platform/middleware/device"
	"assetdesk/pkg/requestcontext"
)

// ErrCircuitOpen is returned in sync mode while the store is considered down.
var ErrCircuitOpen = errors.New("audit store circuit open")

const drainBatch = 64

// Metrics holds Prometheus metrics for audit publishing.
type Metrics struct {
	Emitted prometheus.Counter
	Dropped *prometheus.CounterVec
}

// NewMetrics registers the publisher metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Emitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "assetdesk_audit_events_emitted_total",
			Help: "Audit events delivered to the store",
		}),
		Dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assetdesk_audit_events_dropped_total",
			Help: "Audit events not delivered, by reason",
		}, []string{"reason"}),
	}
}

func (m *Metrics) emitted() {
	if m != nil {
		m.Emitted.Inc()
	}
}

func (m *Metrics) dropped(reason string) {
	if m != nil {
		m.Dropped.WithLabelValues(reason).Inc()
	}
}

// Publisher implements audit.Emitter.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
	breaker *circuitBreaker

	buffer    *ringBuffer
	wake      chan struct{}
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous delivery through a bounded buffer.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.buffer = newRingBuffer(size)
	}
}

// WithLogger sets a logger for delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithCircuitBreaker overrides the failure threshold and cooldown.
func WithCircuitBreaker(threshold int, cooldown time.Duration) Option {
	return func(p *Publisher) {
		p.breaker = newCircuitBreaker(threshold, cooldown)
	}
}

// NewPublisher creates a publisher over store. Without WithAsyncBuffer every
// Emit writes through synchronously.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:   store,
		logger:  slog.Default(),
		breaker: newCircuitBreaker(0, 0),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.buffer != nil {
		p.wake = make(chan struct{}, 1)
		p.done = make(chan struct{})
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// Emit stamps and categorises the event, then delivers or buffers it.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.IP == "" {
		event.IP = requestcontext.ClientIP(ctx)
	}
	if event.Device == "" {
		event.Device = device.GetLabel(ctx)
	}

	if p.buffer == nil {
		return p.deliver(ctx, event)
	}

	if p.buffer.enqueue(event) {
		p.metrics.dropped("buffer_full")
	}
	select {
	case p.wake <- struct{}{}:
	default:
	}
	return nil
}

func (p *Publisher) deliver(ctx context.Context, event audit.Event) error {
	if !p.breaker.allow() {
		p.metrics.dropped("circuit_open")
		return ErrCircuitOpen
	}
	if err := p.store.Append(ctx, event); err != nil {
		p.breaker.recordFailure()
		p.metrics.dropped("store_error")
		p.logger.WarnContext(ctx, "audit delivery failed",
			"action", event.Action,
			"category", event.Category,
			"error", err,
		)
		return err
	}
	p.breaker.recordSuccess()
	p.metrics.emitted()
	return nil
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.wake:
			p.drain()
		case <-p.done:
			p.drain()
			return
		}
	}
}

func (p *Publisher) drain() {
	ctx := context.Background()
	for {
		batch := p.buffer.dequeueBatch(drainBatch)
		if len(batch) == 0 {
			return
		}
		for _, event := range batch {
			_ = p.deliver(ctx, event)
		}
	}
}

// Pending returns the number of buffered events not yet delivered.
func (p *Publisher) Pending() int {
	if p.buffer == nil {
		return 0
	}
	return p.buffer.len()
}

// Close drains the buffer and stops the worker. Safe to call more than once.
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() {
		if p.done != nil {
			close(p.done)
			p.wg.Wait()
		}
	})
	return nil
}
