// Package events broadcasts session changes to in-process subscribers and,
// through a relay, to other instances.
//
// Every Change carries the id of the instance that produced it and a sequence
// number that only grows per origin. The bus remembers which sequence numbers
// it has delivered per origin, so a change that arrives twice (locally and via
// the relay) reaches subscribers once even when changes arrive out of order.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind is what happened to the session's cached state.
type Kind string

const (
	ProfileSaved   Kind = "profile_saved"
	ProfileCleared Kind = "profile_cleared"
)

// Change is one broadcast.
type Change struct {
	Kind      Kind      `json:"kind"`
	SessionID string    `json:"session_id"`
	Origin    string    `json:"origin"`
	Seq       uint64    `json:"seq"`
	At        time.Time `json:"at"`
}

// Handler receives changes. It runs on the publisher's goroutine and must not
// block.
type Handler func(ctx context.Context, change Change)

// seenWindow is how many sequence numbers per origin are remembered. A change
// older than the window is treated as already delivered.
const seenWindow = 4096

// Bus is an in-process observable with per-origin de-duplication.
type Bus struct {
	origin string
	logger *slog.Logger

	mu       sync.Mutex
	seq      uint64
	seen     map[string]*seenSet
	handlers map[uint64]Handler
	nextID   uint64
}

// seenSet tracks delivered sequence numbers for one origin.
type seenSet struct {
	high uint64
	seqs map[uint64]struct{}
}

// mark records seq and reports whether it was new.
func (s *seenSet) mark(seq uint64) bool {
	if s.high >= seenWindow && seq <= s.high-seenWindow {
		return false
	}
	if _, dup := s.seqs[seq]; dup {
		return false
	}
	s.seqs[seq] = struct{}{}
	if seq > s.high {
		s.high = seq
		if s.high > seenWindow {
			floor := s.high - seenWindow
			for old := range s.seqs {
				if old <= floor {
					delete(s.seqs, old)
				}
			}
		}
	}
	return true
}

// NewBus creates a bus with a fresh origin id.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		origin:   uuid.NewString(),
		logger:   logger,
		seen:     make(map[string]*seenSet),
		handlers: make(map[uint64]Handler),
	}
}

// Origin identifies this instance.
func (b *Bus) Origin() string {
	return b.origin
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (b *Bus) Subscribe(fn Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.handlers, id)
			b.mu.Unlock()
		})
	}
}

// Publish stamps a locally produced change with this origin and the next
// sequence number, then delivers it. Stamping and marking happen under one
// lock, so concurrent publishes are never mistaken for duplicates.
func (b *Bus) Publish(ctx context.Context, kind Kind, sessionID string) Change {
	b.mu.Lock()
	b.seq++
	change := Change{
		Kind:      kind,
		SessionID: sessionID,
		Origin:    b.origin,
		Seq:       b.seq,
		At:        time.Now().UTC(),
	}
	b.markLocked(change)
	handlers := b.handlersLocked()
	b.mu.Unlock()

	b.dispatchAll(ctx, handlers, change)
	return change
}

// Deliver hands a change to subscribers unless the same change was already
// delivered. It reports whether delivery happened.
func (b *Bus) Deliver(ctx context.Context, change Change) bool {
	b.mu.Lock()
	if !b.markLocked(change) {
		b.mu.Unlock()
		return false
	}
	handlers := b.handlersLocked()
	b.mu.Unlock()

	b.dispatchAll(ctx, handlers, change)
	return true
}

func (b *Bus) markLocked(change Change) bool {
	set, ok := b.seen[change.Origin]
	if !ok {
		set = &seenSet{seqs: make(map[uint64]struct{})}
		b.seen[change.Origin] = set
	}
	return set.mark(change.Seq)
}

func (b *Bus) handlersLocked() []Handler {
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	return handlers
}

func (b *Bus) dispatchAll(ctx context.Context, handlers []Handler, change Change) {
	for _, h := range handlers {
		b.dispatch(ctx, h, change)
	}
}

func (b *Bus) dispatch(ctx context.Context, h Handler, change Change) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "session change handler panicked",
				"kind", change.Kind,
				"panic", r,
			)
		}
	}()
	h(ctx, change)
}
