package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"assetdesk/internal/events"
	"assetdesk/internal/profile"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/sentinel"
	"assetdesk/pkg/requestcontext"
)

// Cache persists the signed-in profile per session. Reads never reach the
// backend; callers that need fresh data go through the auth bridge.
type Cache struct {
	store  Store
	vault  *Vault
	bus    *events.Bus
	ttl    time.Duration
	logger *slog.Logger

	mu   sync.RWMutex
	memo map[string]memoEntry
}

// memoEntry mirrors a stored profile. It expires with the stored copy.
type memoEntry struct {
	rec       profile.Record
	expiresAt time.Time
}

func (e memoEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// storedProfile is the value written to the store. ExpiresAt lets a reader on
// another instance memoize the record for exactly as long as the store keeps it.
type storedProfile struct {
	Record    profile.Record `json:"record"`
	ExpiresAt time.Time      `json:"expiresAt,omitzero"`
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// NewCache builds a cache over the durable store. ttl bounds how long a
// profile outlives its last save.
func NewCache(store Store, vault *Vault, bus *events.Bus, ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{
		store:  store,
		vault:  vault,
		bus:    bus,
		ttl:    ttl,
		logger: slog.Default(),
		memo:   make(map[string]memoEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Watch drops memoized profiles when another instance changes them. The
// returned function stops watching.
func (c *Cache) Watch() func() {
	return c.bus.Subscribe(func(_ context.Context, change events.Change) {
		if change.Origin == c.bus.Origin() {
			return
		}
		c.forget(change.SessionID)
	})
}

// Vault exposes the token vault sharing this cache's lifetime.
func (c *Cache) Vault() *Vault {
	return c.vault
}

// LoadRecord returns the cached record as stored, including a role the
// profile model does not recognise. Missing profiles yield sentinel.ErrNotFound.
func (c *Cache) LoadRecord(ctx context.Context, sessionID string) (profile.Record, error) {
	now := requestcontext.Now(ctx)

	c.mu.RLock()
	entry, ok := c.memo[sessionID]
	c.mu.RUnlock()
	if ok {
		if !entry.expired(now) {
			return entry.rec, nil
		}
		c.forgetExpired(sessionID, now)
	}

	raw, err := c.store.Get(ctx, profileKey(sessionID))
	if err != nil {
		return profile.Record{}, err
	}
	var stored storedProfile
	if err := json.Unmarshal(raw, &stored); err != nil {
		return profile.Record{}, fmt.Errorf("decode cached profile: %w", err)
	}
	entry = memoEntry{rec: stored.Record, expiresAt: stored.ExpiresAt}
	if entry.expired(now) {
		return profile.Record{}, sentinel.ErrNotFound
	}

	c.mu.Lock()
	c.memo[sessionID] = entry
	c.mu.Unlock()
	return entry.rec, nil
}

// Load returns the cached profile. A cached record with an unrecognised role
// yields profile.ErrUnknownRole.
func (c *Cache) Load(ctx context.Context, sessionID string) (profile.Profile, error) {
	rec, err := c.LoadRecord(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return profile.Decode(rec)
}

// Save persists p and announces the change.
func (c *Cache) Save(ctx context.Context, sessionID string, p profile.Profile) error {
	if err := profile.Validate(p); err != nil {
		return err
	}
	return c.SaveRecord(ctx, sessionID, profile.Encode(p))
}

// SaveRecord persists a backend record verbatim. The auth bridge uses it so a
// role outside the known set still reaches the role router.
func (c *Cache) SaveRecord(ctx context.Context, sessionID string, rec profile.Record) error {
	if sessionID == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "session id is required")
	}
	if rec.Email == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "profile email is required")
	}
	entry := memoEntry{rec: rec}
	if c.ttl > 0 {
		entry.expiresAt = requestcontext.Now(ctx).Add(c.ttl)
	}
	raw, err := json.Marshal(storedProfile{Record: rec, ExpiresAt: entry.expiresAt})
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := c.store.Set(ctx, profileKey(sessionID), raw, c.ttl); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}

	c.mu.Lock()
	c.memo[sessionID] = entry
	c.mu.Unlock()

	c.bus.Publish(ctx, events.ProfileSaved, sessionID)
	return nil
}

// Clear removes the profile and every token held for the session. It reports
// whether anything was present; the change is only announced in that case.
func (c *Cache) Clear(ctx context.Context, sessionID string) (bool, error) {
	_, memoized := c.forget(sessionID)

	profiles, errProfile := c.store.Delete(ctx, profileKey(sessionID))
	tokens, errTokens := c.vault.Purge(ctx, sessionID)
	if err := errors.Join(errProfile, errTokens); err != nil {
		c.logger.WarnContext(ctx, "session clear incomplete", "error", err)
	}

	cleared := memoized || profiles+tokens > 0
	if cleared {
		c.bus.Publish(ctx, events.ProfileCleared, sessionID)
	}
	return cleared, errors.Join(errProfile, errTokens)
}

// Run drops expired memo entries until ctx is done, so sessions that simply
// lapse do not pile up in memory.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.prune(now)
		}
	}
}

func (c *Cache) prune(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for id, entry := range c.memo {
		if entry.expired(now) {
			delete(c.memo, id)
			dropped++
		}
	}
	return dropped
}

// memoSize reports how many profiles are held in memory.
func (c *Cache) memoSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memo)
}

func (c *Cache) forgetExpired(sessionID string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.memo[sessionID]; ok && entry.expired(now) {
		delete(c.memo, sessionID)
	}
}

func (c *Cache) forget(sessionID string) (profile.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.memo[sessionID]
	delete(c.memo, sessionID)
	return entry.rec, ok
}
