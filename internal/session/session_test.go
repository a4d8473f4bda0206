package session

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/events"
	"assetdesk/internal/profile"
	"assetdesk/pkg/platform/sentinel"
	"assetdesk/pkg/requestcontext"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	ephemeral *MemoryStore
	durable   *MemoryStore
	vault     *Vault
	bus       *events.Bus
	cache     *Cache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sealer, err := NewSealer("test-secret")
	require.NoError(t, err)

	f := &fixture{
		ephemeral: NewMemoryStore(),
		durable:   NewMemoryStore(),
		bus:       events.NewBus(discardLogger()),
	}
	f.vault = NewVault(f.ephemeral, f.durable, sealer, time.Hour, WithVaultLogger(discardLogger()))
	f.cache = NewCache(f.durable, f.vault, f.bus, time.Hour, WithCacheLogger(discardLogger()))
	return f
}

func employee(email string) *profile.Employee {
	return &profile.Employee{Account: profile.Account{ID: "u1", Email: email, Name: "A"}}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("expired entries read as not found", func(t *testing.T) {
		s := NewMemoryStore()
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return now }

		require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)

		now = now.Add(time.Minute)
		_, err = s.Get(ctx, "k")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		s.cleanup()
		assert.Zero(t, s.len())
	})

	t.Run("delete counts only live entries", func(t *testing.T) {
		s := NewMemoryStore()
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return now }

		require.NoError(t, s.Set(ctx, "live", []byte("1"), time.Hour))
		require.NoError(t, s.Set(ctx, "stale", []byte("2"), time.Second))
		now = now.Add(time.Minute)

		n, err := s.Delete(ctx, "live", "stale", "absent")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Zero(t, s.len())
	})

	t.Run("returned values are copies", func(t *testing.T) {
		s := NewMemoryStore()
		value := []byte("abc")
		require.NoError(t, s.Set(ctx, "k", value, time.Hour))
		value[0] = 'x'

		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))
	})
}

func TestSealer(t *testing.T) {
	s, err := NewSealer("secret")
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("token"), "token:backend:s1")
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "token")

	plain, err := s.Open(sealed, "token:backend:s1")
	require.NoError(t, err)
	assert.Equal(t, "token", string(plain))

	_, err = s.Open(sealed, "token:backend:s2")
	assert.Error(t, err, "value sealed for another key must not open")

	_, err = s.Open([]byte("short"), "token:backend:s1")
	assert.ErrorIs(t, err, errSealedTooShort)

	_, err = NewSealer("")
	assert.Error(t, err)
}

func TestVault(t *testing.T) {
	ctx := context.Background()

	t.Run("ephemeral tier wins over durable", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.vault.Put(ctx, "s1", TokenBackend, "durable-token", TierDurable))
		require.NoError(t, f.vault.Put(ctx, "s1", TokenBackend, "ephemeral-token", TierEphemeral))

		got, err := f.vault.Lookup(ctx, "s1", TokenBackend)
		require.NoError(t, err)
		assert.Equal(t, "ephemeral-token", got)
	})

	t.Run("durable tier is sealed at rest", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.vault.Put(ctx, "s1", TokenBackend, "durable-token", TierDurable))

		raw, err := f.durable.Get(ctx, tokenKey("s1", TokenBackend))
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "durable-token")

		got, err := f.vault.Lookup(ctx, "s1", TokenBackend)
		require.NoError(t, err)
		assert.Equal(t, "durable-token", got)
	})

	t.Run("bearer token absent without a session or token", func(t *testing.T) {
		f := newFixture(t)
		_, ok := f.vault.BearerToken(ctx, "")
		assert.False(t, ok)
		_, ok = f.vault.BearerToken(ctx, "s1")
		assert.False(t, ok)

		require.NoError(t, f.vault.Put(ctx, "s1", TokenBackend, "t", TierDurable))
		token, ok := f.vault.BearerToken(ctx, "s1")
		assert.True(t, ok)
		assert.Equal(t, "t", token)
	})

	t.Run("purge removes both tiers and kinds", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.vault.Put(ctx, "s1", TokenBackend, "a", TierDurable))
		require.NoError(t, f.vault.Put(ctx, "s1", TokenBackend, "b", TierEphemeral))
		require.NoError(t, f.vault.Put(ctx, "s1", TokenProvider, "c", TierDurable))

		n, err := f.vault.Purge(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		_, err = f.vault.Lookup(ctx, "s1", TokenBackend)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, err = f.vault.Lookup(ctx, "s1", TokenProvider)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestCache(t *testing.T) {
	ctx := context.Background()

	t.Run("load before save is not found", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.cache.Load(ctx, "s1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("save then load round trips and broadcasts", func(t *testing.T) {
		f := newFixture(t)
		var kinds []events.Kind
		f.bus.Subscribe(func(_ context.Context, c events.Change) { kinds = append(kinds, c.Kind) })

		require.NoError(t, f.cache.Save(ctx, "s1", employee("a@x.com")))

		got, err := f.cache.Load(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, profile.RoleEmployee, got.Role())
		assert.Equal(t, "a@x.com", got.Details().Email)
		assert.Equal(t, []events.Kind{events.ProfileSaved}, kinds)
	})

	t.Run("save rejects a profile without email", func(t *testing.T) {
		f := newFixture(t)
		assert.Error(t, f.cache.Save(ctx, "s1", employee("")))
	})

	t.Run("unknown role is kept as a raw record", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.cache.SaveRecord(ctx, "s1", profile.Record{Email: "a@x.com", Role: "Auditor"}))

		rec, err := f.cache.LoadRecord(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "Auditor", rec.Role)

		_, err = f.cache.Load(ctx, "s1")
		assert.ErrorIs(t, err, profile.ErrUnknownRole)
	})

	t.Run("clear removes profile and tokens", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.cache.Save(ctx, "s1", employee("a@x.com")))
		require.NoError(t, f.vault.Put(ctx, "s1", TokenBackend, "t", TierDurable))
		require.NoError(t, f.vault.Put(ctx, "s1", TokenBackend, "t2", TierEphemeral))

		cleared, err := f.cache.Clear(ctx, "s1")
		require.NoError(t, err)
		assert.True(t, cleared)

		_, err = f.cache.Load(ctx, "s1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, ok := f.vault.BearerToken(ctx, "s1")
		assert.False(t, ok)
	})

	t.Run("clearing an empty session is silent", func(t *testing.T) {
		f := newFixture(t)
		var count int
		f.bus.Subscribe(func(context.Context, events.Change) { count++ })

		cleared, err := f.cache.Clear(ctx, "s1")
		require.NoError(t, err)
		assert.False(t, cleared)
		assert.Zero(t, count)
	})

	t.Run("memoized profile lapses with the stored copy", func(t *testing.T) {
		f := newFixture(t)
		start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
		clock := start
		f.durable.now = func() time.Time { return clock }

		require.NoError(t, f.cache.SaveRecord(requestcontext.WithTime(ctx, start), "s1", profile.Record{Email: "a@x.com", Role: "HR"}))
		_, err := f.cache.LoadRecord(requestcontext.WithTime(ctx, start.Add(59*time.Minute)), "s1")
		require.NoError(t, err)

		clock = start.Add(2 * time.Hour)
		_, err = f.cache.LoadRecord(requestcontext.WithTime(ctx, clock), "s1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		assert.Zero(t, f.cache.memoSize())
	})

	t.Run("a reader on another instance keeps the original expiry", func(t *testing.T) {
		f := newFixture(t)
		start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
		require.NoError(t, f.cache.SaveRecord(requestcontext.WithTime(ctx, start), "s1", profile.Record{Email: "a@x.com", Role: "HR"}))

		other := NewCache(f.durable, f.vault, events.NewBus(discardLogger()), time.Hour)
		_, err := other.LoadRecord(requestcontext.WithTime(ctx, start.Add(30*time.Minute)), "s1")
		require.NoError(t, err)

		assert.Equal(t, 1, other.prune(start.Add(61*time.Minute)))
		assert.Zero(t, other.memoSize())
	})

	t.Run("prune drops lapsed sessions only", func(t *testing.T) {
		f := newFixture(t)
		start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
		require.NoError(t, f.cache.SaveRecord(requestcontext.WithTime(ctx, start), "old", profile.Record{Email: "a@x.com"}))
		require.NoError(t, f.cache.SaveRecord(requestcontext.WithTime(ctx, start.Add(50*time.Minute)), "new", profile.Record{Email: "b@x.com"}))

		assert.Equal(t, 1, f.cache.prune(start.Add(70*time.Minute)))
		assert.Equal(t, 1, f.cache.memoSize())
	})

	t.Run("remote change invalidates the memo", func(t *testing.T) {
		f := newFixture(t)
		stop := f.cache.Watch()
		defer stop()

		require.NoError(t, f.cache.Save(ctx, "s1", employee("a@x.com")))
		// another instance overwrote the durable entry
		other := NewCache(f.durable, f.vault, events.NewBus(discardLogger()), time.Hour)
		require.NoError(t, other.Save(ctx, "s1", employee("b@x.com")))

		got, err := f.cache.Load(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", got.Details().Email, "memo still serves the local copy")

		f.bus.Deliver(ctx, events.Change{Kind: events.ProfileSaved, SessionID: "s1", Origin: "peer", Seq: 1})

		got, err = f.cache.Load(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "b@x.com", got.Details().Email)
	})
}
