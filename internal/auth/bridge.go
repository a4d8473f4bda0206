// Package auth turns "the identity provider says a principal is signed in"
// into "this session has a usable profile and backend token". It is the only
// writer of the session cache.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"assetdesk/internal/auth/metrics"
	"assetdesk/internal/gateway"
	"assetdesk/internal/identity"
	"assetdesk/internal/profile"
	"assetdesk/internal/roles"
	"assetdesk/internal/session"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/email"
	"assetdesk/pkg/platform/audit"
	"assetdesk/pkg/platform/sentinel"
	"assetdesk/pkg/requestcontext"
)

// RegistrationRedirectDelay is how long the browser shows the registration
// confirmation before navigating to the role home.
const RegistrationRedirectDelay = 1500 * time.Millisecond

// SessionCache is the persisted profile per session.
type SessionCache interface {
	Load(ctx context.Context, sessionID string) (profile.Profile, error)
	Save(ctx context.Context, sessionID string, p profile.Profile) error
	LoadRecord(ctx context.Context, sessionID string) (profile.Record, error)
	SaveRecord(ctx context.Context, sessionID string, rec profile.Record) error
	Clear(ctx context.Context, sessionID string) (bool, error)
}

// TokenVault holds the provider and backend tokens per session.
type TokenVault interface {
	Put(ctx context.Context, sessionID string, kind session.TokenKind, token string, tier session.Tier) error
	Lookup(ctx context.Context, sessionID string, kind session.TokenKind) (string, error)
}

// Backend is the subset of the REST backend the bridge needs.
type Backend interface {
	UserByEmail(ctx context.Context, email string) (profile.Record, error)
	CreateUser(ctx context.Context, rec profile.Record) (profile.Record, error)
	UpdateUser(ctx context.Context, email string, update gateway.UserUpdate) (profile.Record, error)
	Login(ctx context.Context, req gateway.LoginRequest) (string, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Result is what a successful login or registration hands to the transport.
type Result struct {
	// Profile is nil when the backend role is outside the known set; Home then
	// points at the generic home.
	Profile profile.Profile
	// Home is where the browser navigates next.
	Home string
	// RedirectAfter delays that navigation.
	RedirectAfter time.Duration
	// Degraded lists best-effort steps that failed.
	Degraded []string
}

// Bridge coordinates the identity provider, the backend and the session
// cache.
type Bridge struct {
	provider identity.Provider
	backend  Backend
	cache    SessionCache
	vault    TokenVault

	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	activity       audit.Reader
	revalidate     time.Duration

	mu           sync.Mutex
	establishing map[string]int
	live         map[string]time.Time
}

type Option func(*Bridge)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Bridge) {
		b.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(b *Bridge) {
		b.auditPublisher = publisher
	}
}

// WithRevalidateInterval sets how long a provider liveness check is trusted.
func WithRevalidateInterval(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.revalidate = d
		}
	}
}

// New constructs a Bridge.
func New(provider identity.Provider, backend Backend, cache SessionCache, vault TokenVault, opts ...Option) (*Bridge, error) {
	if provider == nil {
		return nil, errors.New("identity provider is required")
	}
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	if cache == nil {
		return nil, errors.New("session cache is required")
	}
	if vault == nil {
		return nil, errors.New("token vault is required")
	}

	b := &Bridge{
		provider:     provider,
		backend:      backend,
		cache:        cache,
		vault:        vault,
		logger:       slog.Default(),
		revalidate:   5 * time.Minute,
		establishing: make(map[string]int),
		live:         make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Initialize subscribes to provider session changes. The returned function
// unsubscribes.
func (b *Bridge) Initialize(_ context.Context) func() {
	return b.provider.OnSessionChange(b.onSessionChange)
}

func (b *Bridge) onSessionChange(ctx context.Context, change identity.SessionChange) {
	if change.SessionID == "" || b.isEstablishing(change.SessionID) {
		return
	}

	if change.Principal == nil {
		b.forgetLive(change.SessionID)
		if _, err := b.cache.Clear(ctx, change.SessionID); err != nil {
			b.logger.WarnContext(ctx, "clear after provider sign-out failed",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return
	}
	b.reconcile(ctx, change.SessionID, *change.Principal)
}

// reconcile reads the cached profile and the backend profile concurrently and
// saves the backend fields over the cached ones. A backend failure keeps the
// cached profile as is.
func (b *Bridge) reconcile(ctx context.Context, sessionID string, principal identity.Principal) {
	start := time.Now()
	defer b.metrics.ObserveReconcile(start)

	var (
		cached     profile.Record
		haveCached bool
		fresh      BestEffort[profile.Record]
		g          errgroup.Group
	)
	g.Go(func() error {
		rec, err := b.cache.LoadRecord(ctx, sessionID)
		if err != nil {
			if !errors.Is(err, sentinel.ErrNotFound) {
				b.logger.WarnContext(ctx, "cached profile unreadable", "error", err)
			}
			return nil
		}
		cached, haveCached = rec, true
		return nil
	})
	g.Go(func() error {
		fresh = Try(b.lookupUser(ctx, principal.Email))
		return nil
	})
	_ = g.Wait()

	rec, ok := fresh.Get()
	if !ok {
		b.bestEffortFailed(ctx, "profile_fetch", fresh.Err)
		return
	}

	base := fromPrincipal(principal)
	if haveCached {
		base = cached
	}
	if err := b.cache.SaveRecord(ctx, sessionID, profile.Merge(base, rec)); err != nil {
		b.logger.ErrorContext(ctx, "save reconciled profile failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return
	}
	b.markLive(sessionID, requestcontext.Now(ctx))
}

// Resolve reports who the session belongs to for the role router. Until the
// provider has confirmed the session within the revalidation interval the
// session counts as unauthenticated.
func (b *Bridge) Resolve(ctx context.Context, sessionID string) roles.Subject {
	if sessionID == "" {
		return roles.Subject{}
	}
	ctx = requestcontext.WithSessionID(ctx, sessionID)
	now := requestcontext.Now(ctx)

	if !b.isLive(sessionID, now) {
		token, err := b.vault.Lookup(ctx, sessionID, session.TokenProvider)
		if err != nil {
			return roles.Subject{}
		}
		if _, err := b.provider.Refresh(ctx, token); err != nil {
			if !errors.Is(err, identity.ErrNoSession) {
				b.logger.WarnContext(ctx, "provider liveness check failed",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
			}
			return roles.Subject{}
		}
		b.markLive(sessionID, now)
	}

	rec, err := b.cache.LoadRecord(ctx, sessionID)
	if err != nil {
		return roles.Subject{}
	}
	return roles.Subject{Authenticated: true, Role: rec.Role}
}

// Current returns the cached profile without touching the network. A session
// whose role is outside the known set yields ErrUnsupportedRole.
func (b *Bridge) Current(ctx context.Context, sessionID string) (profile.Profile, error) {
	p, err := b.cache.Load(ctx, sessionID)
	if err != nil {
		return nil, cacheError(err)
	}
	return p, nil
}

// cachedRecord is Current before decoding. Refresh merges on the wire shape.
func (b *Bridge) cachedRecord(ctx context.Context, sessionID string) (profile.Record, error) {
	rec, err := b.cache.LoadRecord(ctx, sessionID)
	if err != nil {
		return profile.Record{}, cacheError(err)
	}
	return rec, nil
}

func cacheError(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeUnauthorized, "not signed in")
	case errors.Is(err, profile.ErrUnknownRole):
		return ErrUnsupportedRole
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
}

func (b *Bridge) establish(sessionID string) func() {
	b.mu.Lock()
	b.establishing[sessionID]++
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.establishing[sessionID] <= 1 {
			delete(b.establishing, sessionID)
			return
		}
		b.establishing[sessionID]--
	}
}

func (b *Bridge) isEstablishing(sessionID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.establishing[sessionID] > 0
}

func (b *Bridge) markLive(sessionID string, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.live[sessionID] = now
	if len(b.live) > 4096 {
		for id, at := range b.live {
			if now.Sub(at) > b.revalidate {
				delete(b.live, id)
			}
		}
	}
}

func (b *Bridge) isLive(sessionID string, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	at, ok := b.live[sessionID]
	return ok && now.Sub(at) < b.revalidate
}

func (b *Bridge) forgetLive(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.live, sessionID)
}

func (b *Bridge) bestEffortFailed(ctx context.Context, step string, err error) {
	b.metrics.IncrementBestEffortFailure(step)
	b.logger.WarnContext(ctx, "best-effort step failed",
		"step", step,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
}

func (b *Bridge) emitAudit(ctx context.Context, event audit.AuditEvent, subject, sessionID, role, reason string) {
	if b.auditPublisher == nil {
		return
	}
	err := b.auditPublisher.Emit(ctx, audit.Event{
		Action:    string(event),
		Subject:   subject,
		SessionID: sessionID,
		Role:      role,
		Reason:    reason,
	})
	if err != nil {
		b.logger.WarnContext(ctx, "audit emit failed", "action", event, "error", err)
	}
}

// fromPrincipal is the provider's view of the user. A missing name is derived
// from the address so the profile never renders blank.
func fromPrincipal(p identity.Principal) profile.Record {
	name := p.Name
	if name == "" {
		name = email.DeriveDisplayName(p.Email)
	}
	return profile.Record{
		Email:    p.Email,
		Name:     name,
		PhotoURL: p.PhotoURL,
	}
}

// decoded returns the role variant of rec, or nil for a role outside the
// known set.
func decoded(rec profile.Record) profile.Profile {
	p, err := profile.Decode(rec)
	if err != nil {
		return nil
	}
	return p
}

func homeFor(rawRole string) string {
	role, ok := profile.ParseRole(rawRole)
	if !ok {
		return profile.GenericHomePath
	}
	return profile.HomeFor(role)
}
