package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"assetdesk/pkg/platform/sentinel"
)

// TokenKind names a bearer credential held for a session.
type TokenKind string

const (
	// TokenBackend authorizes calls to the REST backend.
	TokenBackend TokenKind = "backend"
	// TokenProvider is the identity provider's session token.
	TokenProvider TokenKind = "provider"
)

var tokenKinds = []TokenKind{TokenBackend, TokenProvider}

// Tier selects where a token is written.
type Tier int

const (
	// TierEphemeral lives in process memory with a short TTL.
	TierEphemeral Tier = iota
	// TierDurable survives restarts and is shared across instances.
	TierDurable
)

// Vault holds tokens in two tiers. Lookup always consults the ephemeral tier
// before the durable one.
type Vault struct {
	ephemeral    Store
	durable      Store
	sealer       *Sealer
	ephemeralTTL time.Duration
	durableTTL   time.Duration
	logger       *slog.Logger
}

// VaultOption configures a Vault.
type VaultOption func(*Vault)

// WithEphemeralTTL overrides how long ephemeral tokens live.
func WithEphemeralTTL(ttl time.Duration) VaultOption {
	return func(v *Vault) {
		if ttl > 0 {
			v.ephemeralTTL = ttl
		}
	}
}

// WithVaultLogger sets the logger used when a token read fails.
func WithVaultLogger(logger *slog.Logger) VaultOption {
	return func(v *Vault) {
		v.logger = logger
	}
}

// NewVault wires the two tiers. durableTTL bounds durable tokens, normally
// the session TTL.
func NewVault(ephemeral, durable Store, sealer *Sealer, durableTTL time.Duration, opts ...VaultOption) *Vault {
	v := &Vault{
		ephemeral:    ephemeral,
		durable:      durable,
		sealer:       sealer,
		ephemeralTTL: 30 * time.Minute,
		durableTTL:   durableTTL,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Put stores token for the session in the chosen tier.
func (v *Vault) Put(ctx context.Context, sessionID string, kind TokenKind, token string, tier Tier) error {
	key := tokenKey(sessionID, kind)
	if tier == TierEphemeral {
		return v.ephemeral.Set(ctx, key, []byte(token), v.ephemeralTTL)
	}

	sealed, err := v.sealer.Seal([]byte(token), key)
	if err != nil {
		return err
	}
	if err := v.durable.Set(ctx, key, sealed, v.durableTTL); err != nil {
		return fmt.Errorf("store %s token: %w", kind, err)
	}
	return nil
}

// Lookup returns the token for kind, ephemeral tier first.
func (v *Vault) Lookup(ctx context.Context, sessionID string, kind TokenKind) (string, error) {
	key := tokenKey(sessionID, kind)

	raw, err := v.ephemeral.Get(ctx, key)
	if err == nil {
		return string(raw), nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return "", err
	}

	sealed, err := v.durable.Get(ctx, key)
	if err != nil {
		return "", err
	}
	plain, err := v.sealer.Open(sealed, key)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// BearerToken returns the backend token for the session, if any. Read
// failures are logged and treated as "no token".
func (v *Vault) BearerToken(ctx context.Context, sessionID string) (string, bool) {
	if sessionID == "" {
		return "", false
	}
	token, err := v.Lookup(ctx, sessionID, TokenBackend)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			v.logger.WarnContext(ctx, "backend token lookup failed", "error", err)
		}
		return "", false
	}
	return token, token != ""
}

// Purge removes every token kind from both tiers and reports how many
// entries existed.
func (v *Vault) Purge(ctx context.Context, sessionID string) (int, error) {
	keys := make([]string, 0, len(tokenKinds))
	for _, kind := range tokenKinds {
		keys = append(keys, tokenKey(sessionID, kind))
	}

	n1, err1 := v.ephemeral.Delete(ctx, keys...)
	n2, err2 := v.durable.Delete(ctx, keys...)
	return n1 + n2, errors.Join(err1, err2)
}
