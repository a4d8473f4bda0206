// Package session is the server-side home of everything the browser used to
// keep in local and session storage: the cached profile and the bearer
// tokens, keyed by session id.
package session

import (
	"context"
	"time"
)

// Store is a byte-oriented key/value store with per-key expiry. Get returns
// sentinel.ErrNotFound for absent or expired keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes keys and reports how many existed.
	Delete(ctx context.Context, keys ...string) (int, error)
}

func profileKey(sessionID string) string {
	return "profile:" + sessionID
}

func tokenKey(sessionID string, kind TokenKind) string {
	return "token:" + string(kind) + ":" + sessionID
}
