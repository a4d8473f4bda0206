package auth

import (
	"context"

	"assetdesk/internal/session"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/audit"
	"assetdesk/pkg/requestcontext"
)

const (
	logoutUser   = "user"
	logoutForced = "forced"
)

// Logout ends the session: profile and both tokens are removed and the
// provider session is signed out. Signing out an unknown session is a no-op.
func (b *Bridge) Logout(ctx context.Context, sessionID string) error {
	return b.endSession(ctx, sessionID, logoutUser)
}

// ForceLogout is called when the backend rejects the session's credential.
// Sessions still being established handle their own failures.
func (b *Bridge) ForceLogout(ctx context.Context, sessionID string) {
	if b.isEstablishing(sessionID) {
		return
	}
	if err := b.endSession(ctx, sessionID, logoutForced); err != nil {
		b.logger.ErrorContext(ctx, "forced logout failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

func (b *Bridge) endSession(ctx context.Context, sessionID, kind string) error {
	if sessionID == "" {
		return nil
	}
	ctx = requestcontext.WithSessionID(ctx, sessionID)
	b.forgetLive(sessionID)

	var subject, role string
	if rec, err := b.cache.LoadRecord(ctx, sessionID); err == nil {
		subject, role = rec.Email, rec.Role
	}
	token, tokenErr := b.vault.Lookup(ctx, sessionID, session.TokenProvider)

	existed, err := b.cache.Clear(ctx, sessionID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear session")
	}
	if tokenErr == nil {
		b.signOutQuietly(ctx, token)
	}
	if !existed {
		return nil
	}

	b.metrics.IncrementLogout(kind)
	event, reason := audit.EventLogout, ""
	if kind == logoutForced {
		event, reason = audit.EventForcedLogout, "backend_unauthorized"
	}
	b.emitAudit(ctx, event, subject, sessionID, role, reason)
	return nil
}
