package auth

import (
	"context"

	"assetdesk/internal/gateway"
	"assetdesk/internal/profile"
	"assetdesk/internal/session"
	"assetdesk/pkg/platform/audit"
	"assetdesk/pkg/requestcontext"
)

// Register creates the provider account and the backend record, then signs
// the session in.
//
// The two accounts are not created atomically. An unreachable backend leaves
// the provider account in place and the session signed in with the locally
// built profile; an explicit backend rejection is surfaced and the session
// signed out. Both cases emit registration_incomplete for support follow-up.
func (b *Bridge) Register(ctx context.Context, sessionID string, role profile.Role, reg Registration) (Result, error) {
	reg.Normalize()
	if err := reg.Validate(role); err != nil {
		return Result{}, err
	}

	ctx = requestcontext.WithSessionID(ctx, sessionID)
	done := b.establish(sessionID)
	defer done()

	principal, err := b.provider.CreateAccount(ctx, reg.Email, reg.Password)
	if err != nil {
		b.metrics.IncrementRegistration(string(role), "rejected")
		return Result{}, providerError(err)
	}

	var degraded []string
	updated := Try(b.provider.UpdateProfile(ctx, principal.SessionToken, reg.Name, reg.PhotoURL))
	if p, ok := updated.Get(); ok {
		principal = p
	} else {
		b.bestEffortFailed(ctx, "provider_profile", updated.Err)
		degraded = append(degraded, "provider_profile")
	}

	rec := reg.record(role)
	created, err := b.backend.CreateUser(ctx, rec)
	switch {
	case err == nil:
		rec = profile.Merge(rec, created)
	case gateway.IsUnavailable(err):
		b.bestEffortFailed(ctx, "backend_record", err)
		b.emitAudit(ctx, audit.EventRegistrationIncomplete, reg.Email, sessionID, string(role), "backend_unreachable")
		degraded = append(degraded, "backend_record")
	default:
		b.emitAudit(ctx, audit.EventRegistrationIncomplete, reg.Email, sessionID, string(role), "backend_rejected")
		b.signOutQuietly(ctx, principal.SessionToken)
		b.metrics.IncrementRegistration(string(role), "backend_rejected")
		return Result{}, err
	}

	more, err := b.persist(ctx, sessionID, principal, rec, session.TierDurable)
	if err != nil {
		b.metrics.IncrementRegistration(string(role), "error")
		return Result{}, err
	}
	degraded = append(degraded, more...)

	b.metrics.IncrementRegistration(string(role), "success")
	b.emitAudit(ctx, audit.EventRegistrationCompleted, rec.Email, sessionID, string(role), "")
	return Result{
		Profile:       decoded(rec),
		Home:          profile.HomeFor(role),
		RedirectAfter: RegistrationRedirectDelay,
		Degraded:      degraded,
	}, nil
}
