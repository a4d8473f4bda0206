package auth

import (
	"context"

	"assetdesk/internal/gateway"
	"assetdesk/internal/identity"
	"assetdesk/internal/profile"
	"assetdesk/internal/session"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/audit"
	"assetdesk/pkg/requestcontext"
)

// Login signs the session in with the provider and attaches the backend
// profile. A provider account without a backend record is signed out again
// and rejected with ErrRegisterFirst.
func (b *Bridge) Login(ctx context.Context, sessionID string, creds Credentials) (Result, error) {
	creds.Normalize()
	if err := creds.Validate(); err != nil {
		return Result{}, err
	}

	ctx = requestcontext.WithSessionID(ctx, sessionID)
	done := b.establish(sessionID)
	defer done()

	principal, err := b.provider.SignIn(ctx, creds.Email, creds.Password)
	if err != nil {
		b.metrics.IncrementLogin("rejected")
		b.emitAudit(ctx, audit.EventLoginRejected, creds.Email, sessionID, "", string(identity.CodeOf(err)))
		return Result{}, providerError(err)
	}

	rec, err := b.lookupUser(ctx, principal.Email)
	if err != nil {
		b.signOutQuietly(ctx, principal.SessionToken)
		if gateway.IsNotFound(err) {
			b.metrics.IncrementLogin("unregistered")
			b.emitAudit(ctx, audit.EventLoginRejected, principal.Email, sessionID, "", "no_backend_record")
			return Result{}, ErrRegisterFirst
		}
		b.metrics.IncrementLogin("error")
		return Result{}, err
	}
	rec = profile.Merge(fromPrincipal(principal), rec)

	tier := session.TierEphemeral
	if creds.Remember {
		tier = session.TierDurable
	}
	degraded, err := b.persist(ctx, sessionID, principal, rec, tier)
	if err != nil {
		b.metrics.IncrementLogin("error")
		return Result{}, err
	}

	b.metrics.IncrementLogin("success")
	b.emitAudit(ctx, audit.EventLoginSucceeded, rec.Email, sessionID, rec.Role, "")
	b.logger.InfoContext(ctx, "session established",
		"role", rec.Role,
		"request_id", requestcontext.RequestID(ctx),
	)
	return Result{
		Profile:  decoded(rec),
		Home:     homeFor(rec.Role),
		Degraded: degraded,
	}, nil
}

// persist stores the provider token, fetches and stores the backend token and
// saves the profile. Only the backend token is best-effort.
func (b *Bridge) persist(ctx context.Context, sessionID string, principal identity.Principal, rec profile.Record, tier session.Tier) ([]string, error) {
	var degraded []string

	if err := b.vault.Put(ctx, sessionID, session.TokenProvider, principal.SessionToken, session.TierDurable); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store session")
	}

	token := Try(b.backend.Login(ctx, gateway.LoginRequest{UID: principal.UserID, Email: principal.Email}))
	if tok, ok := token.Get(); ok {
		if err := b.vault.Put(ctx, sessionID, session.TokenBackend, tok, tier); err != nil {
			b.bestEffortFailed(ctx, "backend_token_store", err)
			degraded = append(degraded, "backend_token")
		}
	} else {
		b.bestEffortFailed(ctx, "backend_token", token.Err)
		degraded = append(degraded, "backend_token")
	}

	if err := b.cache.SaveRecord(ctx, sessionID, rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store profile")
	}
	b.markLive(sessionID, requestcontext.Now(ctx))
	return degraded, nil
}

// lookupUser fetches the backend record for email. A record without an email
// is no record at all.
func (b *Bridge) lookupUser(ctx context.Context, email string) (profile.Record, error) {
	rec, err := b.backend.UserByEmail(ctx, email)
	if err != nil {
		return profile.Record{}, err
	}
	if rec.Email == "" {
		return profile.Record{}, errNoBackendRecord
	}
	return rec, nil
}

func (b *Bridge) signOutQuietly(ctx context.Context, sessionToken string) {
	if err := b.provider.SignOut(ctx, sessionToken); err != nil {
		b.bestEffortFailed(ctx, "provider_sign_out", err)
	}
}
