package auth

import (
	"context"

	"assetdesk/internal/gateway"
	"assetdesk/internal/profile"
	"assetdesk/internal/session"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/requestcontext"
)

// RefreshProfile re-reads the backend record and saves it over the cache.
func (b *Bridge) RefreshProfile(ctx context.Context, sessionID string) (profile.Profile, error) {
	cached, err := b.cachedRecord(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ctx = requestcontext.WithSessionID(ctx, sessionID)

	fresh, err := b.lookupUser(ctx, cached.Email)
	if err != nil {
		return nil, err
	}
	p, err := profile.Decode(profile.Merge(cached, fresh))
	if err != nil {
		return nil, cacheError(err)
	}
	if err := b.cache.Save(ctx, sessionID, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store profile")
	}
	return p, nil
}

// UpdateProfile edits the backend record, mirrors name and photo to the
// provider, then returns the re-fetched profile.
func (b *Bridge) UpdateProfile(ctx context.Context, sessionID string, changes ProfileChanges) (profile.Profile, error) {
	current, err := b.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	changes.Normalize()
	if err := changes.Validate(current.Role()); err != nil {
		return nil, err
	}
	ctx = requestcontext.WithSessionID(ctx, sessionID)
	acct := current.Details()

	_, err = b.backend.UpdateUser(ctx, acct.Email, gateway.UserUpdate{
		Name:        changes.Name,
		Photo:       changes.PhotoURL,
		DateOfBirth: changes.DateOfBirth,
		CompanyName: changes.CompanyName,
		CompanyLogo: changes.CompanyLogo,
	})
	if err != nil {
		return nil, err
	}

	if changes.Name != "" || changes.PhotoURL != "" {
		b.mirrorToProvider(ctx, sessionID, acct, changes)
	}
	return b.RefreshProfile(ctx, sessionID)
}

func (b *Bridge) mirrorToProvider(ctx context.Context, sessionID string, cached profile.Account, changes ProfileChanges) {
	token, err := b.vault.Lookup(ctx, sessionID, session.TokenProvider)
	if err != nil {
		b.bestEffortFailed(ctx, "provider_profile", err)
		return
	}
	name, photo := cached.Name, cached.PhotoURL
	if changes.Name != "" {
		name = changes.Name
	}
	if changes.PhotoURL != "" {
		photo = changes.PhotoURL
	}
	if _, err := b.provider.UpdateProfile(ctx, token, name, photo); err != nil {
		b.bestEffortFailed(ctx, "provider_profile", err)
	}
}
