package auth

import (
	"context"

	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/audit"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// ErrActivityUnavailable is returned when audit events go to a sink that
// cannot be read back.
var ErrActivityUnavailable = dErrors.New(dErrors.CodeUnavailable, "Account activity is not available.")

// WithActivityReader lets the signed-in user list their own audit trail.
func WithActivityReader(reader audit.Reader) Option {
	return func(b *Bridge) {
		b.activity = reader
	}
}

// Activity lists the signed-in account's recent security and payment events,
// newest first. limit is clamped to 1..100; zero means the default page.
func (b *Bridge) Activity(ctx context.Context, sessionID string, limit int) ([]audit.Event, error) {
	rec, err := b.cachedRecord(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if b.activity == nil {
		return nil, ErrActivityUnavailable
	}
	switch {
	case limit <= 0:
		limit = defaultActivityLimit
	case limit > maxActivityLimit:
		limit = maxActivityLimit
	}
	events, err := b.activity.ListBySubject(ctx, rec.Email, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read account activity")
	}
	return events, nil
}
