package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "assetdesk/pkg/platform/audit"
)

func TestInMemoryStore_ListBySubject(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	for _, action := range []audit.AuditEvent{audit.EventLoginSucceeded, audit.EventPaymentConfirmed, audit.EventLogout} {
		require.NoError(t, store.Append(ctx, audit.Event{Subject: "boss@acme.io", Action: string(action)}))
	}
	require.NoError(t, store.Append(ctx, audit.Event{Subject: "other@acme.io", Action: string(audit.EventLogout)}))

	all, err := store.ListBySubject(ctx, "boss@acme.io", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, string(audit.EventLogout), all[0].Action, "newest first")
	assert.Equal(t, string(audit.EventLoginSucceeded), all[2].Action)

	latest, err := store.ListBySubject(ctx, "boss@acme.io", 2)
	require.NoError(t, err)
	assert.Len(t, latest, 2)

	none, err := store.ListBySubject(ctx, "nobody@acme.io", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}
