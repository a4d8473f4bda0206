//go:build integration

package events

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/pkg/testutil/containers"
)

func TestRedisRelay_CrossInstance(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	busA, busB := NewBus(logger), NewBus(logger)
	relayA := NewRedisRelay(rc.Client, busA, "", logger)
	relayB := NewRedisRelay(rc.Connect(t), busB, "", logger)

	recA, recB := &recorder{}, &recorder{}
	busA.Subscribe(recA.handle)
	busB.Subscribe(recB.handle)

	go func() { _ = relayA.Run(ctx) }()
	go func() { _ = relayB.Run(ctx) }()

	// both relays must be subscribed before the publish is observable
	require.Eventually(t, func() bool {
		n, err := rc.Client.PubSubNumSub(ctx, DefaultChannel).Result()
		return err == nil && n[DefaultChannel] == 2
	}, 5*time.Second, 50*time.Millisecond)

	busA.Publish(ctx, ProfileCleared, "s1")

	require.Eventually(t, func() bool { return len(recB.all()) == 1 }, 5*time.Second, 50*time.Millisecond)
	got := recB.all()[0]
	assert.Equal(t, busA.Origin(), got.Origin)
	assert.Equal(t, "s1", got.SessionID)

	time.Sleep(200 * time.Millisecond)
	assert.Len(t, recA.all(), 1, "own change is not echoed back")
}
