package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel shared by all instances.
const DefaultChannel = "assetdesk:session-changes"

// RedisRelay mirrors local changes to Redis pub/sub and feeds remote ones
// back into the local bus. Delivery across instances is best effort.
type RedisRelay struct {
	client  *redis.Client
	bus     *Bus
	channel string
	logger  *slog.Logger
}

func NewRedisRelay(client *redis.Client, bus *Bus, channel string, logger *slog.Logger) *RedisRelay {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisRelay{client: client, bus: bus, channel: channel, logger: logger}
}

// Run relays until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	// wait for the subscription to be confirmed before forwarding local changes
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	unsubscribe := r.bus.Subscribe(r.forward)
	defer unsubscribe()

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			r.receive(ctx, msg.Payload)
		}
	}
}

func (r *RedisRelay) forward(ctx context.Context, change Change) {
	if change.Origin != r.bus.Origin() {
		return
	}
	payload, err := json.Marshal(change)
	if err != nil {
		r.logger.WarnContext(ctx, "encode session change", "error", err)
		return
	}
	if err := r.client.Publish(context.WithoutCancel(ctx), r.channel, payload).Err(); err != nil {
		r.logger.WarnContext(ctx, "relay session change", "error", err, "kind", change.Kind)
	}
}

func (r *RedisRelay) receive(ctx context.Context, payload string) {
	var change Change
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		r.logger.WarnContext(ctx, "decode relayed session change", "error", err)
		return
	}
	if change.Origin == r.bus.Origin() || change.Origin == "" {
		return
	}
	r.bus.Deliver(ctx, change)
}
