// Package log writes audit events to the structured logger. It is the sink
// used when no Kafka brokers are configured.
package log

import (
	"context"
	"log/slog"

	audit "assetdesk/pkg/platform/audit"
)

type Store struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Store {
	return &Store{logger: logger.With("component", "audit")}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	s.logger.InfoContext(ctx, "audit",
		"action", event.Action,
		"category", event.Category,
		"subject", event.Subject,
		"session_id", event.SessionID,
		"role", event.Role,
		"reason", event.Reason,
		"request_id", event.RequestID,
		"ip", event.IP,
		"device", event.Device,
		"amount", event.Amount,
		"timestamp", event.Timestamp,
	)
	return nil
}
