package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	audit "assetdesk/pkg/platform/audit"
)

// Store appends audit events to the audit_events table. It is the durable
// sink for deployments without Kafka.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `
	SELECT category, timestamp, action, subject, session_id, role,
	       reason, request_id, ip, device, amount
	FROM audit_events`

// Append inserts one event. The category is always derived from the action.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	category := audit.AuditEvent(event.Action).Category()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (
			id, category, timestamp, action, subject, session_id, role,
			reason, request_id, ip, device, amount
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		uuid.New(),
		string(category),
		event.Timestamp,
		event.Action,
		event.Subject,
		event.SessionID,
		event.Role,
		event.Reason,
		event.RequestID,
		event.IP,
		event.Device,
		event.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListBySubject returns up to limit of an account's events, newest first.
func (s *Store) ListBySubject(ctx context.Context, subject string, limit int) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+`
		WHERE subject = $1
		ORDER BY timestamp DESC
		LIMIT NULLIF($2, 0)
	`, subject, max(limit, 0))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	var events []audit.Event
	for rows.Next() {
		var (
			category string
			event    audit.Event
		)
		err := rows.Scan(
			&category,
			&event.Timestamp,
			&event.Action,
			&event.Subject,
			&event.SessionID,
			&event.Role,
			&event.Reason,
			&event.RequestID,
			&event.IP,
			&event.Device,
			&event.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
