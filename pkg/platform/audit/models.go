package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// route and retain them differently.
type EventCategory string

const (
	// CategorySecurity covers credential and session events: logins, rejected
	// logins, forced logouts.
	CategorySecurity EventCategory = "security"

	// CategoryCompliance covers account lifecycle and money movement.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine activity and support follow-ups.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	Action    string        `json:"action"`
	// Subject is the normalized email of the account involved.
	Subject   string `json:"subject"`
	SessionID string `json:"session_id,omitempty"`
	Role      string `json:"role,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	IP        string `json:"ip,omitempty"`
	// Device is a coarse browser/OS label derived from the User-Agent.
	Device string `json:"device,omitempty"`
	// Amount is set on payment events, in minor currency units.
	Amount int64 `json:"amount,omitempty"`
}

type AuditEvent string

const (
	EventLoginSucceeded         AuditEvent = "login_succeeded"
	EventLoginRejected          AuditEvent = "login_rejected"
	EventRegistrationCompleted  AuditEvent = "registration_completed"
	EventRegistrationIncomplete AuditEvent = "registration_incomplete"
	EventLogout                 AuditEvent = "logout"
	EventForcedLogout           AuditEvent = "forced_logout"
	EventPaymentConfirmed       AuditEvent = "payment_confirmed"
	EventPaymentFailed          AuditEvent = "payment_failed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventLoginSucceeded: CategorySecurity,
	EventLoginRejected:  CategorySecurity,
	EventForcedLogout:   CategorySecurity,

	EventRegistrationCompleted: CategoryCompliance,
	EventPaymentConfirmed:      CategoryCompliance,
	EventPaymentFailed:         CategoryCompliance,

	// needs a human to reconcile provider and backend records
	EventRegistrationIncomplete: CategoryOperations,
	EventLogout:                 CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists or forwards audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Reader lists an account's stored events, newest first. A limit of zero or
// less returns them all.
type Reader interface {
	ListBySubject(ctx context.Context, subject string, limit int) ([]Event, error)
}

// Emitter is what domain services depend on.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}
