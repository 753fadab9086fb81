package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// apply different retention and routing.
type EventCategory string

const (
	// CategoryCompliance covers changes to registry state. Persisted fail-closed.
	CategoryCompliance EventCategory = "compliance"
	// CategoryOperations covers routine activity such as balance top-ups.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. It stays
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID
	Category  EventCategory
	Timestamp time.Time
	Action    string
	// Board is the bounty board the action happened on, base58.
	Board string
	// Subject is the record the action created or touched, base58.
	Subject string
	// Actor is the signer who authorized the action; Payer funded it.
	Actor      string
	Payer      string
	RequestID  string
	Attributes map[string]string
}

type AuditEvent string

const (
	EventContributorAdded      AuditEvent = "contributor_added"
	EventContributorRegistered AuditEvent = "contributor_registered"
	EventBountyApplied         AuditEvent = "bounty_applied"
	EventPayerCredited         AuditEvent = "payer_credited"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventContributorAdded:      CategoryCompliance,
	EventContributorRegistered: CategoryCompliance,
	EventBountyApplied:         CategoryCompliance,
	EventPayerCredited:         CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	// Append persists every event or none of them.
	Append(ctx context.Context, events ...Event) error
}

// OutboxEntry is an appended event awaiting delivery to the event stream.
type OutboxEntry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// Outbox is the relay's view of a store: pending entries in append order.
type Outbox interface {
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}
