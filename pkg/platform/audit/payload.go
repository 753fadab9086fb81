package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// payload is the JSON published to the event stream.
type payload struct {
	ID         string            `json:"id"`
	Category   string            `json:"category"`
	Timestamp  string            `json:"timestamp"`
	Action     string            `json:"action"`
	Board      string            `json:"board,omitempty"`
	Subject    string            `json:"subject"`
	Actor      string            `json:"actor,omitempty"`
	Payer      string            `json:"payer,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// NewOutboxEntry assigns the event an ID if needed and encodes it for the
// outbox. Entries are keyed by board so one board's events stay ordered on a
// single partition.
func NewOutboxEntry(event Event, now time.Time) (OutboxEntry, error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Category == "" {
		event.Category = AuditEvent(event.Action).Category()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = now
	}
	raw, err := json.Marshal(payload{
		ID:         event.ID.String(),
		Category:   string(event.Category),
		Timestamp:  event.Timestamp.UTC().Format(time.RFC3339Nano),
		Action:     event.Action,
		Board:      event.Board,
		Subject:    event.Subject,
		Actor:      event.Actor,
		Payer:      event.Payer,
		RequestID:  event.RequestID,
		Attributes: event.Attributes,
	})
	if err != nil {
		return OutboxEntry{}, fmt.Errorf("marshal audit payload: %w", err)
	}
	aggregateType, aggregateID := "board", event.Board
	if aggregateID == "" {
		aggregateType, aggregateID = "audit", event.ID.String()
	}
	return OutboxEntry{
		ID:            event.ID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     event.Action,
		Payload:       raw,
		CreatedAt:     now,
	}, nil
}
