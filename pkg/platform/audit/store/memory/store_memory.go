package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "bountyboard/pkg/platform/audit"
)

type outboxRow struct {
	entry       audit.OutboxEntry
	publishedAt time.Time
}

// InMemoryStore keeps events and their outbox rows for tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
	outbox []outboxRow
	now    func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{now: time.Now}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.outbox = nil
}

// Append records events as one unit. Entries are built before the lock is
// taken, so a bad event leaves the store untouched.
func (s *InMemoryStore) Append(_ context.Context, events ...audit.Event) error {
	staged := make([]audit.Event, 0, len(events))
	rows := make([]outboxRow, 0, len(events))
	now := s.now()
	for _, event := range events {
		entry, err := audit.NewOutboxEntry(event, now)
		if err != nil {
			return err
		}
		event.ID = entry.ID
		staged = append(staged, event)
		rows = append(rows, outboxRow{entry: entry})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, staged...)
	s.outbox = append(s.outbox, rows...)
	return nil
}

// ListBySubject returns events recorded against a subject address.
func (s *InMemoryStore) ListBySubject(_ context.Context, subject string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.Subject == subject {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListAll returns every recorded event in append order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...), nil
}

func (s *InMemoryStore) FetchUnpublished(_ context.Context, limit int) ([]audit.OutboxEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.OutboxEntry
	for _, row := range s.outbox {
		if limit > 0 && len(out) >= limit {
			break
		}
		if row.publishedAt.IsZero() {
			out = append(out, row.entry)
		}
	}
	return out, nil
}

func (s *InMemoryStore) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outbox {
		if want[s.outbox[i].entry.ID] && s.outbox[i].publishedAt.IsZero() {
			s.outbox[i].publishedAt = at
		}
	}
	return nil
}
