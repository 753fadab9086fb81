// Package compliance provides a fail-closed audit publisher for registry events.
//
// Emit writes synchronously to the store. When the store is the Postgres
// outbox the write joins the caller's transaction, and an error means the
// calling operation must fail.
package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	audit "bountyboard/pkg/platform/audit"
)

// Publisher emits compliance events with fail-closed semantics.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// New creates a compliance publisher.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit synchronously persists events as one unit: every event is validated
// before any is written. The caller MUST fail its operation when this returns
// an error.
func (p *Publisher) Emit(ctx context.Context, events ...audit.Event) error {
	start := p.now()

	batch := make([]audit.Event, 0, len(events))
	for _, event := range events {
		if event.Action == "" {
			return fmt.Errorf("compliance event requires Action")
		}
		if event.Subject == "" {
			return fmt.Errorf("compliance event %s requires Subject", event.Action)
		}
		if event.Timestamp.IsZero() {
			event.Timestamp = start
		}
		event.Category = audit.AuditEvent(event.Action).Category()
		batch = append(batch, event)
	}
	if len(batch) == 0 {
		return nil
	}

	if err := p.store.Append(ctx, batch...); err != nil {
		if p.metrics != nil {
			p.metrics.PersistFailures.Inc()
		}
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "CRITICAL: compliance audit failed",
				"action", batch[0].Action,
				"subject", batch[0].Subject,
				"events", len(batch),
				"error", err,
			)
		}
		return fmt.Errorf("compliance audit persistence failed: %w", err)
	}

	if p.metrics != nil {
		p.metrics.PersistDuration.Observe(time.Since(start).Seconds())
		for _, event := range batch {
			p.metrics.EventsEmitted.WithLabelValues(event.Action).Inc()
		}
	}
	return nil
}

// Close is a no-op for the synchronous publisher.
func (p *Publisher) Close() error {
	return nil
}
