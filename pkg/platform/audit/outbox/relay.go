// Package outbox relays persisted audit events from the outbox to Kafka.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "bountyboard/pkg/platform/audit"
)

const (
	DefaultTopic     = "bountyboard.audit"
	DefaultInterval  = time.Second
	DefaultBatchSize = 100
)

// Producer is the subset of *kgo.Client the relay needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Relay polls the outbox and publishes pending entries. Delivery is
// at-least-once: entries are marked only after the broker acknowledges them,
// so a crash in between republishes. Consumers dedupe on the event id header.
type Relay struct {
	outbox   audit.Outbox
	producer Producer
	topic    string
	interval time.Duration
	batch    int
	logger   *slog.Logger
	metrics  *Metrics
	now      func() time.Time
}

type Option func(*Relay)

func WithTopic(topic string) Option {
	return func(r *Relay) {
		if topic != "" {
			r.topic = topic
		}
	}
}

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batch = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Relay) {
		r.metrics = m
	}
}

func New(outbox audit.Outbox, producer Producer, opts ...Option) *Relay {
	r := &Relay{
		outbox:   outbox,
		producer: producer,
		topic:    DefaultTopic,
		interval: DefaultInterval,
		batch:    DefaultBatchSize,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run flushes on every tick until ctx is cancelled. Flush errors are logged
// and retried on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
				r.logger.WarnContext(ctx, "outbox relay flush failed", "error", err)
			}
		}
	}
}

// Flush publishes one batch and returns how many entries were delivered.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	entries, err := r.outbox.FetchUnpublished(ctx, r.batch)
	if err != nil {
		return 0, fmt.Errorf("fetch outbox: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	records := make([]*kgo.Record, len(entries))
	for i, e := range entries {
		records[i] = &kgo.Record{
			Topic: r.topic,
			Key:   []byte(e.AggregateID),
			Value: e.Payload,
			Headers: []kgo.RecordHeader{
				{Key: "event_id", Value: []byte(e.ID.String())},
				{Key: "event_type", Value: []byte(e.EventType)},
				{Key: "aggregate_type", Value: []byte(e.AggregateType)},
			},
			Timestamp: e.CreatedAt,
		}
	}

	results := r.producer.ProduceSync(ctx, records...)
	delivered := make([]uuid.UUID, 0, len(entries))
	var firstErr error
	for i, res := range results {
		if res.Err != nil {
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}
		delivered = append(delivered, entries[i].ID)
	}

	if len(delivered) > 0 {
		if err := r.outbox.MarkPublished(ctx, delivered, r.now()); err != nil {
			return 0, fmt.Errorf("mark outbox published: %w", err)
		}
	}
	if r.metrics != nil {
		r.metrics.Published.Add(float64(len(delivered)))
		r.metrics.Failed.Add(float64(len(entries) - len(delivered)))
	}
	if firstErr != nil {
		return len(delivered), fmt.Errorf("produce audit events: %w", firstErr)
	}
	return len(delivered), nil
}

// EnsureTopic creates the audit topic if it does not exist yet.
func EnsureTopic(ctx context.Context, admin *kadm.Client, topic string, partitions int32, replicationFactor int16) error {
	resp, err := admin.CreateTopics(ctx, partitions, replicationFactor, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Metrics counts relay deliveries.
type Metrics struct {
	Published prometheus.Counter
	Failed    prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Published: f.NewCounter(prometheus.CounterOpts{
			Name: "bountyboard_audit_outbox_published_total",
			Help: "Outbox entries delivered to Kafka",
		}),
		Failed: f.NewCounter(prometheus.CounterOpts{
			Name: "bountyboard_audit_outbox_failed_total",
			Help: "Outbox entries the broker rejected",
		}),
	}
}
