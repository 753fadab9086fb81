package compliance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "bountyboard/pkg/platform/audit"
	"bountyboard/pkg/platform/audit/store/memory"
)

type failingStore struct{}

func (failingStore) Append(context.Context, ...audit.Event) error {
	return errors.New("outbox unavailable")
}

func TestEmitPersistsWithCategory(t *testing.T) {
	store := memory.NewInMemoryStore()
	m := NewMetrics(prometheus.NewRegistry())
	pub := New(store, WithMetrics(m))

	err := pub.Emit(context.Background(), audit.Event{
		Action:  string(audit.EventBountyApplied),
		Subject: "9iLU29axNqACcMzXgMYQCKuWVRikUzAEmi2VvPW1PjFc",
	})
	require.NoError(t, err)

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.CategoryCompliance, events[0].Category)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsEmitted.WithLabelValues(string(audit.EventBountyApplied))))
}

func TestEmitRejectsIncompleteEvents(t *testing.T) {
	pub := New(memory.NewInMemoryStore())
	assert.Error(t, pub.Emit(context.Background(), audit.Event{Subject: "x"}))
	assert.Error(t, pub.Emit(context.Background(), audit.Event{Action: string(audit.EventContributorAdded)}))
}

func TestEmitFailsClosed(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	pub := New(failingStore{}, WithMetrics(m), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	err := pub.Emit(context.Background(), audit.Event{
		Action:  string(audit.EventContributorAdded),
		Subject: "9isMbMbReCVikU2h77ne6KZhLP4EcxWrsGt7M7U9rcm5",
	})
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistFailures))
}

func TestEmitBatchIsAllOrNothing(t *testing.T) {
	store := memory.NewInMemoryStore()
	m := NewMetrics(prometheus.NewRegistry())
	pub := New(store, WithMetrics(m))
	registered := audit.Event{
		Action:  string(audit.EventContributorRegistered),
		Subject: "9isMbMbReCVikU2h77ne6KZhLP4EcxWrsGt7M7U9rcm5",
	}

	err := pub.Emit(context.Background(), registered, audit.Event{Action: string(audit.EventBountyApplied)})
	require.Error(t, err)
	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events, "a rejected batch records nothing")

	require.NoError(t, pub.Emit(context.Background(), registered, audit.Event{
		Action:  string(audit.EventBountyApplied),
		Subject: "9iLU29axNqACcMzXgMYQCKuWVRikUzAEmi2VvPW1PjFc",
	}))
	events, err = store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, string(audit.EventContributorRegistered), events[0].Action)
	assert.Equal(t, string(audit.EventBountyApplied), events[1].Action)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsEmitted.WithLabelValues(string(audit.EventBountyApplied))))
}

func TestEmitWithoutEvents(t *testing.T) {
	pub := New(failingStore{})
	assert.NoError(t, pub.Emit(context.Background()))
}
