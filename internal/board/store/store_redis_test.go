package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bountyboard/pkg/domain"
	"bountyboard/pkg/platform/circuit"
)

// An unreachable Redis must never fail a board read; once the breaker opens
// the cache stops dialing.
func TestRedisCacheDegradesToBackingReader(t *testing.T) {
	ctx := context.Background()
	backing := NewInMemory()
	require.NoError(t, backing.LoadYAML(ctx, strings.NewReader(seedYAML)))

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	breaker := circuit.New("test-cache", circuit.WithFailureThreshold(1), circuit.WithCooldown(time.Hour))
	cache := NewRedisCache(client, backing, WithCacheBreaker(breaker))

	board := domain.MustParseAddress("4vJ9JU1bJJE96FWSJKvHsmmFADCg4gpZQff4P3bkLKi")
	found, err := cache.FindBoard(ctx, board)
	require.NoError(t, err)
	assert.Equal(t, board, found.Address)
	assert.True(t, breaker.IsOpen())

	found, err = cache.FindBoard(ctx, board)
	require.NoError(t, err)
	assert.Equal(t, board, found.Address)

	bounty, err := cache.FindBounty(ctx, domain.MustParseAddress("CktRuQ2mttgRGkXJtyksdKHjUdc2C4TgDzyB98oEzy8"))
	require.NoError(t, err)
	assert.Equal(t, board, bounty.BountyBoard)
}
