package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"bountyboard/internal/board/models"
	"bountyboard/pkg/domain"
	"bountyboard/pkg/platform/circuit"
)

const (
	boardKeyPrefix  = "bb:board:"
	bountyKeyPrefix = "bb:bounty:"

	// DefaultCacheTTL bounds how long a catalog revision can stay stale.
	DefaultCacheTTL = 30 * time.Second
)

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bountyboard_board_cache_lookups_total",
	Help: "Board snapshot cache lookups by kind and result",
}, []string{"kind", "result"})

// RedisCache fronts another Reader with Redis. Snapshots are stored as JSON
// with a TTL; concurrent misses for the same key share one backing read.
// Redis failures degrade to the backing reader; after repeated failures the
// breaker skips Redis entirely and tries it once per cooldown.
type RedisCache struct {
	client  *redis.Client
	next    Reader
	ttl     time.Duration
	logger  *slog.Logger
	breaker *circuit.Breaker
	group   singleflight.Group
}

// RedisCacheOption configures a RedisCache.
type RedisCacheOption func(*RedisCache)

func WithCacheTTL(ttl time.Duration) RedisCacheOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheLogger(logger *slog.Logger) RedisCacheOption {
	return func(c *RedisCache) {
		c.logger = logger
	}
}

// WithCacheBreaker replaces the default breaker guarding Redis calls.
func WithCacheBreaker(b *circuit.Breaker) RedisCacheOption {
	return func(c *RedisCache) {
		if b != nil {
			c.breaker = b
		}
	}
}

func NewRedisCache(client *redis.Client, next Reader, opts ...RedisCacheOption) *RedisCache {
	c := &RedisCache{
		client:  client,
		next:    next,
		ttl:     DefaultCacheTTL,
		logger:  slog.Default(),
		breaker: circuit.New("board-cache"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *RedisCache) FindBoard(ctx context.Context, address domain.Address) (*models.BountyBoard, error) {
	key := boardKeyPrefix + address.String()
	var board models.BountyBoard
	if c.get(ctx, "board", key, &board) {
		return &board, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		found, err := c.next.FindBoard(ctx, address)
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, found)
		return found, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.BountyBoard).Clone(), nil
}

func (c *RedisCache) FindBounty(ctx context.Context, address domain.Address) (*models.Bounty, error) {
	key := bountyKeyPrefix + address.String()
	var bounty models.Bounty
	if c.get(ctx, "bounty", key, &bounty) {
		return &bounty, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		found, err := c.next.FindBounty(ctx, address)
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, found)
		return found, nil
	})
	if err != nil {
		return nil, err
	}
	out := *v.(*models.Bounty)
	return &out, nil
}

// Invalidate drops a cached board snapshot, e.g. after governance publishes a
// new catalog revision.
func (c *RedisCache) Invalidate(ctx context.Context, address domain.Address) error {
	return c.client.Del(ctx, boardKeyPrefix+address.String()).Err()
}

func (c *RedisCache) get(ctx context.Context, kind, key string, dst any) bool {
	if !c.breaker.Allow() {
		cacheLookups.WithLabelValues(kind, "bypass").Inc()
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "board cache read failed", "key", key, "error", err)
			cacheLookups.WithLabelValues(kind, "error").Inc()
			c.failure(ctx)
			return false
		}
		c.success(ctx)
		cacheLookups.WithLabelValues(kind, "miss").Inc()
		return false
	}
	c.success(ctx)
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.WarnContext(ctx, "board cache entry undecodable", "key", key, "error", err)
		cacheLookups.WithLabelValues(kind, "error").Inc()
		return false
	}
	cacheLookups.WithLabelValues(kind, "hit").Inc()
	return true
}

func (c *RedisCache) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if c.breaker.IsOpen() {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "board cache write failed", "key", key, "error", err)
		c.failure(ctx)
	}
}

func (c *RedisCache) failure(ctx context.Context) {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "board cache disabled after repeated redis failures", "breaker", c.breaker.Name())
	}
}

func (c *RedisCache) success(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "board cache re-enabled", "breaker", c.breaker.Name())
	}
}
