package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nbp-rate-service/internal/domain/model"
	"nbp-rate-service/internal/metrics"
	"nbp-rate-service/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "nbp:"

// RedisCache stores rate lists as JSON in Redis. GETEX refreshes the key's
// TTL on each read, which gives the same sliding expiration as MemoryCache.
type RedisCache struct {
	client   *redis.Client
	cacheTTL time.Duration
	log      *logger.Logger
	metrics  *metrics.Metrics
}

func NewRedisCache(client *redis.Client, cacheTTL time.Duration, log *logger.Logger, metrics *metrics.Metrics) *RedisCache {
	return &RedisCache{
		client:   client,
		cacheTTL: cacheTTL,
		log:      log.With("component", "redis_cache"),
		metrics:  metrics,
	}
}

// ConnectRedis parses url and pings the server.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}

func redisKey(key model.CacheKey) string {
	return redisKeyPrefix + key.String()
}

func (c *RedisCache) Get(ctx context.Context, key model.CacheKey) ([]model.Rate, bool) {
	data, err := c.client.GetEx(ctx, redisKey(key), c.cacheTTL).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Error("Redis get failed", "key", key.String(), "error", err)
		}
		c.metrics.CacheLookupsTotal.WithLabelValues(key.String(), "miss").Inc()
		c.log.Debug("Cache miss", "key", key.String())
		return nil, false
	}

	var rates []model.Rate
	if err := json.Unmarshal(data, &rates); err != nil {
		c.log.Error("Corrupt cache entry", "key", key.String(), "error", err)
		c.metrics.CacheLookupsTotal.WithLabelValues(key.String(), "miss").Inc()
		return nil, false
	}

	c.metrics.CacheLookupsTotal.WithLabelValues(key.String(), "hit").Inc()
	c.log.Debug("Cache hit", "key", key.String())
	return rates, true
}

func (c *RedisCache) Set(ctx context.Context, key model.CacheKey, rates []model.Rate) error {
	data, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("failed to encode rates: %w", err)
	}

	if err := c.client.Set(ctx, redisKey(key), data, c.cacheTTL).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	c.log.Debug("Cache set", "key", key.String(), "rates", len(rates))

	return nil
}

// ClearExpired is a no-op; Redis evicts expired keys itself.
func (c *RedisCache) ClearExpired(ctx context.Context) error {
	return nil
}
