package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"nbp-rate-service/internal/domain/model"
	"nbp-rate-service/internal/metrics"
	"nbp-rate-service/pkg/logger"
)

type entry struct {
	rates     []model.Rate
	expiresAt time.Time
}

// MemoryCache keeps rate lists in process memory with sliding expiration.
type MemoryCache struct {
	cacheMap map[model.CacheKey]*entry
	mutex    sync.Mutex
	cacheTTL time.Duration
	now      func() time.Time
	log      *logger.Logger
	metrics  *metrics.Metrics
}

func NewMemoryCache(cacheTTL time.Duration, log *logger.Logger, metrics *metrics.Metrics) *MemoryCache {
	return &MemoryCache{
		cacheMap: make(map[model.CacheKey]*entry),
		cacheTTL: cacheTTL,
		now:      time.Now,
		log:      log.With("component", "memory_cache"),
		metrics:  metrics,
	}
}

// WithClock replaces the time source. Used by tests.
func (c *MemoryCache) WithClock(now func() time.Time) *MemoryCache {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = now
	return c
}

func (c *MemoryCache) Get(ctx context.Context, key model.CacheKey) ([]model.Rate, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	item, found := c.cacheMap[key]
	if found && !now.Before(item.expiresAt) {
		delete(c.cacheMap, key)
		c.metrics.CacheEvictionsTotal.Inc()
		c.log.Debug("Cache entry expired", "key", key.String())
		found = false
	}

	if !found {
		c.metrics.CacheLookupsTotal.WithLabelValues(key.String(), "miss").Inc()
		c.log.Debug("Cache miss", "key", key.String())
		return nil, false
	}

	item.expiresAt = now.Add(c.cacheTTL)
	c.metrics.CacheLookupsTotal.WithLabelValues(key.String(), "hit").Inc()
	c.log.Debug("Cache hit", "key", key.String())
	return slices.Clone(item.rates), true
}

func (c *MemoryCache) Set(ctx context.Context, key model.CacheKey, rates []model.Rate) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cacheMap[key] = &entry{
		rates:     slices.Clone(rates),
		expiresAt: c.now().Add(c.cacheTTL),
	}
	c.log.Debug("Cache set", "key", key.String(), "rates", len(rates))

	return nil
}

func (c *MemoryCache) ClearExpired(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	expiredKeys := make([]model.CacheKey, 0)

	for key, item := range c.cacheMap {
		if !now.Before(item.expiresAt) {
			expiredKeys = append(expiredKeys, key)
		}
	}

	for _, key := range expiredKeys {
		delete(c.cacheMap, key)
		c.log.Debug("Removed expired cache entry", "key", key.String())
	}
	c.metrics.CacheEvictionsTotal.Add(float64(len(expiredKeys)))

	c.log.Info("Cleared expired cache entries", "count", len(expiredKeys))
	return nil
}

// size returns the number of stored entries, expired or not.
func (c *MemoryCache) size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.cacheMap)
}
