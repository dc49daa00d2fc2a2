// File: services/booking/cache.go
package booking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"roomly/models"
	"roomly/utils"
)

// PoolCache holds recently listed availability pools so bursts of matching
// requests skip the database read. Staleness is bounded by the TTL; overlap
// checks always run against live reservations, so a cached pool can never
// cause a double-booking.
type PoolCache interface {
	Fetch(ctx context.Context, key string) ([]models.Resource, bool)
	Store(ctx context.Context, key string, pool []models.Resource)
}

// RedisPoolCache keeps pools as JSON blobs in the generic cache database.
type RedisPoolCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPoolCache wraps a Redis client as a PoolCache.
func NewRedisPoolCache(client *redis.Client, ttl time.Duration) *RedisPoolCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisPoolCache{client: client, ttl: ttl}
}

func (c *RedisPoolCache) Fetch(ctx context.Context, key string) ([]models.Resource, bool) {
	raw, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		utils.GetLogger().Sugar().Warnf("pool cache read failed for %s: %v", key, err)
		return nil, false
	}

	var pool []models.Resource
	if err := json.Unmarshal([]byte(raw), &pool); err != nil {
		utils.GetLogger().Sugar().Warnf("pool cache entry for %s is corrupt, dropping: %v", key, err)
		c.client.Del(ctx, key)
		return nil, false
	}
	return pool, true
}

func (c *RedisPoolCache) Store(ctx context.Context, key string, pool []models.Resource) {
	raw, err := json.Marshal(pool)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		utils.GetLogger().Sugar().Warnf("pool cache write failed for %s: %v", key, err)
	}
}
