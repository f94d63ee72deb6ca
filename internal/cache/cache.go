package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/logger"
)

// Cache is a small JSON read-through cache over redis. The aggregation
// functions it fronts are pure, so a short TTL is the only invalidation
// needed.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr string, ttl time.Duration) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr}), ttl)
}

func NewWithClient(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// GetJSON reports whether key was present and unmarshalled into v.
// Redis trouble degrades to a miss; reporting must not fail because the
// cache is down.
func (c *Cache) GetJSON(ctx context.Context, key string, v interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		logger.Warn("cache read failed", "key", key, "err", err)
		return false, nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("cache entry corrupt, treating as miss", "key", key, "err", err)
		return false, nil
	}

	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn("cache write failed", "key", key, "err", err)
		return err
	}

	return nil
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}
