package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/flexprice/paystack-gateway/internal/config"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/redis/go-redis/v9"
)

// keyspace namespaces every key this service writes so Flush never touches host keys
const keyspace = "paystack:"

// RedisCache implements Cache on redis. Values are stored as JSON and Get returns the raw
// JSON bytes; callers decode them with Decode.
type RedisCache struct {
	client     *redis.Client
	expiration time.Duration
	logger     *logger.Logger
}

// NewRedisCache connects to cfg.Redis
func NewRedisCache(cfg *config.Configuration, log *logger.Logger) *RedisCache {
	expiration := DefaultExpiration
	if cfg.Cache.TTL > 0 {
		expiration = cfg.Cache.TTL
	}

	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}),
		expiration: expiration,
		logger:     log,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (interface{}, bool) {
	span := StartCacheSpan(ctx, "redis", "get", map[string]interface{}{"key": key})
	defer FinishSpan(span)

	b, err := c.client.Get(ctx, keyspace+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			SetSpanError(span, err)
			c.logger.Warnw("redis cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	SetSpanSuccess(span)
	return b, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	b, err := json.Marshal(value)
	if err != nil {
		c.logger.Warnw("redis cache marshal failed", "key", key, "error", err)
		return
	}
	if expiration <= 0 {
		expiration = c.expiration
	}
	if err := c.client.Set(ctx, keyspace+key, b, expiration).Err(); err != nil {
		c.logger.Warnw("redis cache set failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, keyspace+key).Err(); err != nil {
		c.logger.Warnw("redis cache delete failed", "key", key, "error", err)
	}
}

func (c *RedisCache) DeleteByPrefix(ctx context.Context, prefix string) {
	iter := c.client.Scan(ctx, 0, keyspace+prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warnw("redis cache delete failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warnw("redis cache scan failed", "prefix", prefix, "error", err)
	}
}

func (c *RedisCache) Flush(ctx context.Context) {
	c.DeleteByPrefix(ctx, "")
}

// Close releases the redis connection pool
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Decode copies a cached value into dest. Values set in memory are returned as-is by Get,
// values from redis come back as JSON bytes.
func Decode[T any](v interface{}, dest *T) bool {
	switch cached := v.(type) {
	case T:
		*dest = cached
		return true
	case *T:
		if cached == nil {
			return false
		}
		*dest = *cached
		return true
	case []byte:
		return json.Unmarshal(cached, dest) == nil
	default:
		return false
	}
}
