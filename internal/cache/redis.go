package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis is a Cache backed by a Redis server, shared by every process that
// points at it. Values are stored as JSON.
type Redis[V any] struct {
	rdb    redis.UniversalClient
	prefix string
	log    *zap.Logger
}

// NewRedis wraps an existing client. Keys are namespaced with prefix.
func NewRedis[V any](rdb redis.UniversalClient, prefix string, log *zap.Logger) *Redis[V] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Redis[V]{rdb: rdb, prefix: prefix, log: log.Named("cache.redis")}
}

// Get decodes the stored value. Connection and decode failures are misses.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, bool) {
	var v V
	data, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		r.log.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return v, false
	}
	return v, true
}

// Set encodes value and stores it with an expiry.
func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	data, err := json.Marshal(value)
	if err != nil {
		r.log.Warn("failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.rdb.SetEx(ctx, r.prefix+key, data, ttl).Err(); err != nil {
		r.log.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// DialRedis parses a redis:// URL and pings the server.
func DialRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}
