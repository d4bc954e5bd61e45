package cache

import (
	"context"
	"encoding/json"
	"time"

	"ripple/internal/observability"

	"github.com/redis/go-redis/v9"
)

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which should populate dest),
// then stores the result in Redis with ttl. fetch must write into dest.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	getCtx, span := observability.GetTraceLayer().TraceRedisOperation(ctx, "get")
	found, err := GetJSON(getCtx, key, dest)
	span.End()
	if err == nil && found {
		return nil
	}

	// A cache read error falls through to the database.
	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	setCtx, span := observability.GetTraceLayer().TraceRedisOperation(ctx, "set")
	_ = SetJSON(setCtx, key, dest, ttl)
	span.End()
	return nil
}
