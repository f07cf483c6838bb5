package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// touchScript increments the counter and stamps the window TTL on first
// touch, in one atomic step so concurrent requests from the same key never
// under-count, even across server processes. Returns (count, remaining ms).
var touchScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RateLimitStoreImpl implements domain.RateLimitStore using Redis
type RateLimitStoreImpl struct {
	client *redis.Client
	prefix string
}

// NewRateLimitStore creates a new Redis-backed rate limit store
func NewRateLimitStore(client *redis.Client) domain.RateLimitStore {
	return &RateLimitStoreImpl{
		client: client,
		prefix: "ratelimit:",
	}
}

// Touch implements domain.RateLimitStore
func (s *RateLimitStoreImpl) Touch(ctx context.Context, key string, window time.Duration) (*domain.RateLimitResult, error) {
	res, err := touchScript.Run(ctx, s.client, []string{s.prefix + key}, window.Milliseconds()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to touch rate limit counter: %w", err)
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) != 2 {
		return nil, fmt.Errorf("unexpected rate limit script reply: %v", res)
	}
	count, ok := vals[0].(int64)
	if !ok {
		return nil, fmt.Errorf("unexpected rate limit count reply: %v", vals[0])
	}
	ttlMs, ok := vals[1].(int64)
	if !ok {
		return nil, fmt.Errorf("unexpected rate limit ttl reply: %v", vals[1])
	}

	return &domain.RateLimitResult{
		Count:     count,
		Remaining: time.Duration(ttlMs) * time.Millisecond,
	}, nil
}
