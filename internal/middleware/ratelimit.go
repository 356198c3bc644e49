package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

// CounterStore abstracts the sliding-window counters so the limiter owns no
// process-global state and can be backed by anything with get/set/expire
// semantics.
type CounterStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// RedisCounterStore backs a CounterStore with Redis.
type RedisCounterStore struct {
	rdb *redis.Client
}

// NewRedisCounterStore creates a Redis-backed counter store.
func NewRedisCounterStore(rdb *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{rdb: rdb}
}

func (s *RedisCounterStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.rdb.Incr(ctx, key).Result()
}

func (s *RedisCounterStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.rdb.Expire(ctx, key, ttl).Err()
}

func (s *RedisCounterStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.rdb.TTL(ctx, key).Result()
}

// RateLimiter provides sliding window rate limiting over an injected store.
type RateLimiter struct {
	store     CounterStore
	maxReqs   int
	windowSec int
}

// NewRateLimiter creates a rate limiter.
func NewRateLimiter(store CounterStore, maxReqs, windowSec int) *RateLimiter {
	return &RateLimiter{
		store:     store,
		maxReqs:   maxReqs,
		windowSec: windowSec,
	}
}

// Handler returns a Fiber middleware handler for rate limiting.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Use client IP as the rate limit key
		ip := c.IP()
		key := fmt.Sprintf("ratelimit:%s", ip)
		ctx := context.Background()

		count, err := rl.store.Incr(ctx, key)
		if err != nil {
			// If the store fails, allow the request (fail-open)
			return c.Next()
		}

		// Set expiry on first request in the window
		if count == 1 {
			_ = rl.store.Expire(ctx, key, time.Duration(rl.windowSec)*time.Second)
		}

		ttl, _ := rl.store.TTL(ctx, key)

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.maxReqs))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", max(0, int64(rl.maxReqs)-count)))
		c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", int(ttl.Seconds())))

		if int(count) > rl.maxReqs {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "rate limit exceeded",
				"retry_after": int(ttl.Seconds()),
			})
		}

		return c.Next()
	}
}
