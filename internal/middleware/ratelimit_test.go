package middleware

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCounterStore is an in-memory CounterStore for tests.
type memoryCounterStore struct {
	mu     sync.Mutex
	counts map[string]int64
	ttls   map[string]time.Duration
}

func newMemoryCounterStore() *memoryCounterStore {
	return &memoryCounterStore{
		counts: make(map[string]int64),
		ttls:   make(map[string]time.Duration),
	}
}

func (s *memoryCounterStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key]++
	return s.counts[key], nil
}

func (s *memoryCounterStore) Expire(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ttls[key] = ttl
	return nil
}

func (s *memoryCounterStore) TTL(_ context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ttls[key], nil
}

func newLimitedApp(store CounterStore, maxReqs int) *fiber.App {
	app := fiber.New()
	app.Use(NewRateLimiter(store, maxReqs, 60).Handler())
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	app := newLimitedApp(newMemoryCounterStore(), 3)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "3", resp.Header.Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	app := newLimitedApp(newMemoryCounterStore(), 2)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

// failingCounterStore always errors; the limiter must fail open.
type failingCounterStore struct{}

func (failingCounterStore) Incr(context.Context, string) (int64, error) {
	return 0, context.DeadlineExceeded
}
func (failingCounterStore) Expire(context.Context, string, time.Duration) error { return nil }
func (failingCounterStore) TTL(context.Context, string) (time.Duration, error)  { return 0, nil }

func TestRateLimiterFailsOpen(t *testing.T) {
	app := newLimitedApp(failingCounterStore{}, 1)

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}
