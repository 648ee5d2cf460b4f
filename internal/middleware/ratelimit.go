package middleware

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// counterStore counts hits for a key inside a fixed window that starts with
// the first hit.
type counterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int, error)
}

type visitor struct {
	count       int
	windowStart time.Time
}

type memoryStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func newMemoryStore(window time.Duration) *memoryStore {
	s := &memoryStore{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}

	// Cleanup goroutine
	go func() {
		for {
			time.Sleep(window)
			s.mu.Lock()
			for key, v := range s.visitors {
				if s.now().Sub(v.windowStart) > window {
					delete(s.visitors, key)
				}
			}
			s.mu.Unlock()
		}
	}()

	return s
}

func (s *memoryStore) Incr(ctx context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	v, exists := s.visitors[key]
	if !exists || now.Sub(v.windowStart) > window {
		s.visitors[key] = &visitor{count: 1, windowStart: now}
		return 1, nil
	}

	v.count++
	return v.count, nil
}

type redisStore struct {
	client *redis.Client
	prefix string
}

func (s *redisStore) Incr(ctx context.Context, key string, window time.Duration) (int, error) {
	k := s.prefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		ttl = pipe.TTL(ctx, k)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate counter: %w", err)
	}

	// Every counter must carry a TTL, not only a fresh one.
	if ttl.Val() < 0 {
		if err := s.client.Expire(ctx, k, window).Err(); err != nil {
			return 0, fmt.Errorf("failed to set rate counter expiry: %w", err)
		}
	}
	return int(incr.Val()), nil
}

type RateLimiter struct {
	store  counterStore
	limit  int
	window time.Duration
}

// NewRateLimiter keeps counters in process memory.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:  newMemoryStore(window),
		limit:  limit,
		window: window,
	}
}

// NewRedisRateLimiter shares counters between instances through Redis.
func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:  &redisStore{client: client, prefix: "ratelimit:"},
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count, err := rl.store.Incr(r.Context(), clientIP(r), rl.window)
		if err != nil {
			// Fail open on store errors.
			log.Printf("rate limiter: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > rl.limit {
			writeFailure(w, "Too many requests. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
