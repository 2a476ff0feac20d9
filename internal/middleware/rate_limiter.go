package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"proveedores/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Limiter counts requests per key within a fixed window.
type Limiter interface {
	// Allow records one request for key. When the key is over its limit it
	// returns false and how long until the window resets.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// RateLimiter rejects clients over their per-IP budget with 429 and a
// Retry-After header in seconds. Limiter failures let the request through.
func RateLimiter(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn().
				Str("request_id", c.GetString(RequestIDKey)).
				Err(err).
				Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if !allowed {
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// ── In-process limiter ────────────────────────────────────────────────────────

// rateEntry tracks request counts for one key.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// MemoryLimiter keeps counters in process memory. Each replica enforces its
// own budget.
type MemoryLimiter struct {
	limit   int
	window  time.Duration
	now     func() time.Time
	entries map[string]*rateEntry
	mu      sync.Mutex
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		entries: make(map[string]*rateEntry),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	entry, exists := l.entries[key]
	if !exists {
		entry = &rateEntry{}
		l.entries[key] = entry
	}
	l.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := l.now()
	if !now.Before(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(l.window)
	}

	entry.count++
	if entry.count > l.limit {
		return false, entry.windowEnd.Sub(now), nil
	}
	return true, 0, nil
}

// Purge removes entries whose window has ended and returns how many it removed.
func (l *MemoryLimiter) Purge() int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	purged := 0
	for key, entry := range l.entries {
		entry.mu.Lock()
		if !now.Before(entry.windowEnd) {
			delete(l.entries, key)
			purged++
		}
		entry.mu.Unlock()
	}
	return purged
}

// Len returns the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RunPurge purges expired entries every interval until ctx is done, so IPs
// that never return do not accumulate.
func (l *MemoryLimiter) RunPurge(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if purged := l.Purge(); purged > 0 {
				log.Debug().
					Int("entries_purged", purged).
					Int("entries_remaining", l.Len()).
					Msg("rate limiter map purged")
			}
		}
	}
}

// ── Redis limiter ─────────────────────────────────────────────────────────────

// RedisLimiter keeps counters in redis so every replica shares one budget.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, prefix: "proveedores:ratelimit:"}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := l.prefix + key

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	if incr.Val() <= int64(l.limit) {
		return true, 0, nil
	}
	ttl, err := l.rdb.PTTL(ctx, k).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl < 0 {
		ttl = l.window
	}
	return false, ttl, nil
}
