package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"flight-booking/internal/handler/httperr"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/pkg/config"
	"flight-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

var ErrRateLimited = errs.New("rate limit exceeded")

// Limiter decides whether one more request for key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// RateLimiter is a per-client-IP token bucket. Limiter errors let the
// request through.
type RateLimiter struct {
	limiter Limiter
	enabled bool
}

func NewRateLimiter(cfg config.RateLimitConfig, limiter Limiter) *RateLimiter {
	return &RateLimiter{limiter: limiter, enabled: cfg.Enabled}
}

func (r *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.enabled {
			c.Next()
			return
		}

		key := "ratelimit:" + scope + ":" + c.ClientIP()
		allowed, retryAfter, err := r.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}
		if !allowed {
			secs := int(math.Ceil(retryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(secs))
			httperr.AbortWithError(c, http.StatusTooManyRequests, ErrRateLimited, "Too many requests", gin.H{"retry_after": secs})
			return
		}
		c.Next()
	}
}

var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local rate_per_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_ms')
local tokens = tonumber(state[1])
local last = tonumber(state[2])
if tokens == nil or last == nil then
  tokens = capacity
  last = now_ms
end

local elapsed = math.max(0, now_ms - last)
tokens = math.min(capacity, tokens + elapsed * rate_per_ms)

local allowed = 0
local retry_ms = 0
if tokens >= 1 then
  allowed = 1
  tokens = tokens - 1
else
  retry_ms = math.ceil((1 - tokens) / rate_per_ms)
end

redis.call('HSET', key, 'tokens', tokens, 'last_ms', now_ms)
redis.call('EXPIRE', key, ttl_seconds)
return { allowed, retry_ms }
`)

// RedisLimiter shares buckets across instances.
type RedisLimiter struct {
	rdb   redis.Scripter
	rate  float64
	burst int
	ttl   int64
	clock clock.Clock
}

// NewRedisLimiter expects cfg to have passed RateLimitConfig.Validate.
func NewRedisLimiter(rdb redis.Scripter, cfg config.RateLimitConfig, clk clock.Clock) *RedisLimiter {
	return &RedisLimiter{
		rdb:   rdb,
		rate:  cfg.Rate,
		burst: cfg.Burst,
		// a full bucket refills within burst/rate seconds
		ttl:   int64(math.Ceil(float64(cfg.Burst)/cfg.Rate)) + 1,
		clock: clk,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	vals, err := tokenBucketScript.Run(ctx, l.rdb, []string{key},
		l.clock.Now().UnixMilli(),
		l.burst,
		l.rate/1000,
		l.ttl,
	).Int64Slice()
	if err != nil {
		return false, 0, errs.Wrap(err, "run token bucket script")
	}
	if len(vals) != 2 {
		return false, 0, errs.New("unexpected token bucket result")
	}
	return vals[0] == 1, time.Duration(vals[1]) * time.Millisecond, nil
}

// MemoryLimiter keeps buckets in process; idle buckets are dropped by
// Sweep.
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	idle     time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewMemoryLimiter(cfg config.RateLimitConfig) *MemoryLimiter {
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(cfg.Rate),
		burst:    cfg.Burst,
		idle:     10 * time.Minute,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.visitors[key] = v
	}
	now := time.Now()
	v.lastSeen = now
	l.mu.Unlock()

	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second, nil
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay, nil
	}
	return true, 0, nil
}

// Sweep removes buckets idle for longer than the idle window.
func (l *MemoryLimiter) Sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idle {
			delete(l.visitors, key)
		}
	}
}
