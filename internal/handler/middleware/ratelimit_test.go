//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flight-booking/internal/handler/middleware"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(cfg config.RateLimitConfig, limiter middleware.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/limited", middleware.NewRateLimiter(cfg, limiter).Limit("checkout"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.RemoteAddr = "203.0.113.7:40000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMemoryLimiter(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Rate: 1, Burst: 2}

	t.Run("バースト超過で429とRetry-Afterを返す", func(t *testing.T) {
		r := newLimitedRouter(cfg, middleware.NewMemoryLimiter(cfg))

		assert.Equal(t, http.StatusNoContent, hit(r).Code)
		assert.Equal(t, http.StatusNoContent, hit(r).Code)

		w := hit(r)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "Too many requests")
	})

	t.Run("無効化されている場合は制限しない", func(t *testing.T) {
		disabled := cfg
		disabled.Enabled = false
		r := newLimitedRouter(disabled, middleware.NewMemoryLimiter(disabled))

		for range 5 {
			assert.Equal(t, http.StatusNoContent, hit(r).Code)
		}
	})

	t.Run("キーごとに独立したバケットを持つ", func(t *testing.T) {
		l := middleware.NewMemoryLimiter(cfg)
		ctx := t.Context()

		for range 2 {
			ok, _, err := l.Allow(ctx, "a")
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, retry, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Positive(t, retry)

		ok, _, err = l.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Sweepでアイドルなバケットを破棄する", func(t *testing.T) {
		l := middleware.NewMemoryLimiter(cfg)
		ctx := t.Context()

		for range 2 {
			_, _, _ = l.Allow(ctx, "a")
		}
		ok, _, _ := l.Allow(ctx, "a")
		require.False(t, ok)

		l.Sweep(time.Now().Add(time.Hour))

		ok, _, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestRedisLimiter(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Rate: 5, Burst: 20}
	key := "ratelimit:checkout:203.0.113.7"
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)

	// EVALSHA <sha> 1 <key> <now_ms> <capacity> <tokens_per_ms> <ttl_s>
	expectBucket := func(mock redismock.ClientMock) *redismock.ExpectedCmd {
		return mock.Regexp().ExpectEvalSha(`^[0-9a-f]{40}$`, []string{key},
			now.UnixMilli(), 20, 0.005, int64(5))
	}
	newLimiter := func(db *redis.Client) *middleware.RedisLimiter {
		return middleware.NewRedisLimiter(db, cfg, clock.NewMockClock(now))
	}

	t.Run("スクリプトが許可した場合は通過する", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		expectBucket(mock).SetVal([]interface{}{int64(1), int64(0)})

		w := hit(newLimitedRouter(cfg, newLimiter(db)))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("スクリプトが拒否した場合は待ち時間を切り上げて返す", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		expectBucket(mock).SetVal([]interface{}{int64(0), int64(1200)})

		w := hit(newLimitedRouter(cfg, newLimiter(db)))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "Too many requests")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Redis障害時はリクエストを通す", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		expectBucket(mock).SetErr(errors.New("connection refused"))

		w := hit(newLimitedRouter(cfg, newLimiter(db)))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("不正な応答はエラーとして扱い通過させる", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		expectBucket(mock).SetVal([]interface{}{int64(1)})

		ok, _, err := newLimiter(db).Allow(t.Context(), key)
		assert.Error(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
