package cache

import (
	"context"
	"time"

	"flight-booking/internal/pkg/config"
	"flight-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects and pings once so a bad address fails startup
// instead of the first request.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrapf(err, "redis ping %s", cfg.Addr)
	}
	return client, nil
}
