package components

import (
	"context"
	"log/slog"
	"time"

	"flight-booking/internal/handler/api"
	"flight-booking/internal/handler/middleware"
	"flight-booking/internal/infra/cache"
	"flight-booking/internal/infra/document"
	"flight-booking/internal/infra/gateway"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/pkg/config"
	"flight-booking/internal/usecase/queries"
	"flight-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const limiterSweepInterval = 5 * time.Minute

var InfraModule = fx.Module("infra",
	fx.Provide(
		NewPaymentGateway,
		NewWebhookVerifier,
		NewRedisClient,
		NewFlightCache,
		NewLimiter,
		fx.Annotate(
			NewItineraryRenderer,
			fx.As(new(api.ItineraryRenderer)),
		),
	),
)

func NewPaymentGateway(cfg config.Config) shared.PaymentGateway {
	if cfg.Gateway.IsTestMode() {
		slog.Warn("payment gateway running in test mode; sessions are settled without a charge")
		return gateway.NewTestGateway()
	}
	return gateway.NewStripeGateway(cfg.Gateway.BaseURL, cfg.Gateway.SecretKey, cfg.Gateway.Timeout, cfg.Gateway.MaxRetries)
}

func NewWebhookVerifier(cfg config.Config) shared.WebhookVerifier {
	return gateway.NewSignatureVerifier(cfg.Gateway.WebhookSecret, cfg.Gateway.SignatureTolerance)
}

// NewRedisClient returns nil when no address is configured. Consumers fall
// back to in-process implementations in that case.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled() {
		slog.Info("redis disabled; using in-process cache and rate limiter")
		return nil, nil
	}

	rdb, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return rdb, nil
}

type FlightCacheResult struct {
	fx.Out

	Reader      queries.FlightCache
	Invalidator shared.FlightCacheInvalidator
}

func NewFlightCache(rdb *redis.Client, cfg config.Config) FlightCacheResult {
	if rdb == nil {
		return FlightCacheResult{Reader: cache.NoopFlightCache{}, Invalidator: cache.NoopFlightCache{}}
	}
	c := cache.NewFlightCache(rdb, cfg.Redis.FlightTTL)
	return FlightCacheResult{Reader: c, Invalidator: c}
}

func NewLimiter(lc fx.Lifecycle, rdb *redis.Client, cfg config.Config, clk clock.Clock) middleware.Limiter {
	if rdb != nil {
		return middleware.NewRedisLimiter(rdb, cfg.RateLimit, clk)
	}

	limiter := middleware.NewMemoryLimiter(cfg.RateLimit)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				ticker := time.NewTicker(limiterSweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						limiter.Sweep(clk.Now())
					}
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
	return limiter
}

func NewItineraryRenderer(cfg config.Config) *document.ItineraryRenderer {
	loc, err := time.LoadLocation(cfg.Log.TimeZone)
	if err != nil {
		loc = time.UTC
	}
	return document.NewItineraryRenderer(loc)
}
