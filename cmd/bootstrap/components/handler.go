package components

import (
	"flight-booking/internal/handler"
	"flight-booking/internal/handler/api"
	"flight-booking/internal/handler/middleware"
	"flight-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewFlightHandler,
		api.NewCheckoutHandler,
		api.NewWebhookHandler,
		api.NewReservationHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		NewRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)

func NewRateLimiter(cfg config.Config, limiter middleware.Limiter) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit, limiter)
}
