package components

import (
	"strings"

	"flight-booking/internal/infra/gateway"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/pkg/config"
	"flight-booking/internal/usecase"
	"flight-booking/internal/usecase/commands"
	"flight-booking/internal/usecase/queries"
	"flight-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	NewCheckoutSettings,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewFlightCommands,
		commands.NewCheckoutCommands,
		commands.NewPaymentCommands,
		commands.NewAdminCommands,
		commands.NewWebhookCommands,
		NewExpiryCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewFlightQueries,
		queries.NewReservationQueries,
		queries.NewAdminQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewCheckoutSettings(cfg config.Config) commands.CheckoutSettings {
	base := strings.TrimRight(cfg.Server.BaseURL, "/")
	return commands.CheckoutSettings{
		PaymentWindow:  cfg.Checkout.PaymentWindow,
		IdempotencyTTL: cfg.Checkout.IdempotencyTTL,
		GatewayTimeout: cfg.Gateway.Timeout,
		SuccessURL:     base + cfg.Checkout.SuccessPath + "?session_id=" + gateway.SessionIDPlaceholder,
		CancelURL:      base + cfg.Checkout.CancelPath,
	}
}

func NewExpiryCommands(uow shared.UnitOfWork, cfg config.Config, clk clock.Clock) commands.ExpiryCommands {
	return commands.NewExpiryCommands(uow, cfg.Worker.ExpiryBatchSize, clk)
}
