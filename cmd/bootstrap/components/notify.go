package components

import (
	"context"
	"log/slog"
	"net/http"

	"flight-booking/internal/infra/notify"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/pkg/config"
	"flight-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

const (
	transportDirect = "direct"
	transportAMQP   = "amqp"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		notify.NewRenderer,
		NewMailer,
		notify.NewDeliverer,
		NewPublisher,
		NewNotifier,
	),
)

func NewMailer(cfg config.Config) notify.Mailer {
	if cfg.Notification.BrevoAPIKey == "" {
		slog.Warn("no mail provider key configured; notifications are logged only")
		return notify.LogMailer{}
	}
	sender := notify.Sender{Name: cfg.Notification.SenderName, Email: cfg.Notification.SenderEmail}
	client := &http.Client{Timeout: cfg.Notification.SendTimeout}
	return notify.NewBrevoMailer(cfg.Notification.BrevoBaseURL, cfg.Notification.BrevoAPIKey, sender, client)
}

// NewPublisher selects how recorded jobs reach the deliverer. With the amqp
// transport the consumer runs in this process unless disabled.
func NewPublisher(lc fx.Lifecycle, cfg config.Config, deliverer *notify.Deliverer) notify.Publisher {
	if cfg.Notification.Transport != transportAMQP {
		if cfg.Notification.Transport != transportDirect {
			slog.Warn("unknown notification transport; using direct delivery", "transport", cfg.Notification.Transport)
		}
		return notify.NewDirectPublisher(deliverer)
	}

	publisher := notify.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if cfg.AMQP.Consumer {
				consumer := notify.NewConsumer(cfg.AMQP.URL, cfg.AMQP.Queue, deliverer, cfg.Notification.SendTimeout)
				go consumer.Run(ctx)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return publisher.Close()
		},
	})
	return publisher
}

func NewNotifier(lc fx.Lifecycle, uow shared.UnitOfWork, publisher notify.Publisher, cfg config.Config, clk clock.Clock) shared.Notifier {
	dispatcher := notify.NewDispatcher(uow, publisher, cfg.Notification.SendTimeout, clk)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			dispatcher.Wait()
			return nil
		},
	})
	return dispatcher
}
