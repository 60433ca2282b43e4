package components

import (
	"context"

	"flight-booking/internal/pkg/config"
	"flight-booking/internal/usecase/commands"
	"flight-booking/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(NewExpiryWorker),
	fx.Invoke(func(*worker.ExpiryWorker) {}),
)

func NewExpiryWorker(lc fx.Lifecycle, expiry commands.ExpiryCommands, cfg config.Config) *worker.ExpiryWorker {
	w := worker.NewExpiryWorker(expiry, cfg.Worker.ExpiryInterval)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			w.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			w.Stop()
			return nil
		},
	})
	return w
}
