package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"flight-booking/internal/usecase/commands"
)

// ExpiryWorker periodically lapses unpaid holds whose payment window has
// passed and purges stale idempotency keys.
type ExpiryWorker struct {
	expiry   commands.ExpiryCommands
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewExpiryWorker(expiry commands.ExpiryCommands, interval time.Duration) *ExpiryWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ExpiryWorker{expiry: expiry, interval: interval}
}

func (w *ExpiryWorker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.Run(ctx)
	}()
}

func (w *ExpiryWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *ExpiryWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "expiry worker started", "interval", w.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("expiry worker stopped")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs one sweep. Errors are logged and retried on the next tick.
func (w *ExpiryWorker) Tick(ctx context.Context) {
	if _, err := w.expiry.ExpireDue(ctx); err != nil && ctx.Err() == nil {
		slog.ErrorContext(ctx, "failed to expire pending reservations", "error", err)
	}

	purged, err := w.expiry.PurgeIdempotencyKeys(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.ErrorContext(ctx, "failed to purge idempotency keys", "error", err)
		}
		return
	}
	if purged > 0 {
		slog.DebugContext(ctx, "purged idempotency keys", "count", purged)
	}
}
