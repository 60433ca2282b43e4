package commands

import (
	"context"
	"log/slog"

	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/shared"
)

//go:generate mockgen -source=webhook.go -destination=../../../tests/mock/commands/webhook_mock.go -package=commandsmock

// WebhookCommands process authenticated gateway callbacks. Anything that
// passes signature verification is acknowledged unless processing itself
// failed, so the gateway stops retrying events we cannot act on.
type WebhookCommands interface {
	Handle(ctx context.Context, payload []byte, signatureHeader string) error
}

type webhookCommandsImpl struct {
	verifier shared.WebhookVerifier
	payments PaymentCommands
	expiry   ExpiryCommands
}

func NewWebhookCommands(verifier shared.WebhookVerifier, payments PaymentCommands, expiry ExpiryCommands) WebhookCommands {
	return &webhookCommandsImpl{
		verifier: verifier,
		payments: payments,
		expiry:   expiry,
	}
}

func (w *webhookCommandsImpl) Handle(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := w.verifier.Verify(payload, signatureHeader)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidSignature)
	}

	logger := slog.With("event_id", event.ID, "event_type", event.Type, "session_id", event.SessionID)

	switch event.Type {
	case shared.EventCheckoutCompleted:
		summary, err := w.payments.ConfirmBySession(ctx, event.SessionID, event.PaymentRef)
		if err != nil {
			if errs.Is(err, errs.ErrPaymentNotFound) {
				logger.WarnContext(ctx, "webhook for unknown checkout session")
				return nil
			}
			return err
		}
		logger.InfoContext(ctx, "webhook payment applied",
			"reservation_id", summary.ReservationID,
			"status", summary.Status,
			"replayed", summary.Replayed)
		return nil

	case shared.EventCheckoutExpired:
		if err := w.expiry.ExpireSession(ctx, event.SessionID); err != nil {
			if errs.Is(err, errs.ErrPaymentNotFound) {
				logger.WarnContext(ctx, "expiry webhook for unknown checkout session")
				return nil
			}
			return err
		}
		return nil

	case shared.EventChargeRefunded:
		logger.InfoContext(ctx, "refund reported by gateway", "payment_ref", event.PaymentRef)
		return nil

	default:
		logger.DebugContext(ctx, "ignoring webhook event")
		return nil
	}
}
