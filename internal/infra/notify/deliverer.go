package notify

import (
	"context"
	"log/slog"

	"flight-booking/internal/domain/notification"
	"flight-booking/internal/usecase/shared"
)

// Deliverer renders an event, hands it to the mailer and records the
// outcome on the event's notification job.
type Deliverer struct {
	uow      shared.UnitOfWork
	renderer *Renderer
	mailer   Mailer
}

func NewDeliverer(uow shared.UnitOfWork, renderer *Renderer, mailer Mailer) *Deliverer {
	return &Deliverer{
		uow:      uow,
		renderer: renderer,
		mailer:   mailer,
	}
}

func (d *Deliverer) Deliver(ctx context.Context, event notification.Event) error {
	msg, err := d.renderer.Render(event)
	if err != nil {
		d.markFailed(ctx, event, err)
		return err
	}

	messageID, err := d.mailer.Send(ctx, msg)
	if err != nil {
		d.markFailed(ctx, event, err)
		return err
	}

	d.mark(ctx, event, notification.JobStatusSent, nil, &messageID)
	slog.InfoContext(ctx, "notification sent",
		"topic", event.Topic,
		"reservation_id", event.ReservationID,
		"message_id", messageID)
	return nil
}

func (d *Deliverer) markFailed(ctx context.Context, event notification.Event, cause error) {
	msg := cause.Error()
	d.mark(ctx, event, notification.JobStatusFailed, &msg, nil)
	slog.WarnContext(ctx, "notification delivery failed",
		"topic", event.Topic,
		"reservation_id", event.ReservationID,
		"error", cause)
}

func (d *Deliverer) mark(ctx context.Context, event notification.Event, status notification.JobStatus, lastErr, messageID *string) {
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().UpdateJobStatus(ctx, event.JobID, status.String(), lastErr, messageID)
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to record notification status", "job_id", event.JobID, "status", status, "error", err)
	}
}
