package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"flight-booking/internal/domain/notification"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/usecase/shared"
)

//go:generate mockgen -source=dispatcher.go -destination=../../../tests/mock/notify/dispatcher_mock.go -package=notifymock

// Publisher hands a recorded event to whatever delivers it.
type Publisher interface {
	Publish(ctx context.Context, event notification.Event) error
}

// Dispatcher implements shared.Notifier. Each event is handled on its own
// goroutine with a context detached from the request, so callers return
// immediately and never see delivery failures.
type Dispatcher struct {
	uow       shared.UnitOfWork
	publisher Publisher
	timeout   time.Duration
	clock     clock.Clock
	wg        sync.WaitGroup
}

func NewDispatcher(uow shared.UnitOfWork, publisher Publisher, timeout time.Duration, clk clock.Clock) *Dispatcher {
	return &Dispatcher{
		uow:       uow,
		publisher: publisher,
		timeout:   timeout,
		clock:     clk,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, event notification.Event) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("notification dispatch panicked", "reservation_id", event.ReservationID, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		d.dispatch(ctx, event)
	}()
}

// Wait blocks until in-flight dispatches finish.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(ctx context.Context, event notification.Event) {
	if err := d.record(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to record notification job",
			"topic", event.Topic,
			"reservation_id", event.ReservationID,
			"error", err)
		return
	}

	if err := d.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish notification",
			"topic", event.Topic,
			"reservation_id", event.ReservationID,
			"error", err)
		msg := err.Error()
		_ = d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Notifications().UpdateJobStatus(ctx, event.JobID, notification.JobStatusFailed.String(), &msg, nil)
		})
	}
}

func (d *Dispatcher) record(ctx context.Context, event notification.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().CreateJob(ctx, shared.NotificationJob{
			ID:        event.JobID,
			Kind:      notification.KindEmail,
			Topic:     event.Topic.String(),
			Recipient: event.RecipientEmail,
			Payload:   payload,
			RunAt:     d.clock.Now(),
		})
	})
}

// DirectPublisher delivers in-process.
type DirectPublisher struct {
	deliverer *Deliverer
}

func NewDirectPublisher(deliverer *Deliverer) *DirectPublisher {
	return &DirectPublisher{deliverer: deliverer}
}

func (p *DirectPublisher) Publish(ctx context.Context, event notification.Event) error {
	// Failures are already recorded on the job by the deliverer.
	_ = p.deliverer.Deliver(ctx, event)
	return nil
}
