package commands

import (
	"context"
	"log/slog"

	"flight-booking/internal/domain/notification"
	"flight-booking/internal/domain/payment"
	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/infra"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=admin.go -destination=../../../tests/mock/commands/admin_mock.go -package=commandsmock

var allPaymentStatuses = []payment.Status{
	payment.StatusPending,
	payment.StatusCompleted,
	payment.StatusRefundInitiated,
	payment.StatusFailed,
}

// AdminCommands are administrative overrides. Each runs in one transaction
// that locks the reservation first, then the payment, then the flight.
type AdminCommands interface {
	// Confirm forces a reservation to CONFIRMED and takes its seats without
	// checking availability; only the storage constraint can refuse it.
	Confirm(ctx context.Context, reservationID uuid.UUID) error
	Cancel(ctx context.Context, reservationID uuid.UUID, reason string) error
	Delete(ctx context.Context, reservationID uuid.UUID) error
}

type adminCommandsImpl struct {
	uow      shared.UnitOfWork
	cache    shared.FlightCacheInvalidator
	notifier shared.Notifier
	clock    clock.Clock
}

func NewAdminCommands(uow shared.UnitOfWork, cache shared.FlightCacheInvalidator, notifier shared.Notifier, clk clock.Clock) AdminCommands {
	return &adminCommandsImpl{
		uow:      uow,
		cache:    cache,
		notifier: notifier,
		clock:    clk,
	}
}

func (a *adminCommandsImpl) Confirm(ctx context.Context, reservationID uuid.UUID) error {
	var n notice
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n = notice{}
		now := a.clock.Now()

		res, err := tx.Reservations().FindByIDForUpdate(ctx, reservationID)
		if err != nil {
			return reservationLookupErr(err)
		}
		if err := res.Confirm(now); err != nil {
			return err
		}
		if err := tx.Reservations().UpdateStatus(ctx, res); err != nil {
			return dbErr(err)
		}

		pay, err := findPayment(ctx, tx, res.ID())
		if err != nil {
			return err
		}
		if pay != nil {
			pay.ForceComplete(now)
			if _, err := tx.Payments().Transition(ctx, pay, allPaymentStatuses...); err != nil {
				return dbErr(err)
			}
		}

		if _, err := tx.Inventory().ForceDecrement(ctx, res.ResourceID(), res.PassengerCount()); err != nil {
			return inventoryErr(err)
		}

		flight, owner, err := loadParties(ctx, tx, res)
		if err != nil {
			return dbErr(err)
		}
		n = notice{
			event:      newEvent(notification.TopicReservationConfirmation, res, flight, owner, amountOf(pay, flight.TotalPrice(res.PassengerCount()).Cents()), now),
			send:       true,
			resourceID: res.ResourceID(),
			seatsMoved: true,
		}
		return nil
	})
	if err != nil {
		return err
	}

	publish(ctx, n, a.cache, a.notifier)
	slog.InfoContext(ctx, "reservation confirmed by admin", "reservation_id", reservationID)
	return nil
}

func (a *adminCommandsImpl) Cancel(ctx context.Context, reservationID uuid.UUID, reason string) error {
	var n notice
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n = notice{}
		now := a.clock.Now()

		res, err := tx.Reservations().FindByIDForUpdate(ctx, reservationID)
		if err != nil {
			return reservationLookupErr(err)
		}
		prev, err := res.Cancel(now, reason)
		if err != nil {
			return err
		}
		if err := tx.Reservations().UpdateStatus(ctx, res); err != nil {
			return dbErr(err)
		}

		pay, err := findPayment(ctx, tx, res.ID())
		if err != nil {
			return err
		}
		refundPending := false
		if pay != nil && pay.Status() == payment.StatusCompleted {
			if err := pay.InitiateRefund(now); err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
			if _, err := tx.Payments().Transition(ctx, pay, payment.StatusCompleted); err != nil {
				return dbErr(err)
			}
			refundPending = true
		}

		seatsMoved := prev == reservation.StatusConfirmed
		if seatsMoved {
			if _, err := tx.Inventory().Increment(ctx, res.ResourceID(), res.PassengerCount()); err != nil {
				return inventoryErr(err)
			}
		}

		flight, owner, err := loadParties(ctx, tx, res)
		if err != nil {
			return dbErr(err)
		}
		event := newEvent(notification.TopicReservationCancelled, res, flight, owner, amountOf(pay, 0), now)
		if r := res.CancellationReason(); r != nil {
			event.Reason = *r
		}
		event.RefundPending = refundPending
		n = notice{event: event, send: true, resourceID: res.ResourceID(), seatsMoved: seatsMoved}
		return nil
	})
	if err != nil {
		return err
	}

	publish(ctx, n, a.cache, a.notifier)
	slog.InfoContext(ctx, "reservation cancelled by admin", "reservation_id", reservationID, "refund_pending", n.event.RefundPending)
	return nil
}

func (a *adminCommandsImpl) Delete(ctx context.Context, reservationID uuid.UUID) error {
	var n notice
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n = notice{}
		now := a.clock.Now()

		res, err := tx.Reservations().FindByIDForUpdate(ctx, reservationID)
		if err != nil {
			return reservationLookupErr(err)
		}
		pay, err := findPayment(ctx, tx, res.ID())
		if err != nil {
			return err
		}

		// Captured before the rows disappear.
		flight, owner, err := loadParties(ctx, tx, res)
		if err != nil {
			return dbErr(err)
		}
		event := newEvent(notification.TopicReservationDeleted, res, flight, owner, amountOf(pay, 0), now)

		seatsMoved := res.SeatsHeld() > 0
		if seatsMoved {
			if _, err := tx.Inventory().Increment(ctx, res.ResourceID(), res.SeatsHeld()); err != nil {
				return inventoryErr(err)
			}
		}
		if pay != nil {
			if err := tx.Payments().DeleteByReservationID(ctx, res.ID()); err != nil {
				return dbErr(err)
			}
		}
		if err := tx.Reservations().Delete(ctx, res.ID()); err != nil {
			return dbErr(err)
		}

		n = notice{event: event, send: true, resourceID: res.ResourceID(), seatsMoved: seatsMoved}
		return nil
	})
	if err != nil {
		return err
	}

	publish(ctx, n, a.cache, a.notifier)
	slog.InfoContext(ctx, "reservation deleted by admin", "reservation_id", reservationID)
	return nil
}

// findPayment returns nil when the reservation never reached the gateway.
func findPayment(ctx context.Context, tx shared.Tx, reservationID uuid.UUID) (*payment.Payment, error) {
	pay, err := tx.Payments().FindByReservationID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, dbErr(err)
	}
	return pay, nil
}

func amountOf(pay *payment.Payment, fallback int64) int64 {
	if pay == nil {
		return fallback
	}
	return pay.Amount().Cents()
}
