package commands

import (
	"context"
	"log/slog"

	"flight-booking/internal/domain/payment"
	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/infra"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/shared"
)

//go:generate mockgen -source=expiry.go -destination=../../../tests/mock/commands/expiry_mock.go -package=commandsmock

// ExpiryCommands release pending holds whose checkout can no longer be
// paid. Only rows still PENDING_PAYMENT are touched, so a confirmation
// racing with expiry wins cleanly.
type ExpiryCommands interface {
	ExpireDue(ctx context.Context) (int, error)
	ExpireSession(ctx context.Context, sessionID string) error
	PurgeIdempotencyKeys(ctx context.Context) (int64, error)
}

type expiryCommandsImpl struct {
	uow       shared.UnitOfWork
	batchSize int
	clock     clock.Clock
}

func NewExpiryCommands(uow shared.UnitOfWork, batchSize int, clk clock.Clock) ExpiryCommands {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &expiryCommandsImpl{
		uow:       uow,
		batchSize: batchSize,
		clock:     clk,
	}
}

func (e *expiryCommandsImpl) ExpireDue(ctx context.Context) (int, error) {
	expired := 0
	err := e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired = 0
		now := e.clock.Now()

		due, err := tx.Reservations().ListExpiredPending(ctx, now, e.batchSize)
		if err != nil {
			return dbErr(err)
		}
		for _, res := range due {
			if err := res.Expire(now); err != nil {
				continue
			}
			ok, err := e.lapse(ctx, tx, res)
			if err != nil {
				return err
			}
			if ok {
				expired++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		slog.InfoContext(ctx, "expired pending reservations", "count", expired)
	}
	return expired, nil
}

func (e *expiryCommandsImpl) ExpireSession(ctx context.Context, sessionID string) error {
	return e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := e.clock.Now()

		pay, err := tx.Payments().FindBySessionID(ctx, sessionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrPaymentNotFound)
			}
			return dbErr(err)
		}
		res, err := tx.Reservations().FindByIDForUpdate(ctx, pay.ReservationID())
		if err != nil {
			return reservationLookupErr(err)
		}
		if res.Status() != reservation.StatusPendingPayment {
			return nil
		}
		if err := res.Lapse(now); err != nil {
			return nil
		}
		ok, err := e.lapse(ctx, tx, res)
		if err != nil {
			return err
		}
		if ok {
			slog.InfoContext(ctx, "checkout session expired", "reservation_id", res.ID(), "session_id", sessionID)
		}
		return nil
	})
}

// lapse persists an expired reservation and fails its pending payment.
func (e *expiryCommandsImpl) lapse(ctx context.Context, tx shared.Tx, res *reservation.Reservation) (bool, error) {
	ok, err := tx.Reservations().ExpirePending(ctx, res)
	if err != nil {
		return false, dbErr(err)
	}
	if !ok {
		return false, nil
	}

	pay, err := findPayment(ctx, tx, res.ID())
	if err != nil {
		return false, err
	}
	if pay != nil && pay.Status() == payment.StatusPending {
		if err := pay.Fail(e.clock.Now()); err != nil {
			return false, errs.Mark(err, errs.ErrDomainValidation)
		}
		if _, err := tx.Payments().Transition(ctx, pay, payment.StatusPending); err != nil {
			return false, dbErr(err)
		}
	}
	return true, nil
}

func (e *expiryCommandsImpl) PurgeIdempotencyKeys(ctx context.Context) (int64, error) {
	var purged int64
	err := e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		purged, err = tx.Idempotency().DeleteExpired(ctx, e.clock.Now())
		return err
	})
	if err != nil {
		return 0, dbErr(err)
	}
	return purged, nil
}
