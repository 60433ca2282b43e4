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
)

//go:generate mockgen -source=confirmation.go -destination=../../../tests/mock/commands/confirmation_mock.go -package=commandsmock

type PaymentCommands interface {
	// ConfirmBySession applies a captured payment. Repeated and concurrent
	// calls for one session converge on a single confirmation.
	ConfirmBySession(ctx context.Context, sessionID, paymentRef string) (*ConfirmationSummary, error)
	// VerifyPayment asks the gateway whether the session is paid and, if so,
	// confirms it.
	VerifyPayment(ctx context.Context, sessionID string) (*ConfirmationSummary, error)
}

type paymentCommandsImpl struct {
	uow      shared.UnitOfWork
	gateway  shared.PaymentGateway
	cache    shared.FlightCacheInvalidator
	notifier shared.Notifier
	settings CheckoutSettings
	clock    clock.Clock
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	cache shared.FlightCacheInvalidator,
	notifier shared.Notifier,
	settings CheckoutSettings,
	clk clock.Clock,
) PaymentCommands {
	return &paymentCommandsImpl{
		uow:      uow,
		gateway:  gateway,
		cache:    cache,
		notifier: notifier,
		settings: settings,
		clock:    clk,
	}
}

func (p *paymentCommandsImpl) VerifyPayment(ctx context.Context, sessionID string) (*ConfirmationSummary, error) {
	if sessionID == "" {
		return nil, errs.ErrInvalidSession
	}

	gatewayCtx, cancel := context.WithTimeout(ctx, p.settings.GatewayTimeout)
	defer cancel()

	session, err := p.gateway.RetrieveSession(gatewayCtx, sessionID)
	if err != nil {
		if errs.Is(err, errs.ErrInvalidSession) {
			return nil, err
		}
		return nil, errs.Mark(err, errs.ErrGatewayUnavailable)
	}
	if !session.Paid {
		return nil, errs.ErrPaymentNotCompleted
	}

	return p.ConfirmBySession(ctx, sessionID, session.PaymentRef)
}

func (p *paymentCommandsImpl) ConfirmBySession(ctx context.Context, sessionID, paymentRef string) (*ConfirmationSummary, error) {
	var summary *ConfirmationSummary
	var n notice

	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		summary, n = nil, notice{}
		now := p.clock.Now()

		pay, err := tx.Payments().FindBySessionID(ctx, sessionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrPaymentNotFound)
			}
			return dbErr(err)
		}

		if !pay.Status().IsClaimable() {
			summary, err = p.replay(ctx, tx, pay)
			return err
		}

		res, err := tx.Reservations().FindByIDForUpdate(ctx, pay.ReservationID())
		if err != nil {
			return reservationLookupErr(err)
		}

		if err := pay.Complete(now); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		pay.AttachPaymentRef(paymentRef)
		claimed, err := tx.Payments().Transition(ctx, pay, payment.ClaimableStatuses()...)
		if err != nil {
			return dbErr(err)
		}
		if !claimed {
			// a concurrent delivery won the claim
			summary, err = p.replay(ctx, tx, pay)
			return err
		}

		switch {
		case res.Status() == reservation.StatusConfirmed:
			// already confirmed by an administrator
		case res.CanConfirmByPayment():
			if err := tx.Inventory().Decrement(ctx, res.ResourceID(), res.PassengerCount()); err != nil {
				return inventoryErr(err)
			}
			if err := res.ConfirmByPayment(now); err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
			if err := tx.Reservations().UpdateStatus(ctx, res); err != nil {
				return dbErr(err)
			}

			flight, owner, err := loadParties(ctx, tx, res)
			if err != nil {
				return dbErr(err)
			}
			n = notice{
				event:      newEvent(notification.TopicReservationConfirmation, res, flight, owner, pay.Amount().Cents(), now),
				send:       true,
				resourceID: res.ResourceID(),
				seatsMoved: true,
			}
		default:
			// Cancelled by an administrator before the capture arrived: keep
			// the money flagged for refund and take no seats.
			if err := pay.InitiateRefund(now); err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
			if _, err := tx.Payments().Transition(ctx, pay, payment.StatusCompleted); err != nil {
				return dbErr(err)
			}
			slog.WarnContext(ctx, "payment captured for cancelled reservation, refund required",
				"reservation_id", res.ID(),
				"session_id", sessionID)
		}

		summary, err = p.summarize(ctx, tx, res, pay, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, n, p.cache, p.notifier)

	slog.InfoContext(ctx, "payment confirmation processed",
		"reservation_id", summary.ReservationID,
		"session_id", sessionID,
		"status", summary.Status,
		"replayed", summary.Replayed)

	return summary, nil
}

func (p *paymentCommandsImpl) replay(ctx context.Context, tx shared.Tx, pay *payment.Payment) (*ConfirmationSummary, error) {
	res, err := tx.Reservations().FindByID(ctx, pay.ReservationID())
	if err != nil {
		return nil, reservationLookupErr(err)
	}
	current, err := tx.Payments().FindByReservationID(ctx, res.ID())
	if err != nil {
		return nil, dbErr(err)
	}
	return p.summarize(ctx, tx, res, current, true)
}

func (p *paymentCommandsImpl) summarize(
	ctx context.Context,
	tx shared.Tx,
	res *reservation.Reservation,
	pay *payment.Payment,
	replayed bool,
) (*ConfirmationSummary, error) {
	flight, err := tx.Reads().ResourceByID(ctx, res.ResourceID())
	if err != nil {
		return nil, dbErr(err)
	}
	return &ConfirmationSummary{
		ReservationID:  res.ID(),
		ResourceID:     res.ResourceID(),
		ResourceName:   flight.Name(),
		PassengerCount: res.PassengerCount(),
		AmountCents:    pay.Amount().Cents(),
		Currency:       pay.Amount().Currency(),
		Status:         res.Status().String(),
		PaymentStatus:  pay.Status().String(),
		Replayed:       replayed,
	}, nil
}
