package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"

	"flight-booking/internal/domain/payment"
	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/domain/resource"
	reqdto "flight-booking/internal/handler/dto/request"
	"flight-booking/internal/infra"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=checkout.go -destination=../../../tests/mock/commands/checkout_mock.go -package=commandsmock

const checkoutEndpoint = "POST /api/checkout"

type CheckoutCommands interface {
	// Checkout places a PENDING_PAYMENT hold and opens a gateway session.
	// Inventory is untouched until the payment is captured.
	Checkout(ctx context.Context, req reqdto.CheckoutRequest, userID uuid.UUID, idempotencyKey *uuid.UUID) (*CheckoutResult, error)
}

type checkoutCommandsImpl struct {
	uow      shared.UnitOfWork
	gateway  shared.PaymentGateway
	settings CheckoutSettings
	clock    clock.Clock
}

func NewCheckoutCommands(uow shared.UnitOfWork, gateway shared.PaymentGateway, settings CheckoutSettings, clk clock.Clock) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:      uow,
		gateway:  gateway,
		settings: settings,
		clock:    clk,
	}
}

func (c *checkoutCommandsImpl) Checkout(
	ctx context.Context,
	req reqdto.CheckoutRequest,
	userID uuid.UUID,
	idempotencyKey *uuid.UUID,
) (*CheckoutResult, error) {
	manifest, err := req.ToManifest()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPassengers)
	}

	if idempotencyKey == nil {
		return c.createCheckout(ctx, req, manifest, userID, nil)
	}

	requestHash, err := calculateRequestHash(req)
	if err != nil {
		return nil, err
	}
	replay, err := c.claimIdempotencyKey(ctx, *idempotencyKey, userID, requestHash)
	if err != nil {
		return nil, err
	}
	if replay != nil {
		return replay, nil
	}

	result, err := c.createCheckout(ctx, req, manifest, userID, idempotencyKey)
	if err != nil {
		c.releaseIdempotencyKey(ctx, *idempotencyKey, userID)
		return nil, err
	}
	return result, nil
}

// claimIdempotencyKey commits the key in its own transaction so concurrent
// requests with the same key observe it. A non-nil result is a replay.
func (c *checkoutCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	key, userID uuid.UUID,
	requestHash string,
) (*CheckoutResult, error) {
	var existing *shared.IdempotencyRecord
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing = nil
		expiresAt := c.clock.Now().Add(c.settings.IdempotencyTTL)
		inserted, err := tx.Idempotency().TryInsert(ctx, key, userID, checkoutEndpoint, requestHash, expiresAt)
		if err != nil {
			return err
		}
		if inserted {
			return nil
		}
		existing, err = tx.Reads().IdempotencyByKey(ctx, key, userID)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if existing == nil {
		return nil, nil
	}

	if existing.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyMismatch
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		var result CheckoutResult
		if err := json.Unmarshal(existing.ResponseBody, &result); err != nil {
			return nil, errs.Mark(errs.Wrap(err, "decode stored checkout response"), errs.ErrIdempotencyCheckFailed)
		}
		result.IsReplayed = true
		return &result, nil
	case shared.IdempotencyStatusProcessing:
		return nil, errs.ErrIdempotencyInProgress
	default:
		return nil, errs.Mark(errs.New("invalid idempotency key status"), errs.ErrIdempotencyCheckFailed)
	}
}

func (c *checkoutCommandsImpl) releaseIdempotencyKey(ctx context.Context, key, userID uuid.UUID) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, key, userID)
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to release idempotency key", "idempotency_key", key, "error", err.Error())
	}
}

func (c *checkoutCommandsImpl) createCheckout(
	ctx context.Context,
	req reqdto.CheckoutRequest,
	manifest reservation.Manifest,
	userID uuid.UUID,
	idempotencyKey *uuid.UUID,
) (*CheckoutResult, error) {
	flight, err := c.loadFlight(ctx, req.ResourceID, req.PassengerCount)
	if err != nil {
		return nil, err
	}

	customer, err := c.uow.CommandReads().UserByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrUnauthorized
		}
		return nil, dbErr(err)
	}

	now := c.clock.Now()
	res, err := reservation.NewReservation(userID, flight.ID(), manifest, req.PassengerCount, now, c.settings.PaymentWindow)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPassengers)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Reservations().Create(ctx, res)
		return err
	})
	if err != nil {
		return nil, dbErr(err)
	}

	amount := flight.TotalPrice(req.PassengerCount)
	session, err := c.openSession(ctx, res, flight, customer.Email().Value(), amount)
	if err != nil {
		// The hold stays PENDING_PAYMENT and is swept once its window passes.
		slog.WarnContext(ctx, "checkout session creation failed",
			"reservation_id", res.ID(),
			"error", err.Error())
		return nil, errs.Mark(err, errs.ErrGatewayUnavailable)
	}

	result := &CheckoutResult{
		CheckoutURL:   session.URL,
		ReservationID: res.ID(),
		SessionID:     session.ID,
	}

	pay, err := payment.NewPayment(res.ID(), session.ID, amount, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSession)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Payments().Create(ctx, pay); err != nil {
			return err
		}
		if idempotencyKey == nil {
			return nil
		}
		body, err := json.Marshal(result)
		if err != nil {
			return err
		}
		return tx.Idempotency().Complete(ctx, *idempotencyKey, userID, res.ID(), body)
	})
	if err != nil {
		return nil, dbErr(err)
	}

	slog.InfoContext(ctx, "checkout session created",
		"reservation_id", res.ID(),
		"session_id", session.ID,
		"passenger_count", req.PassengerCount,
		"amount_cents", amount.Cents())

	return result, nil
}

func (c *checkoutCommandsImpl) loadFlight(ctx context.Context, resourceID uuid.UUID, passengers int) (*resource.Resource, error) {
	flight, err := c.uow.CommandReads().ResourceByID(ctx, resourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, dbErr(err)
	}

	// Advisory only: the real gate is the conditional decrement at capture.
	if !flight.CanAccommodate(passengers) {
		return nil, errs.ErrInsufficientInventory
	}
	return flight, nil
}

func (c *checkoutCommandsImpl) openSession(
	ctx context.Context,
	res *reservation.Reservation,
	flight *resource.Resource,
	customerEmail string,
	amount resource.Money,
) (*shared.CheckoutSession, error) {
	gatewayCtx, cancel := context.WithTimeout(ctx, c.settings.GatewayTimeout)
	defer cancel()

	details := flight.Flight()
	return c.gateway.CreateCheckoutSession(gatewayCtx, shared.CheckoutSessionRequest{
		ReservationID: res.ID(),
		ResourceID:    flight.ID(),
		UserID:        res.UserID(),
		CustomerEmail: customerEmail,
		ProductName:   flight.Name(),
		Description:   details.FlightNumber + " " + details.Route(),
		UnitAmount:    flight.Price().Cents(),
		Quantity:      res.PassengerCount(),
		Currency:      amount.Currency(),
		SuccessURL:    c.settings.SuccessURL,
		CancelURL:     c.settings.CancelURL,
	})
}

func calculateRequestHash(req reqdto.CheckoutRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", errs.Wrap(err, "failed to encode checkout request for idempotency hash")
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
