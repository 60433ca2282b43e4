package commands

import (
	"context"
	"log/slog"

	"flight-booking/internal/domain/resource"
	reqdto "flight-booking/internal/handler/dto/request"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=flight.go -destination=../../../tests/mock/commands/flight_mock.go -package=commandsmock

type FlightCommands interface {
	Create(ctx context.Context, req reqdto.CreateFlightRequest) (uuid.UUID, error)
	// Update replaces the flight's editable fields. A capacity change moves
	// available seats by the same delta; shrinking below the seats already
	// sold is refused.
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateFlightRequest) error
	// Delete refuses while pending or confirmed reservations exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type flightCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.FlightCacheInvalidator
	clock clock.Clock
}

func NewFlightCommands(uow shared.UnitOfWork, cache shared.FlightCacheInvalidator, clk clock.Clock) FlightCommands {
	return &flightCommandsImpl{uow: uow, cache: cache, clock: clk}
}

func (f *flightCommandsImpl) Create(ctx context.Context, req reqdto.CreateFlightRequest) (uuid.UUID, error) {
	flight, err := req.ToDomain(f.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidFlight)
	}

	var id uuid.UUID
	err = f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		id, err = tx.Resources().Create(ctx, flight)
		return err
	})
	if err != nil {
		return uuid.Nil, dbErr(err)
	}

	slog.InfoContext(ctx, "flight created", "resource_id", id, "flight_number", flight.Flight().FlightNumber)
	return id, nil
}

func (f *flightCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateFlightRequest) error {
	var delta int
	err := f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		flight, err := tx.Resources().FindByIDForUpdate(ctx, id)
		if err != nil {
			return resourceLookupErr(err)
		}

		delta, err = req.ApplyTo(flight, f.clock.Now())
		if err != nil {
			if errs.Is(err, resource.ErrCapacityBelowSold) {
				return errs.Mark(err, errs.ErrInsufficientInventory)
			}
			return errs.Mark(err, ErrInvalidFlight)
		}

		switch {
		case delta < 0:
			if err := tx.Inventory().Decrement(ctx, id, -delta); err != nil {
				return inventoryErr(err)
			}
		case delta > 0:
			if _, err := tx.Inventory().Increment(ctx, id, delta); err != nil {
				return inventoryErr(err)
			}
		}

		if err := tx.Resources().Update(ctx, flight); err != nil {
			return resourceLookupErr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	f.cache.Invalidate(ctx, id)
	slog.InfoContext(ctx, "flight updated", "resource_id", id, "capacity_delta", delta)
	return nil
}

func (f *flightCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Resources().FindByIDForUpdate(ctx, id); err != nil {
			return resourceLookupErr(err)
		}

		live, err := tx.Resources().CountLiveReservations(ctx, id)
		if err != nil {
			return dbErr(err)
		}
		if live > 0 {
			return errs.Wrapf(errs.ErrFlightHasReservations, "%d live reservations", live)
		}

		if err := tx.Resources().Delete(ctx, id); err != nil {
			return resourceLookupErr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	f.cache.Invalidate(ctx, id)
	slog.InfoContext(ctx, "flight deleted", "resource_id", id)
	return nil
}
