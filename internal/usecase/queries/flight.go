package queries

import (
	"context"
	"log/slog"

	"flight-booking/internal/infra"

	"github.com/google/uuid"
)

//go:generate mockgen -source=flight.go -destination=../../../tests/mock/queries/flight_mock.go -package=queriesmock

type FlightReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FlightView, error)
	List(ctx context.Context, limit, offset int32) ([]*FlightView, error)
	Count(ctx context.Context) (int64, error)
}

// FlightCache is a read-through cache for flight details. A miss is
// reported as (nil, false, nil).
type FlightCache interface {
	Get(ctx context.Context, id uuid.UUID) (*FlightView, bool, error)
	Set(ctx context.Context, view *FlightView) error
}

type FlightQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*FlightView, error)
	List(ctx context.Context, page, limit int) ([]*FlightView, PageInfo, error)
}

type flightQueriesImpl struct {
	store FlightReadStore
	cache FlightCache
}

func NewFlightQueries(store FlightReadStore, cache FlightCache) FlightQueries {
	return &flightQueriesImpl{store: store, cache: cache}
}

func (q *flightQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*FlightView, error) {
	if view, ok, err := q.cache.Get(ctx, id); err != nil {
		slog.WarnContext(ctx, "flight cache read failed", "resource_id", id, "error", err)
	} else if ok {
		return view, nil
	}

	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}

	if err := q.cache.Set(ctx, view); err != nil {
		slog.WarnContext(ctx, "flight cache write failed", "resource_id", id, "error", err)
	}
	return view, nil
}

func (q *flightQueriesImpl) List(ctx context.Context, page, limit int) ([]*FlightView, PageInfo, error) {
	page = ValidatePage(page)
	limit = ValidateLimit(limit)

	total, err := q.store.Count(ctx)
	if err != nil {
		return nil, PageInfo{}, err
	}

	// #nosec G115 -- limit is clamped by ValidateLimit
	flights, err := q.store.List(ctx, int32(limit), pageOffset(page, limit))
	if err != nil {
		return nil, PageInfo{}, err
	}
	return flights, NewPageInfo(page, limit, total), nil
}
