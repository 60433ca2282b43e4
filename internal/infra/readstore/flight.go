package readstore

import (
	"context"

	"flight-booking/internal/infra"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/infra/repository/converter"
	"flight-booking/internal/pkg/pgconv"
	"flight-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type FlightReadQueries interface {
	GetResourceByID(ctx context.Context, db postgres.DBTX, id uuid.UUID) (postgres.Resources, error)
	ListResources(ctx context.Context, db postgres.DBTX, arg postgres.ListResourcesParams) ([]postgres.Resources, error)
	CountResources(ctx context.Context, db postgres.DBTX) (int64, error)
}

type FlightReadStore struct {
	queries FlightReadQueries
	db      postgres.DBTX
}

func NewFlightReadStore(queries FlightReadQueries, db postgres.DBTX) *FlightReadStore {
	return &FlightReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *FlightReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.FlightView, error) {
	row, err := r.queries.GetResourceByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("flight not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find flight by ID", err)
	}

	return toFlightView(row)
}

func (r *FlightReadStore) List(ctx context.Context, limit, offset int32) ([]*queries.FlightView, error) {
	rows, err := r.queries.ListResources(ctx, r.db, postgres.ListResourcesParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list flights", err)
	}

	result := make([]*queries.FlightView, 0, len(rows))
	for _, row := range rows {
		view, err := toFlightView(row)
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	return result, nil
}

func (r *FlightReadStore) Count(ctx context.Context) (int64, error) {
	count, err := r.queries.CountResources(ctx, r.db)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count flights", err)
	}
	return count, nil
}

func toFlightView(row postgres.Resources) (*queries.FlightView, error) {
	meta, err := converter.DecodeFlightMetadata(row.Metadata)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode flight metadata", err)
	}

	return &queries.FlightView{
		ID:             row.ID,
		Name:           row.Name,
		Description:    row.Description,
		FlightNumber:   meta.FlightNumber,
		Airline:        meta.Airline,
		Origin:         meta.Origin,
		Destination:    meta.Destination,
		DepartureTime:  meta.DepartureTime,
		ArrivalTime:    meta.ArrivalTime,
		MaxSlots:       row.MaxSlots,
		AvailableSlots: row.AvailableSlots,
		PriceCents:     row.PriceCents,
		Currency:       row.Currency,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}
