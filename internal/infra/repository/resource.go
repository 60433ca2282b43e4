package repository

import (
	"context"

	"flight-booking/internal/domain/resource"
	"flight-booking/internal/infra"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/infra/repository/converter"
	"flight-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

//go:generate mockgen -source=resource.go -destination=../../../tests/mock/repository/resource_mock.go -package=repositorymock

type ResourceWriteQueries interface {
	CreateResource(ctx context.Context, db postgres.DBTX, arg postgres.CreateResourceParams) (uuid.UUID, error)
	GetResourceByID(ctx context.Context, db postgres.DBTX, id uuid.UUID) (postgres.Resources, error)
	GetResourceForUpdate(ctx context.Context, db postgres.DBTX, id uuid.UUID) (postgres.Resources, error)
	UpdateResource(ctx context.Context, db postgres.DBTX, arg postgres.UpdateResourceParams) (int64, error)
	CountLiveReservationsByResource(ctx context.Context, db postgres.DBTX, resourceID uuid.UUID) (int64, error)
	DeleteCancelledReservationsByResource(ctx context.Context, db postgres.DBTX, resourceID uuid.UUID) (int64, error)
	DeleteResource(ctx context.Context, db postgres.DBTX, id uuid.UUID) (int64, error)
}

type ResourceRepository struct {
	queries ResourceWriteQueries
	db      postgres.DBTX
}

func NewResourceRepository(queries ResourceWriteQueries, db postgres.DBTX) *ResourceRepository {
	return &ResourceRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) (uuid.UUID, error) {
	params, err := converter.ResourceToCreateParams(res)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to convert resource", err)
	}

	id, err := r.queries.CreateResource(ctx, r.db, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create resource", err)
	}
	return id, nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	row, err := r.queries.GetResourceByID(ctx, r.db, id)
	return r.toDomain(row, err)
}

// FindByIDForUpdate row-locks the flight, serialising against checkouts
// and releases that move its inventory.
func (r *ResourceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	row, err := r.queries.GetResourceForUpdate(ctx, r.db, id)
	return r.toDomain(row, err)
}

func (r *ResourceRepository) toDomain(row postgres.Resources, err error) (*resource.Resource, error) {
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}

	res, err := converter.ResourceToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert resource", err)
	}
	return res, nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *resource.Resource) error {
	params, err := converter.ResourceToUpdateParams(res)
	if err != nil {
		return infra.WrapRepoErr("failed to convert resource", err)
	}

	affected, err := r.queries.UpdateResource(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update resource", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}

// CountLiveReservations counts reservations still holding or waiting on
// seats of the flight.
func (r *ResourceRepository) CountLiveReservations(ctx context.Context, id uuid.UUID) (int, error) {
	n, err := r.queries.CountLiveReservationsByResource(ctx, r.db, id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count live reservations", err)
	}
	return int(n), nil
}

// Delete removes the flight together with its cancelled reservations.
// Callers check CountLiveReservations first.
func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.queries.DeleteCancelledReservationsByResource(ctx, r.db, id); err != nil {
		return infra.WrapRepoErr("failed to delete cancelled reservations", err)
	}

	affected, err := r.queries.DeleteResource(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete resource", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}
