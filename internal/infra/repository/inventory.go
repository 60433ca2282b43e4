package repository

import (
	"context"
	"log/slog"

	"flight-booking/internal/infra"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

//go:generate mockgen -source=inventory.go -destination=../../../tests/mock/repository/inventory_mock.go -package=repositorymock

type InventoryQueries interface {
	DecrementAvailableSlots(ctx context.Context, db postgres.DBTX, arg postgres.AdjustSlotsParams) (int64, error)
	ForceDecrementAvailableSlots(ctx context.Context, db postgres.DBTX, arg postgres.AdjustSlotsParams) (int32, error)
	IncrementAvailableSlots(ctx context.Context, db postgres.DBTX, arg postgres.AdjustSlotsParams) (postgres.IncrementAvailableSlotsRow, error)
	ResourceExists(ctx context.Context, db postgres.DBTX, id uuid.UUID) (bool, error)
}

// InventoryRepository owns every write to resources.available_slots. It is
// only constructed over a transaction handle.
type InventoryRepository struct {
	queries InventoryQueries
	db      postgres.DBTX
}

func NewInventoryRepository(queries InventoryQueries, db postgres.DBTX) *InventoryRepository {
	return &InventoryRepository{
		queries: queries,
		db:      db,
	}
}

func (r *InventoryRepository) Decrement(ctx context.Context, resourceID uuid.UUID, n int) error {
	affected, err := r.queries.DecrementAvailableSlots(ctx, r.db, postgres.AdjustSlotsParams{
		ID:    resourceID,
		Count: int32(n), // #nosec G115 -- passenger counts are bounded by the domain
	})
	if err != nil {
		return infra.WrapRepoErr("failed to decrement available slots", err)
	}
	if affected > 0 {
		return nil
	}

	exists, err := r.queries.ResourceExists(ctx, r.db, resourceID)
	if err != nil {
		return infra.WrapRepoErr("failed to check resource existence", err)
	}
	if !exists {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr("not enough available slots", nil, infra.KindConflict)
}

func (r *InventoryRepository) ForceDecrement(ctx context.Context, resourceID uuid.UUID, n int) (int, error) {
	available, err := r.queries.ForceDecrementAvailableSlots(ctx, r.db, postgres.AdjustSlotsParams{
		ID:    resourceID,
		Count: int32(n), // #nosec G115 -- passenger counts are bounded by the domain
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to force decrement available slots", err)
	}
	return int(available), nil
}

func (r *InventoryRepository) Increment(ctx context.Context, resourceID uuid.UUID, n int) (int, error) {
	row, err := r.queries.IncrementAvailableSlots(ctx, r.db, postgres.AdjustSlotsParams{
		ID:    resourceID,
		Count: int32(n), // #nosec G115 -- passenger counts are bounded by the domain
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to increment available slots", err)
	}
	if row.AvailableSlots > row.MaxSlots {
		slog.WarnContext(ctx, "available slots exceed capacity after release",
			"resource_id", resourceID.String(),
			"available_slots", row.AvailableSlots,
			"max_slots", row.MaxSlots)
	}
	return int(row.AvailableSlots), nil
}
