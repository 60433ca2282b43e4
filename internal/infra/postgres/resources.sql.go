package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const resourceColumns = `id, name, description, type, max_slots, available_slots, price_cents, currency, metadata, created_at, updated_at`

func scanResource(row interface{ Scan(dest ...any) error }) (Resources, error) {
	var i Resources
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Type,
		&i.MaxSlots,
		&i.AvailableSlots,
		&i.PriceCents,
		&i.Currency,
		&i.Metadata,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getResourceByID = `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`

func (q *Queries) GetResourceByID(ctx context.Context, db DBTX, id uuid.UUID) (Resources, error) {
	return scanResource(db.QueryRow(ctx, getResourceByID, id))
}

const getResourceForUpdate = `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1 FOR UPDATE`

func (q *Queries) GetResourceForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Resources, error) {
	return scanResource(db.QueryRow(ctx, getResourceForUpdate, id))
}

const listResources = `SELECT ` + resourceColumns + ` FROM resources
ORDER BY metadata ->> 'departureTime' ASC, created_at ASC
LIMIT $1 OFFSET $2`

type ListResourcesParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) ListResources(ctx context.Context, db DBTX, arg ListResourcesParams) ([]Resources, error) {
	rows, err := db.Query(ctx, listResources, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Resources
	for rows.Next() {
		i, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const countResources = `SELECT COUNT(*) FROM resources`

func (q *Queries) CountResources(ctx context.Context, db DBTX) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, countResources).Scan(&count)
	return count, err
}

const createResource = `INSERT INTO resources (
    id, name, description, type, max_slots, available_slots, price_cents, currency, metadata, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $5, $6, $7, $8, $9, $9)
RETURNING id`

type CreateResourceParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	Type        string
	MaxSlots    int32
	PriceCents  int64
	Currency    string
	Metadata    []byte
	CreatedAt   time.Time
}

func (q *Queries) CreateResource(ctx context.Context, db DBTX, arg CreateResourceParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx, createResource,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Type,
		arg.MaxSlots,
		arg.PriceCents,
		arg.Currency,
		arg.Metadata,
		arg.CreatedAt,
	).Scan(&id)
	return id, err
}

// updateResource leaves available_slots alone; capacity changes move it
// through the inventory queries below.
const updateResource = `UPDATE resources
SET name = $2, description = $3, max_slots = $4, price_cents = $5, currency = $6, metadata = $7, updated_at = $8
WHERE id = $1`

type UpdateResourceParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	MaxSlots    int32
	PriceCents  int64
	Currency    string
	Metadata    []byte
	UpdatedAt   time.Time
}

func (q *Queries) UpdateResource(ctx context.Context, db DBTX, arg UpdateResourceParams) (int64, error) {
	tag, err := db.Exec(ctx, updateResource,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.MaxSlots,
		arg.PriceCents,
		arg.Currency,
		arg.Metadata,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const countLiveReservationsByResource = `SELECT COUNT(*) FROM reservations
WHERE resource_id = $1 AND status IN ('PENDING_PAYMENT', 'CONFIRMED')`

func (q *Queries) CountLiveReservationsByResource(ctx context.Context, db DBTX, resourceID uuid.UUID) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, countLiveReservationsByResource, resourceID).Scan(&count)
	return count, err
}

const deleteCancelledReservationsByResource = `DELETE FROM reservations
WHERE resource_id = $1 AND status = 'CANCELLED'`

func (q *Queries) DeleteCancelledReservationsByResource(ctx context.Context, db DBTX, resourceID uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, deleteCancelledReservationsByResource, resourceID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteResource = `DELETE FROM resources WHERE id = $1`

func (q *Queries) DeleteResource(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, deleteResource, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// decrementAvailableSlots is the capacity gate: the row only changes when
// enough seats remain, evaluated atomically by the database.
const decrementAvailableSlots = `UPDATE resources
SET available_slots = available_slots - $2, updated_at = now()
WHERE id = $1 AND available_slots >= $2`

type AdjustSlotsParams struct {
	ID    uuid.UUID
	Count int32
}

func (q *Queries) DecrementAvailableSlots(ctx context.Context, db DBTX, arg AdjustSlotsParams) (int64, error) {
	tag, err := db.Exec(ctx, decrementAvailableSlots, arg.ID, arg.Count)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const forceDecrementAvailableSlots = `UPDATE resources
SET available_slots = available_slots - $2, updated_at = now()
WHERE id = $1
RETURNING available_slots`

func (q *Queries) ForceDecrementAvailableSlots(ctx context.Context, db DBTX, arg AdjustSlotsParams) (int32, error) {
	var available int32
	err := db.QueryRow(ctx, forceDecrementAvailableSlots, arg.ID, arg.Count).Scan(&available)
	return available, err
}

const incrementAvailableSlots = `UPDATE resources
SET available_slots = available_slots + $2, updated_at = now()
WHERE id = $1
RETURNING available_slots, max_slots`

type IncrementAvailableSlotsRow struct {
	AvailableSlots int32
	MaxSlots       int32
}

func (q *Queries) IncrementAvailableSlots(ctx context.Context, db DBTX, arg AdjustSlotsParams) (IncrementAvailableSlotsRow, error) {
	var i IncrementAvailableSlotsRow
	err := db.QueryRow(ctx, incrementAvailableSlots, arg.ID, arg.Count).Scan(&i.AvailableSlots, &i.MaxSlots)
	return i, err
}

const resourceExists = `SELECT EXISTS (SELECT 1 FROM resources WHERE id = $1)`

func (q *Queries) ResourceExists(ctx context.Context, db DBTX, id uuid.UUID) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, resourceExists, id).Scan(&exists)
	return exists, err
}
