package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, user_id, resource_id, passenger_count, passenger_data, status, expires_at,
confirmed_at, cancelled_at, cancellation_reason, created_at, updated_at`

func scanReservation(row interface{ Scan(dest ...any) error }) (Reservations, error) {
	var i Reservations
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ResourceID,
		&i.PassengerCount,
		&i.PassengerData,
		&i.Status,
		&i.ExpiresAt,
		&i.ConfirmedAt,
		&i.CancelledAt,
		&i.CancellationReason,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createReservation = `INSERT INTO reservations (
    id, user_id, resource_id, passenger_count, passenger_data, status, expires_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING id`

type CreateReservationParams struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	ResourceID     uuid.UUID
	PassengerCount int32
	PassengerData  []byte
	Status         string
	ExpiresAt      time.Time
	CreatedAt      time.Time
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx, createReservation,
		arg.ID,
		arg.UserID,
		arg.ResourceID,
		arg.PassengerCount,
		arg.PassengerData,
		arg.Status,
		arg.ExpiresAt,
		arg.CreatedAt,
	).Scan(&id)
	return id, err
}

const getReservationByID = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	return scanReservation(db.QueryRow(ctx, getReservationByID, id))
}

// Every write path locks the reservation row before touching its payment or
// resource, which keeps the lock order identical across transactions.
const getReservationForUpdate = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`

func (q *Queries) GetReservationForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	return scanReservation(db.QueryRow(ctx, getReservationForUpdate, id))
}

const updateReservationStatus = `UPDATE reservations
SET status = $2, confirmed_at = $3, cancelled_at = $4, cancellation_reason = $5, updated_at = $6
WHERE id = $1`

type UpdateReservationStatusParams struct {
	ID                 uuid.UUID
	Status             string
	ConfirmedAt        pgtype.Timestamptz
	CancelledAt        pgtype.Timestamptz
	CancellationReason pgtype.Text
	UpdatedAt          time.Time
}

func (q *Queries) UpdateReservationStatus(ctx context.Context, db DBTX, arg UpdateReservationStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, updateReservationStatus,
		arg.ID,
		arg.Status,
		arg.ConfirmedAt,
		arg.CancelledAt,
		arg.CancellationReason,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteReservation = `DELETE FROM reservations WHERE id = $1`

func (q *Queries) DeleteReservation(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, deleteReservation, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SKIP LOCKED lets the sweeper pass over holds a confirmation is working on.
const listExpiredPendingReservations = `SELECT ` + reservationColumns + ` FROM reservations
WHERE status = 'PENDING_PAYMENT' AND expires_at <= $1
ORDER BY expires_at
LIMIT $2
FOR UPDATE SKIP LOCKED`

type ListExpiredPendingReservationsParams struct {
	Now   time.Time
	Limit int32
}

func (q *Queries) ListExpiredPendingReservations(ctx context.Context, db DBTX, arg ListExpiredPendingReservationsParams) ([]Reservations, error) {
	rows, err := db.Query(ctx, listExpiredPendingReservations, arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Reservations
	for rows.Next() {
		i, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const expirePendingReservation = `UPDATE reservations
SET status = 'CANCELLED', cancelled_at = $2, cancellation_reason = $3, updated_at = $2
WHERE id = $1 AND status = 'PENDING_PAYMENT'`

type ExpirePendingReservationParams struct {
	ID     uuid.UUID
	Now    time.Time
	Reason string
}

func (q *Queries) ExpirePendingReservation(ctx context.Context, db DBTX, arg ExpirePendingReservationParams) (int64, error) {
	tag, err := db.Exec(ctx, expirePendingReservation, arg.ID, arg.Now, arg.Reason)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
