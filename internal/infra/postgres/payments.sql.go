package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const paymentColumns = `id, reservation_id, external_session_id, external_payment_ref, amount_cents, currency,
status, paid_at, metadata, created_at, updated_at`

func scanPayment(row interface{ Scan(dest ...any) error }) (Payments, error) {
	var i Payments
	err := row.Scan(
		&i.ID,
		&i.ReservationID,
		&i.ExternalSessionID,
		&i.ExternalPaymentRef,
		&i.AmountCents,
		&i.Currency,
		&i.Status,
		&i.PaidAt,
		&i.Metadata,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createPayment = `INSERT INTO payments (
    id, reservation_id, external_session_id, amount_cents, currency, status, metadata, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING id`

type CreatePaymentParams struct {
	ID                uuid.UUID
	ReservationID     uuid.UUID
	ExternalSessionID string
	AmountCents       int64
	Currency          string
	Status            string
	Metadata          []byte
	CreatedAt         time.Time
}

func (q *Queries) CreatePayment(ctx context.Context, db DBTX, arg CreatePaymentParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx, createPayment,
		arg.ID,
		arg.ReservationID,
		arg.ExternalSessionID,
		arg.AmountCents,
		arg.Currency,
		arg.Status,
		arg.Metadata,
		arg.CreatedAt,
	).Scan(&id)
	return id, err
}

const getPaymentBySessionID = `SELECT ` + paymentColumns + ` FROM payments WHERE external_session_id = $1`

func (q *Queries) GetPaymentBySessionID(ctx context.Context, db DBTX, sessionID string) (Payments, error) {
	return scanPayment(db.QueryRow(ctx, getPaymentBySessionID, sessionID))
}

const getPaymentByReservationID = `SELECT ` + paymentColumns + ` FROM payments WHERE reservation_id = $1`

func (q *Queries) GetPaymentByReservationID(ctx context.Context, db DBTX, reservationID uuid.UUID) (Payments, error) {
	return scanPayment(db.QueryRow(ctx, getPaymentByReservationID, reservationID))
}

// transitionPaymentStatus is a compare-and-set on status. A zero row count
// means another transaction already moved the payment.
const transitionPaymentStatus = `UPDATE payments
SET status = $2,
    paid_at = COALESCE($3, paid_at),
    external_payment_ref = COALESCE($4, external_payment_ref),
    updated_at = $5
WHERE id = $1 AND status = ANY($6::text[])`

type TransitionPaymentStatusParams struct {
	ID                 uuid.UUID
	Status             string
	PaidAt             pgtype.Timestamptz
	ExternalPaymentRef pgtype.Text
	UpdatedAt          time.Time
	FromStatuses       []string
}

func (q *Queries) TransitionPaymentStatus(ctx context.Context, db DBTX, arg TransitionPaymentStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, transitionPaymentStatus,
		arg.ID,
		arg.Status,
		arg.PaidAt,
		arg.ExternalPaymentRef,
		arg.UpdatedAt,
		arg.FromStatuses,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deletePaymentByReservationID = `DELETE FROM payments WHERE reservation_id = $1`

func (q *Queries) DeletePaymentByReservationID(ctx context.Context, db DBTX, reservationID uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, deletePaymentByReservationID, reservationID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
