package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ReservationDetailRow is a reservation joined with its flight, owner and
// payment. The payment columns are NULL when no checkout session exists.
type ReservationDetailRow struct {
	Reservations
	ResourceName       string
	ResourceMetadata   []byte
	ResourceCurrency   string
	UserEmail          string
	UserFirstName      string
	UserLastName       string
	PaymentID          pgtype.UUID
	PaymentSessionID   pgtype.Text
	PaymentStatus      pgtype.Text
	PaymentAmountCents pgtype.Int8
	PaymentPaidAt      pgtype.Timestamptz
}

const reservationDetailSelect = `SELECT
    r.id, r.user_id, r.resource_id, r.passenger_count, r.passenger_data, r.status, r.expires_at,
    r.confirmed_at, r.cancelled_at, r.cancellation_reason, r.created_at, r.updated_at,
    res.name, res.metadata, res.currency,
    u.email, u.first_name, u.last_name,
    p.id, p.external_session_id, p.status, p.amount_cents, p.paid_at
FROM reservations r
JOIN resources res ON res.id = r.resource_id
JOIN users u ON u.id = r.user_id
LEFT JOIN payments p ON p.reservation_id = r.id`

func scanReservationDetail(row interface{ Scan(dest ...any) error }) (ReservationDetailRow, error) {
	var i ReservationDetailRow
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
		&i.ResourceName,
		&i.ResourceMetadata,
		&i.ResourceCurrency,
		&i.UserEmail,
		&i.UserFirstName,
		&i.UserLastName,
		&i.PaymentID,
		&i.PaymentSessionID,
		&i.PaymentStatus,
		&i.PaymentAmountCents,
		&i.PaymentPaidAt,
	)
	return i, err
}

func collectReservationDetails(ctx context.Context, db DBTX, sql string, args ...any) ([]ReservationDetailRow, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ReservationDetailRow
	for rows.Next() {
		i, err := scanReservationDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getReservationDetail = reservationDetailSelect + ` WHERE r.id = $1`

func (q *Queries) GetReservationDetail(ctx context.Context, db DBTX, id uuid.UUID) (ReservationDetailRow, error) {
	return scanReservationDetail(db.QueryRow(ctx, getReservationDetail, id))
}

const getReservationDetailBySessionID = reservationDetailSelect + ` WHERE p.external_session_id = $1`

func (q *Queries) GetReservationDetailBySessionID(ctx context.Context, db DBTX, sessionID string) (ReservationDetailRow, error) {
	return scanReservationDetail(db.QueryRow(ctx, getReservationDetailBySessionID, sessionID))
}

const listReservationDetailsByUserFirstPage = reservationDetailSelect + `
WHERE r.user_id = $1
ORDER BY r.created_at DESC, r.id DESC
LIMIT $2`

type ListReservationDetailsByUserFirstPageParams struct {
	UserID uuid.UUID
	Limit  int32
}

func (q *Queries) ListReservationDetailsByUserFirstPage(ctx context.Context, db DBTX, arg ListReservationDetailsByUserFirstPageParams) ([]ReservationDetailRow, error) {
	return collectReservationDetails(ctx, db, listReservationDetailsByUserFirstPage, arg.UserID, arg.Limit)
}

const listReservationDetailsByUserKeyset = reservationDetailSelect + `
WHERE r.user_id = $1
  AND (r.created_at, r.id) < ($2, $3)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $4`

type ListReservationDetailsByUserKeysetParams struct {
	UserID    uuid.UUID
	CreatedAt time.Time
	ID        uuid.UUID
	Limit     int32
}

func (q *Queries) ListReservationDetailsByUserKeyset(ctx context.Context, db DBTX, arg ListReservationDetailsByUserKeysetParams) ([]ReservationDetailRow, error) {
	return collectReservationDetails(ctx, db, listReservationDetailsByUserKeyset, arg.UserID, arg.CreatedAt, arg.ID, arg.Limit)
}

// NULL filter arguments are ignored. The search term matches the owner's
// e-mail or name and the passenger manifest.
const reservationFilter = `
WHERE ($1::text IS NULL OR r.status = $1)
  AND ($2::uuid IS NULL OR r.resource_id = $2)
  AND ($3::text IS NULL
       OR u.email ILIKE '%' || $3 || '%'
       OR u.first_name ILIKE '%' || $3 || '%'
       OR u.last_name ILIKE '%' || $3 || '%'
       OR r.passenger_data::text ILIKE '%' || $3 || '%')`

const listReservationDetails = reservationDetailSelect + reservationFilter + `
ORDER BY r.created_at DESC, r.id DESC
LIMIT $4 OFFSET $5`

type ListReservationDetailsParams struct {
	Status     pgtype.Text
	ResourceID pgtype.UUID
	Search     pgtype.Text
	Limit      int32
	Offset     int32
}

func (q *Queries) ListReservationDetails(ctx context.Context, db DBTX, arg ListReservationDetailsParams) ([]ReservationDetailRow, error) {
	return collectReservationDetails(ctx, db, listReservationDetails, arg.Status, arg.ResourceID, arg.Search, arg.Limit, arg.Offset)
}

const countReservations = `SELECT COUNT(*) FROM reservations r
JOIN users u ON u.id = r.user_id` + reservationFilter

type CountReservationsParams struct {
	Status     pgtype.Text
	ResourceID pgtype.UUID
	Search     pgtype.Text
}

func (q *Queries) CountReservations(ctx context.Context, db DBTX, arg CountReservationsParams) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, countReservations, arg.Status, arg.ResourceID, arg.Search).Scan(&count)
	return count, err
}

const countReservationsGroupedByStatus = `SELECT status, COUNT(*)
FROM reservations
WHERE ($1::uuid IS NULL OR resource_id = $1)
GROUP BY status`

type StatusCountRow struct {
	Status string
	Count  int64
}

func (q *Queries) CountReservationsGroupedByStatus(ctx context.Context, db DBTX, resourceID pgtype.UUID) ([]StatusCountRow, error) {
	rows, err := db.Query(ctx, countReservationsGroupedByStatus, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []StatusCountRow
	for rows.Next() {
		var i StatusCountRow
		if err := rows.Scan(&i.Status, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// Seats held or sold: cancelled reservations are excluded.
const sumActivePassengers = `SELECT COALESCE(SUM(passenger_count), 0)::bigint
FROM reservations WHERE resource_id = $1 AND status <> 'CANCELLED'`

func (q *Queries) SumActivePassengers(ctx context.Context, db DBTX, resourceID uuid.UUID) (int64, error) {
	var total int64
	err := db.QueryRow(ctx, sumActivePassengers, resourceID).Scan(&total)
	return total, err
}

// Revenue counts COMPLETED payments only. Refunds in flight are excluded.
const sumCompletedRevenue = `SELECT COALESCE(SUM(p.amount_cents), 0)::bigint
FROM payments p
JOIN reservations r ON r.id = p.reservation_id
WHERE p.status = 'COMPLETED'
  AND ($1::uuid IS NULL OR r.resource_id = $1)`

func (q *Queries) SumCompletedRevenue(ctx context.Context, db DBTX, resourceID pgtype.UUID) (int64, error) {
	var total int64
	err := db.QueryRow(ctx, sumCompletedRevenue, resourceID).Scan(&total)
	return total, err
}

const revenueByDay = `SELECT to_char(date_trunc('day', p.paid_at AT TIME ZONE 'UTC'), 'YYYY-MM-DD') AS day,
       COALESCE(SUM(p.amount_cents), 0)::bigint AS revenue_cents,
       COUNT(*) AS payments
FROM payments p
WHERE p.status = 'COMPLETED' AND p.paid_at >= $1
GROUP BY day
ORDER BY day`

type RevenueByDayRow struct {
	Day          string
	RevenueCents int64
	Payments     int64
}

func (q *Queries) RevenueByDay(ctx context.Context, db DBTX, since time.Time) ([]RevenueByDayRow, error) {
	rows, err := db.Query(ctx, revenueByDay, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RevenueByDayRow
	for rows.Next() {
		var i RevenueByDayRow
		if err := rows.Scan(&i.Day, &i.RevenueCents, &i.Payments); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
