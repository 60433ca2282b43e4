package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const tryInsertIdempotencyKey = `INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO UPDATE
SET endpoint = EXCLUDED.endpoint,
    request_hash = EXCLUDED.request_hash,
    status = 'processing',
    result_reservation_id = NULL,
    response_body = NULL,
    expires_at = EXCLUDED.expires_at,
    created_at = now(),
    updated_at = now()
WHERE idempotency_keys.expires_at < now()`

type TryInsertIdempotencyKeyParams struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Endpoint    string
	RequestHash string
	ExpiresAt   time.Time
}

// TryInsertIdempotencyKey claims the key. An expired key is taken over; a
// live one leaves zero rows affected.
func (q *Queries) TryInsertIdempotencyKey(ctx context.Context, db DBTX, arg TryInsertIdempotencyKeyParams) (int64, error) {
	tag, err := db.Exec(ctx, tryInsertIdempotencyKey, arg.Key, arg.UserID, arg.Endpoint, arg.RequestHash, arg.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getIdempotencyKey = `SELECT key, user_id, endpoint, request_hash, status, result_reservation_id, response_body,
expires_at, created_at, updated_at
FROM idempotency_keys WHERE key = $1 AND user_id = $2`

func (q *Queries) GetIdempotencyKey(ctx context.Context, db DBTX, key, userID uuid.UUID) (IdempotencyKeys, error) {
	var i IdempotencyKeys
	err := db.QueryRow(ctx, getIdempotencyKey, key, userID).Scan(
		&i.Key,
		&i.UserID,
		&i.Endpoint,
		&i.RequestHash,
		&i.Status,
		&i.ResultReservationID,
		&i.ResponseBody,
		&i.ExpiresAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const completeIdempotencyKey = `UPDATE idempotency_keys
SET status = 'completed', result_reservation_id = $3, response_body = $4, updated_at = now()
WHERE key = $1 AND user_id = $2`

type CompleteIdempotencyKeyParams struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	ResultReservationID uuid.UUID
	ResponseBody        []byte
}

func (q *Queries) CompleteIdempotencyKey(ctx context.Context, db DBTX, arg CompleteIdempotencyKeyParams) error {
	_, err := db.Exec(ctx, completeIdempotencyKey, arg.Key, arg.UserID, arg.ResultReservationID, arg.ResponseBody)
	return err
}

const releaseIdempotencyKey = `DELETE FROM idempotency_keys WHERE key = $1 AND user_id = $2 AND status = 'processing'`

func (q *Queries) ReleaseIdempotencyKey(ctx context.Context, db DBTX, key, userID uuid.UUID) error {
	_, err := db.Exec(ctx, releaseIdempotencyKey, key, userID)
	return err
}

const deleteExpiredIdempotencyKeys = `DELETE FROM idempotency_keys WHERE expires_at < $1`

func (q *Queries) DeleteExpiredIdempotencyKeys(ctx context.Context, db DBTX, now time.Time) (int64, error) {
	tag, err := db.Exec(ctx, deleteExpiredIdempotencyKeys, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
