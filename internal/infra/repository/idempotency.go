package repository

import (
	"context"
	"time"

	"flight-booking/internal/infra"
	"flight-booking/internal/infra/postgres"

	"github.com/google/uuid"
)

//go:generate mockgen -source=idempotency.go -destination=../../../tests/mock/repository/idempotency_mock.go -package=repositorymock

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db postgres.DBTX, arg postgres.TryInsertIdempotencyKeyParams) (int64, error)
	CompleteIdempotencyKey(ctx context.Context, db postgres.DBTX, arg postgres.CompleteIdempotencyKeyParams) error
	ReleaseIdempotencyKey(ctx context.Context, db postgres.DBTX, key, userID uuid.UUID) error
	DeleteExpiredIdempotencyKeys(ctx context.Context, db postgres.DBTX, now time.Time) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	db      postgres.DBTX
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, db postgres.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
	}
}

// TryInsert reports false when the key already exists for this user.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	params := postgres.TryInsertIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}

	affected, err := r.queries.TryInsertIdempotencyKey(ctx, r.db, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}

	return affected > 0, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, key, userID, reservationID uuid.UUID, responseBody []byte) error {
	params := postgres.CompleteIdempotencyKeyParams{
		Key:                 key,
		UserID:              userID,
		ResultReservationID: reservationID,
		ResponseBody:        responseBody,
	}

	if err := r.queries.CompleteIdempotencyKey(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}

	return nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, key, userID uuid.UUID) error {
	if err := r.queries.ReleaseIdempotencyKey(ctx, r.db, key, userID); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, r.db, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}

	return count, nil
}
