package repository

import (
	"context"
	"time"

	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/infra"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/infra/repository/converter"
	"flight-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/repository/reservation_mock.go -package=repositorymock

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db postgres.DBTX, arg postgres.CreateReservationParams) (uuid.UUID, error)
	GetReservationByID(ctx context.Context, db postgres.DBTX, id uuid.UUID) (postgres.Reservations, error)
	GetReservationForUpdate(ctx context.Context, db postgres.DBTX, id uuid.UUID) (postgres.Reservations, error)
	UpdateReservationStatus(ctx context.Context, db postgres.DBTX, arg postgres.UpdateReservationStatusParams) (int64, error)
	DeleteReservation(ctx context.Context, db postgres.DBTX, id uuid.UUID) (int64, error)
	ListExpiredPendingReservations(ctx context.Context, db postgres.DBTX, arg postgres.ListExpiredPendingReservationsParams) ([]postgres.Reservations, error)
	ExpirePendingReservation(ctx context.Context, db postgres.DBTX, arg postgres.ExpirePendingReservationParams) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      postgres.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db postgres.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	params, err := converter.ReservationToCreateParams(res)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to convert reservation", err)
	}

	resultID, err := r.queries.CreateReservation(ctx, r.db, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return resultID, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	res, err := converter.ReservationToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}

	res, err := converter.ReservationToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, res *reservation.Reservation) error {
	affected, err := r.queries.UpdateReservationStatus(ctx, r.db, converter.ReservationToStatusParams(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.queries.DeleteReservation(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListExpiredPendingReservations(ctx, r.db, postgres.ListExpiredPendingReservationsParams{
		Now:   now,
		Limit: int32(limit), // #nosec G115 -- batch size comes from config
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired reservations", err)
	}

	result := make([]*reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		res, err := converter.ReservationToDomain(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert reservation", err)
		}
		result = append(result, res)
	}
	return result, nil
}

// ExpirePending persists an Expire transition only if the stored row is
// still pending; a concurrent confirmation wins otherwise.
func (r *ReservationRepository) ExpirePending(ctx context.Context, res *reservation.Reservation) (bool, error) {
	reason := reservation.ReasonPaymentExpired
	if res.CancellationReason() != nil {
		reason = *res.CancellationReason()
	}
	cancelledAt := res.UpdatedAt()
	if res.CancelledAt() != nil {
		cancelledAt = *res.CancelledAt()
	}

	affected, err := r.queries.ExpirePendingReservation(ctx, r.db, postgres.ExpirePendingReservationParams{
		ID:     res.ID(),
		Now:    cancelledAt,
		Reason: reason,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to expire reservation", err)
	}
	return affected > 0, nil
}
