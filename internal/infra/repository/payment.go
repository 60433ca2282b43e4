package repository

import (
	"context"

	"flight-booking/internal/domain/payment"
	"flight-booking/internal/infra"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/infra/repository/converter"
	"flight-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/repository/payment_mock.go -package=repositorymock

type PaymentWriteQueries interface {
	CreatePayment(ctx context.Context, db postgres.DBTX, arg postgres.CreatePaymentParams) (uuid.UUID, error)
	GetPaymentBySessionID(ctx context.Context, db postgres.DBTX, sessionID string) (postgres.Payments, error)
	GetPaymentByReservationID(ctx context.Context, db postgres.DBTX, reservationID uuid.UUID) (postgres.Payments, error)
	TransitionPaymentStatus(ctx context.Context, db postgres.DBTX, arg postgres.TransitionPaymentStatusParams) (int64, error)
	DeletePaymentByReservationID(ctx context.Context, db postgres.DBTX, reservationID uuid.UUID) (int64, error)
}

type PaymentRepository struct {
	queries PaymentWriteQueries
	db      postgres.DBTX
}

func NewPaymentRepository(queries PaymentWriteQueries, db postgres.DBTX) *PaymentRepository {
	return &PaymentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) (uuid.UUID, error) {
	params, err := converter.PaymentToCreateParams(p)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to convert payment", err)
	}

	id, err := r.queries.CreatePayment(ctx, r.db, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create payment", err)
	}
	return id, nil
}

func (r *PaymentRepository) FindBySessionID(ctx context.Context, sessionID string) (*payment.Payment, error) {
	row, err := r.queries.GetPaymentBySessionID(ctx, r.db, sessionID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by session", err)
	}
	return toPaymentDomain(row)
}

func (r *PaymentRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*payment.Payment, error) {
	row, err := r.queries.GetPaymentByReservationID(ctx, r.db, reservationID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by reservation", err)
	}
	return toPaymentDomain(row)
}

func (r *PaymentRepository) Transition(ctx context.Context, p *payment.Payment, from ...payment.Status) (bool, error) {
	fromStatuses := make([]string, len(from))
	for i, s := range from {
		fromStatuses[i] = s.String()
	}

	affected, err := r.queries.TransitionPaymentStatus(ctx, r.db, postgres.TransitionPaymentStatusParams{
		ID:                 p.ID(),
		Status:             p.Status().String(),
		PaidAt:             pgconv.TimePtrToPgtype(p.PaidAt()),
		ExternalPaymentRef: pgconv.StringPtrToPgtype(p.ExternalPaymentRef()),
		UpdatedAt:          p.UpdatedAt(),
		FromStatuses:       fromStatuses,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition payment status", err)
	}
	return affected > 0, nil
}

func (r *PaymentRepository) DeleteByReservationID(ctx context.Context, reservationID uuid.UUID) error {
	if _, err := r.queries.DeletePaymentByReservationID(ctx, r.db, reservationID); err != nil {
		return infra.WrapRepoErr("failed to delete payment", err)
	}
	return nil
}

func toPaymentDomain(row postgres.Payments) (*payment.Payment, error) {
	p, err := converter.PaymentToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert payment", err)
	}
	return p, nil
}
