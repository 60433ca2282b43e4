package repository

import (
	"context"

	"flight-booking/internal/domain/notification"
	"flight-booking/internal/infra"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/pkg/pgconv"
	"flight-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=notification.go -destination=../../../tests/mock/repository/notification_mock.go -package=repositorymock

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db postgres.DBTX, arg postgres.CreateNotificationJobParams) error
	UpdateNotificationJobStatus(ctx context.Context, db postgres.DBTX, arg postgres.UpdateNotificationJobStatusParams) (int64, error)
}

type NotificationRepository struct {
	queries NotificationWriteQueries
	db      postgres.DBTX
}

func NewNotificationRepository(queries NotificationWriteQueries, db postgres.DBTX) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, job shared.NotificationJob) error {
	params := postgres.CreateNotificationJobParams{
		ID:        job.ID,
		Kind:      job.Kind,
		Topic:     job.Topic,
		Recipient: job.Recipient,
		Payload:   job.Payload,
		Status:    notification.JobStatusQueued.String(),
		RunAt:     job.RunAt,
	}

	if err := r.queries.CreateNotificationJob(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}

	return nil
}

func (r *NotificationRepository) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string, lastError, providerMessageID *string) error {
	params := postgres.UpdateNotificationJobStatusParams{
		ID:                jobID,
		Status:            status,
		LastError:         pgconv.StringPtrToPgtype(lastError),
		ProviderMessageID: pgconv.StringPtrToPgtype(providerMessageID),
	}

	affected, err := r.queries.UpdateNotificationJobStatus(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
	}

	return nil
}
