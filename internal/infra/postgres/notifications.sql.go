package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createNotificationJob = `INSERT INTO notification_jobs (id, kind, topic, recipient, payload, status, run_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

type CreateNotificationJobParams struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Recipient string
	Payload   []byte
	Status    string
	RunAt     time.Time
}

func (q *Queries) CreateNotificationJob(ctx context.Context, db DBTX, arg CreateNotificationJobParams) error {
	_, err := db.Exec(ctx, createNotificationJob,
		arg.ID,
		arg.Kind,
		arg.Topic,
		arg.Recipient,
		arg.Payload,
		arg.Status,
		arg.RunAt,
	)
	return err
}

const updateNotificationJobStatus = `UPDATE notification_jobs
SET status = $2, last_error = $3, provider_message_id = COALESCE($4, provider_message_id),
    attempts = attempts + 1, updated_at = now()
WHERE id = $1`

type UpdateNotificationJobStatusParams struct {
	ID                uuid.UUID
	Status            string
	LastError         pgtype.Text
	ProviderMessageID pgtype.Text
}

func (q *Queries) UpdateNotificationJobStatus(ctx context.Context, db DBTX, arg UpdateNotificationJobStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, updateNotificationJobStatus, arg.ID, arg.Status, arg.LastError, arg.ProviderMessageID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
