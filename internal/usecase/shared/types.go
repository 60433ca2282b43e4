package shared

import (
	"time"

	"github.com/google/uuid"
)

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Endpoint            string
	Status              string
	RequestHash         string
	ResultReservationID *uuid.UUID
	ResponseBody        []byte
	ExpiresAt           time.Time
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type NotificationJob struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Recipient string
	Payload   []byte
	RunAt     time.Time
}
