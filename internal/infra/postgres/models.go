package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Users struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	IsActive     bool
	LastLogin    pgtype.Timestamptz
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Resources struct {
	ID             uuid.UUID
	Name           string
	Description    string
	Type           string
	MaxSlots       int32
	AvailableSlots int32
	PriceCents     int64
	Currency       string
	Metadata       []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Reservations struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	ResourceID         uuid.UUID
	PassengerCount     int32
	PassengerData      []byte
	Status             string
	ExpiresAt          time.Time
	ConfirmedAt        pgtype.Timestamptz
	CancelledAt        pgtype.Timestamptz
	CancellationReason pgtype.Text
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Payments struct {
	ID                 uuid.UUID
	ReservationID      uuid.UUID
	ExternalSessionID  string
	ExternalPaymentRef pgtype.Text
	AmountCents        int64
	Currency           string
	Status             string
	PaidAt             pgtype.Timestamptz
	Metadata           []byte
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type IdempotencyKeys struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Endpoint            string
	RequestHash         string
	Status              string
	ResultReservationID pgtype.UUID
	ResponseBody        []byte
	ExpiresAt           time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type NotificationJobs struct {
	ID                uuid.UUID
	Kind              string
	Topic             string
	Recipient         string
	Payload           []byte
	Status            string
	Attempts          int32
	LastError         pgtype.Text
	ProviderMessageID pgtype.Text
	RunAt             time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
