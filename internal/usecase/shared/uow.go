package shared

import (
	"context"
	"time"

	"flight-booking/internal/domain/payment"
	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/domain/resource"
	"flight-booking/internal/domain/user"
	"flight-booking/internal/infra/postgres"

	"github.com/google/uuid"
)

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow_mock.go -package=sharedmock

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db postgres.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db postgres.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Tx exposes repositories bound to one database transaction. Inventory
// mutations are only reachable from here.
type Tx interface {
	Inventory() InventoryRepository
	Resources() ResourceRepository
	Reservations() ReservationRepository
	Payments() PaymentRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
	DB() postgres.DBTX
}

type CommandReads interface {
	ResourceByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type InventoryRepository interface {
	// Decrement takes n seats only if at least n remain.
	Decrement(ctx context.Context, resourceID uuid.UUID, n int) error
	// ForceDecrement takes n seats without checking; the storage constraint
	// still rejects a negative balance.
	ForceDecrement(ctx context.Context, resourceID uuid.UUID, n int) (int, error)
	Increment(ctx context.Context, resourceID uuid.UUID, n int) (int, error)
}

type ResourceRepository interface {
	Create(ctx context.Context, res *resource.Resource) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	// Update persists every editable field except available_slots.
	Update(ctx context.Context, res *resource.Resource) error
	CountLiveReservations(ctx context.Context, id uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, res *reservation.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*reservation.Reservation, error)
	ExpirePending(ctx context.Context, res *reservation.Reservation) (bool, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) (uuid.UUID, error)
	FindBySessionID(ctx context.Context, sessionID string) (*payment.Payment, error)
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*payment.Payment, error)
	// Transition persists p's current status only if the stored status is
	// one of from. It reports whether the row changed.
	Transition(ctx context.Context, p *payment.Payment, from ...payment.Status) (bool, error)
	DeleteByReservationID(ctx context.Context, reservationID uuid.UUID) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Complete(ctx context.Context, key, userID, reservationID uuid.UUID, responseBody []byte) error
	Release(ctx context.Context, key, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, job NotificationJob) error
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string, lastError, providerMessageID *string) error
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}
