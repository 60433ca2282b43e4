package shared

import (
	"context"

	"flight-booking/internal/domain/notification"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/ports_mock.go -package=sharedmock

// PaymentGateway is the external checkout provider.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*GatewaySession, error)
}

type CheckoutSessionRequest struct {
	ReservationID uuid.UUID
	ResourceID    uuid.UUID
	UserID        uuid.UUID
	CustomerEmail string
	ProductName   string
	Description   string
	UnitAmount    int64
	Quantity      int
	Currency      string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type GatewaySession struct {
	ID            string
	Paid          bool
	PaymentRef    string
	ReservationID string
}

// WebhookVerifier authenticates a raw gateway callback and decodes it.
type WebhookVerifier interface {
	Verify(payload []byte, signatureHeader string) (*GatewayEvent, error)
}

type GatewayEvent struct {
	ID         string
	Type       string
	SessionID  string
	PaymentRef string
}

const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
	EventChargeRefunded    = "charge.refunded"
)

// Notifier never blocks the caller and never reports delivery failures.
type Notifier interface {
	Notify(ctx context.Context, event notification.Event)
}

// FlightCacheInvalidator drops cached flight views after a committed
// inventory change.
type FlightCacheInvalidator interface {
	Invalidate(ctx context.Context, resourceID uuid.UUID)
}
