package commands

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutSettings are the tunables of the checkout flow.
type CheckoutSettings struct {
	PaymentWindow  time.Duration
	IdempotencyTTL time.Duration
	GatewayTimeout time.Duration
	SuccessURL     string
	CancelURL      string
}

type CheckoutResult struct {
	CheckoutURL   string    `json:"checkoutUrl"`
	ReservationID uuid.UUID `json:"reservationId"`
	SessionID     string    `json:"sessionId"`
	IsReplayed    bool      `json:"-"`
}

// ConfirmationSummary describes the outcome of a payment confirmation. A
// replayed summary is rebuilt from current state without any mutation.
type ConfirmationSummary struct {
	ReservationID  uuid.UUID `json:"reservationId"`
	ResourceID     uuid.UUID `json:"resourceId"`
	ResourceName   string    `json:"resourceName"`
	PassengerCount int       `json:"passengerCount"`
	AmountCents    int64     `json:"amountCents"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`
	Replayed       bool      `json:"replayed"`
}
