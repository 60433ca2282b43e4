package response

import (
	"flight-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutResponse struct {
	CheckoutURL   string    `json:"checkoutUrl"`
	ReservationID uuid.UUID `json:"reservationId"`
	SessionID     string    `json:"sessionId"`
}

type VerifyPaymentResponse struct {
	Success     bool                          `json:"success"`
	Message     string                        `json:"message"`
	Reservation *commands.ConfirmationSummary `json:"reservation"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		CheckoutURL:   r.CheckoutURL,
		ReservationID: r.ReservationID,
		SessionID:     r.SessionID,
	}
}
