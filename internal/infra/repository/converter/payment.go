package converter

import (
	"encoding/json"

	"flight-booking/internal/domain/payment"
	"flight-booking/internal/domain/resource"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/pkg/pgconv"
)

func PaymentToCreateParams(p *payment.Payment) (postgres.CreatePaymentParams, error) {
	metadata, err := json.Marshal(map[string]string{
		"reservationId": p.ReservationID().String(),
	})
	if err != nil {
		return postgres.CreatePaymentParams{}, err
	}
	return postgres.CreatePaymentParams{
		ID:                p.ID(),
		ReservationID:     p.ReservationID(),
		ExternalSessionID: p.ExternalSessionID(),
		AmountCents:       p.Amount().Cents(),
		Currency:          p.Amount().Currency(),
		Status:            p.Status().String(),
		Metadata:          metadata,
		CreatedAt:         p.CreatedAt(),
	}, nil
}

func PaymentToDomain(row postgres.Payments) (*payment.Payment, error) {
	status := payment.Status(row.Status)
	if !status.IsValid() {
		return nil, payment.ErrInvalidStatus
	}
	return payment.ReconstructPayment(
		row.ID,
		row.ReservationID,
		row.ExternalSessionID,
		pgconv.StringPtrFromPgtype(row.ExternalPaymentRef),
		resource.ReconstructMoney(row.AmountCents, row.Currency),
		status,
		pgconv.TimePtrFromPgtype(row.PaidAt),
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
