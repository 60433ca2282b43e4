//go:build unit || e2e

package builder

import (
	"time"

	"flight-booking/internal/domain/notification"
	"flight-booking/internal/domain/payment"
	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/domain/resource"
	reqdto "flight-booking/internal/handler/dto/request"
	"flight-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type PassengerFixture struct {
	FirstName      string
	LastName       string
	DocumentNumber string
}

type ReservationBuilder struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	ResourceID         uuid.UUID
	PassengerCount     int
	Passengers         []PassengerFixture
	Status             reservation.Status
	ExpiresAt          time.Time
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string
	CreatedAt          time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		ResourceID:     uuid.New(),
		PassengerCount: 2,
		Passengers: []PassengerFixture{
			{FirstName: "Ada", LastName: "Lovelace", DocumentNumber: "X1234567"},
			{FirstName: "Charles", LastName: "Babbage", DocumentNumber: "Y7654321"},
		},
		Status:    reservation.StatusPendingPayment,
		ExpiresAt: now.Add(2 * time.Hour),
		CreatedAt: now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) ForUser(userID uuid.UUID) *ReservationBuilder {
	r.UserID = userID
	return r
}

func (r *ReservationBuilder) ForFlight(resourceID uuid.UUID) *ReservationBuilder {
	r.ResourceID = resourceID
	return r
}

func (r *ReservationBuilder) AsConfirmed() *ReservationBuilder {
	at := r.CreatedAt.Add(10 * time.Minute)
	r.Status = reservation.StatusConfirmed
	r.ConfirmedAt = &at
	return r
}

func (r *ReservationBuilder) AsCancelled(reason string) *ReservationBuilder {
	at := r.CreatedAt.Add(10 * time.Minute)
	r.Status = reservation.StatusCancelled
	r.CancelledAt = &at
	r.CancellationReason = &reason
	return r
}

func (r *ReservationBuilder) AsExpired() *ReservationBuilder {
	return r.AsCancelled(reservation.ReasonPaymentExpired)
}

func (r *ReservationBuilder) BuildDomain() *reservation.Reservation {
	passengers := make([]reservation.Passenger, 0, len(r.Passengers))
	for _, p := range r.Passengers {
		passengers = append(passengers, reservation.ReconstructPassenger(p.FirstName, p.LastName, p.DocumentNumber))
	}
	return reservation.ReconstructReservation(
		r.ID, r.UserID, r.ResourceID,
		r.PassengerCount,
		reservation.ReconstructManifest(passengers),
		r.Status,
		r.ExpiresAt,
		r.ConfirmedAt, r.CancelledAt,
		r.CancellationReason,
		r.CreatedAt, r.CreatedAt,
	)
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	passengers := make([]queries.PassengerView, 0, len(r.Passengers))
	for _, p := range r.Passengers {
		passengers = append(passengers, queries.PassengerView{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			DocumentNumber: p.DocumentNumber,
		})
	}
	departure := time.Date(2030, 6, 1, 9, 30, 0, 0, time.UTC)
	return &queries.ReservationView{
		ID:                 r.ID,
		Reference:          notification.Reference(r.ID),
		UserID:             r.UserID,
		UserEmail:          "test@example.com",
		UserName:           "Ada Lovelace",
		ResourceID:         r.ResourceID,
		FlightName:         "Madrid to Lisbon",
		FlightNumber:       "IB3106",
		Airline:            "Iberia",
		Origin:             "MAD",
		Destination:        "LIS",
		DepartureTime:      departure,
		ArrivalTime:        departure.Add(80 * time.Minute),
		Currency:           "EUR",
		PassengerCount:     int32(r.PassengerCount), // #nosec G115 -- test fixture values are small
		Passengers:         passengers,
		Status:             r.Status.String(),
		ExpiresAt:          r.ExpiresAt,
		ConfirmedAt:        r.ConfirmedAt,
		CancelledAt:        r.CancelledAt,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.CreatedAt,
	}
}

func (r *ReservationBuilder) BuildCheckoutRequest() reqdto.CheckoutRequest {
	passengers := make([]reqdto.PassengerRequest, 0, len(r.Passengers))
	for _, p := range r.Passengers {
		passengers = append(passengers, reqdto.PassengerRequest{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			DocumentNumber: p.DocumentNumber,
		})
	}
	return reqdto.CheckoutRequest{
		ResourceID:     r.ResourceID,
		PassengerCount: r.PassengerCount,
		Passengers:     passengers,
	}
}

type PaymentBuilder struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	SessionID     string
	PaymentRef    *string
	AmountCents   int64
	Currency      string
	Status        payment.Status
	PaidAt        *time.Time
}

func NewPaymentBuilder() *PaymentBuilder {
	return &PaymentBuilder{
		ID:            uuid.New(),
		ReservationID: uuid.New(),
		SessionID:     "cs_test_" + uuid.NewString()[:8],
		AmountCents:   17998,
		Currency:      "EUR",
		Status:        payment.StatusPending,
	}
}

func (p *PaymentBuilder) ForReservation(id uuid.UUID) *PaymentBuilder {
	p.ReservationID = id
	return p
}

func (p *PaymentBuilder) WithStatus(status payment.Status) *PaymentBuilder {
	p.Status = status
	if status == payment.StatusCompleted && p.PaidAt == nil {
		at := time.Date(2030, 5, 1, 12, 5, 0, 0, time.UTC)
		p.PaidAt = &at
	}
	return p
}

func (p *PaymentBuilder) BuildDomain() *payment.Payment {
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	return payment.ReconstructPayment(
		p.ID, p.ReservationID,
		p.SessionID, p.PaymentRef,
		resource.ReconstructMoney(p.AmountCents, p.Currency),
		p.Status, p.PaidAt,
		now, now,
	)
}
