package response

import (
	"time"

	"flight-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PassengerResponse struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DocumentNumber string `json:"documentNumber"`
}

type PaymentResponse struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   string     `json:"sessionId"`
	Status      string     `json:"status"`
	AmountCents int64      `json:"amountCents"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
}

type ReservationResponse struct {
	ID                 uuid.UUID           `json:"id"`
	Reference          string              `json:"reference"`
	UserID             uuid.UUID           `json:"userId"`
	UserEmail          string              `json:"userEmail"`
	UserName           string              `json:"userName"`
	ResourceID         uuid.UUID           `json:"resourceId"`
	FlightName         string              `json:"flightName"`
	FlightNumber       string              `json:"flightNumber"`
	Airline            string              `json:"airline"`
	Origin             string              `json:"origin"`
	Destination        string              `json:"destination"`
	DepartureTime      time.Time           `json:"departureTime"`
	ArrivalTime        time.Time           `json:"arrivalTime"`
	Currency           string              `json:"currency"`
	PassengerCount     int32               `json:"passengerCount"`
	Passengers         []PassengerResponse `json:"passengers"`
	Status             string              `json:"status"`
	ExpiresAt          time.Time           `json:"expiresAt"`
	ConfirmedAt        *time.Time          `json:"confirmedAt,omitempty"`
	CancelledAt        *time.Time          `json:"cancelledAt,omitempty"`
	CancellationReason *string             `json:"cancellationReason,omitempty"`
	Payment            *PaymentResponse    `json:"payment,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

type ReservationPageResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Pagination   PaginationResponse     `json:"pagination"`
}

type ReservationCursorResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	NextCursor   *string                `json:"nextCursor,omitempty"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	if v == nil {
		return nil
	}
	var out ReservationResponse
	_ = copier.CopyWithOption(&out, v, copier.Option{DeepCopy: true})
	if out.Passengers == nil {
		out.Passengers = []PassengerResponse{}
	}
	return &out
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, len(views))
	for i, v := range views {
		out[i] = FromReservationView(v)
	}
	return out
}
