package request

import (
	"flight-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type PassengerRequest struct {
	FirstName      string `json:"firstName" binding:"required,max=100"`
	LastName       string `json:"lastName" binding:"required,max=100"`
	DocumentNumber string `json:"documentNumber" binding:"required,min=5,max=20"`
}

type CheckoutRequest struct {
	ResourceID     uuid.UUID          `json:"resourceId" binding:"required"`
	PassengerCount int                `json:"passengerCount" binding:"required,min=1,max=9"`
	Passengers     []PassengerRequest `json:"passengers" binding:"omitempty,max=9,dive"`
}

// ToManifest validates the passenger list against the requested count.
func (r CheckoutRequest) ToManifest() (reservation.Manifest, error) {
	passengers := make([]reservation.Passenger, 0, len(r.Passengers))
	for _, p := range r.Passengers {
		passenger, err := reservation.NewPassenger(p.FirstName, p.LastName, p.DocumentNumber)
		if err != nil {
			return reservation.Manifest{}, err
		}
		passengers = append(passengers, passenger)
	}
	return reservation.NewManifest(r.PassengerCount, passengers)
}
