package request

import (
	"time"

	"flight-booking/internal/domain/resource"

	"github.com/google/uuid"
)

const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

type UpdateReservationRequest struct {
	Action string  `json:"action" binding:"required,oneof=confirm cancel"`
	Reason *string `json:"reason" binding:"omitempty,max=500"`
}

type ListReservationsQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING_PAYMENT CONFIRMED CANCELLED"`
	Search     string `form:"search" binding:"omitempty,max=100"`
	ResourceID string `form:"resourceId" binding:"omitempty,uuid"`
}

// ResourceUUID returns the parsed resourceId filter, nil when absent.
func (q ListReservationsQuery) ResourceUUID() *uuid.UUID {
	if q.ResourceID == "" {
		return nil
	}
	id, err := uuid.Parse(q.ResourceID)
	if err != nil {
		return nil
	}
	return &id
}

type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

type CursorQuery struct {
	After string `form:"after"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type CreateFlightRequest struct {
	Name          string    `json:"name" binding:"required,max=200"`
	Description   string    `json:"description" binding:"max=2000"`
	MaxSlots      int       `json:"maxSlots" binding:"required,min=1"`
	PriceCents    int64     `json:"priceCents" binding:"min=0"`
	Currency      string    `json:"currency" binding:"required,len=3"`
	FlightNumber  string    `json:"flightNumber" binding:"required"`
	Airline       string    `json:"airline" binding:"required"`
	Origin        string    `json:"origin" binding:"required,len=3"`
	Destination   string    `json:"destination" binding:"required,len=3"`
	DepartureTime time.Time `json:"departureTime" binding:"required"`
	ArrivalTime   time.Time `json:"arrivalTime" binding:"required"`
}

func (r CreateFlightRequest) ToDomain(now time.Time) (*resource.Resource, error) {
	price, err := resource.NewMoney(r.PriceCents, r.Currency)
	if err != nil {
		return nil, err
	}
	details, err := resource.NewFlightDetails(r.FlightNumber, r.Origin, r.Destination, r.Airline, r.DepartureTime, r.ArrivalTime)
	if err != nil {
		return nil, err
	}
	return resource.NewFlight(r.Name, r.Description, r.MaxSlots, price, details, now)
}

// UpdateFlightRequest replaces every editable field of a flight.
type UpdateFlightRequest CreateFlightRequest

// ApplyTo revises res and returns the change in maxSlots.
func (r UpdateFlightRequest) ApplyTo(res *resource.Resource, now time.Time) (int, error) {
	price, err := resource.NewMoney(r.PriceCents, r.Currency)
	if err != nil {
		return 0, err
	}
	details, err := resource.NewFlightDetails(r.FlightNumber, r.Origin, r.Destination, r.Airline, r.DepartureTime, r.ArrivalTime)
	if err != nil {
		return 0, err
	}
	return res.Revise(r.Name, r.Description, r.MaxSlots, price, details, now)
}
