//go:build unit || e2e

package builder

import (
	"time"

	"flight-booking/internal/domain/resource"
	reqdto "flight-booking/internal/handler/dto/request"
	"flight-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type FlightBuilder struct {
	ID             uuid.UUID
	Name           string
	Description    string
	MaxSlots       int
	AvailableSlots int
	PriceCents     int64
	Currency       string
	FlightNumber   string
	Airline        string
	Origin         string
	Destination    string
	DepartureTime  time.Time
	ArrivalTime    time.Time
}

func NewFlightBuilder() *FlightBuilder {
	departure := time.Date(2030, 6, 1, 9, 30, 0, 0, time.UTC)
	return &FlightBuilder{
		ID:             uuid.New(),
		Name:           "Madrid to Lisbon",
		Description:    "Morning service",
		MaxSlots:       180,
		AvailableSlots: 180,
		PriceCents:     8999,
		Currency:       "EUR",
		FlightNumber:   "IB3106",
		Airline:        "Iberia",
		Origin:         "MAD",
		Destination:    "LIS",
		DepartureTime:  departure,
		ArrivalTime:    departure.Add(80 * time.Minute),
	}
}

func (f *FlightBuilder) With(mutate func(*FlightBuilder)) *FlightBuilder {
	mutate(f)
	return f
}

func (f *FlightBuilder) WithSeats(maxSlots, available int) *FlightBuilder {
	f.MaxSlots = maxSlots
	f.AvailableSlots = available
	return f
}

func (f *FlightBuilder) WithPrice(cents int64, currency string) *FlightBuilder {
	f.PriceCents = cents
	f.Currency = currency
	return f
}

func (f *FlightBuilder) BuildDomain() *resource.Resource {
	now := time.Now()
	return resource.ReconstructResource(
		f.ID, f.Name, f.Description, resource.TypeFlight,
		f.MaxSlots, f.AvailableSlots,
		resource.ReconstructMoney(f.PriceCents, f.Currency),
		resource.FlightDetails{
			FlightNumber:  f.FlightNumber,
			Origin:        f.Origin,
			Destination:   f.Destination,
			Airline:       f.Airline,
			DepartureTime: f.DepartureTime,
			ArrivalTime:   f.ArrivalTime,
		},
		now, now,
	)
}

func (f *FlightBuilder) BuildRequest() reqdto.CreateFlightRequest {
	return reqdto.CreateFlightRequest{
		Name:          f.Name,
		Description:   f.Description,
		MaxSlots:      f.MaxSlots,
		PriceCents:    f.PriceCents,
		Currency:      f.Currency,
		FlightNumber:  f.FlightNumber,
		Airline:       f.Airline,
		Origin:        f.Origin,
		Destination:   f.Destination,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
	}
}

func (f *FlightBuilder) BuildView() *queries.FlightView {
	now := time.Now()
	return &queries.FlightView{
		ID:             f.ID,
		Name:           f.Name,
		Description:    f.Description,
		FlightNumber:   f.FlightNumber,
		Airline:        f.Airline,
		Origin:         f.Origin,
		Destination:    f.Destination,
		DepartureTime:  f.DepartureTime,
		ArrivalTime:    f.ArrivalTime,
		MaxSlots:       int32(f.MaxSlots),       // #nosec G115 -- test fixture values are small
		AvailableSlots: int32(f.AvailableSlots), // #nosec G115 -- test fixture values are small
		PriceCents:     f.PriceCents,
		Currency:       f.Currency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (f *FlightBuilder) BuildUpdateRequest() reqdto.UpdateFlightRequest {
	return reqdto.UpdateFlightRequest(f.BuildRequest())
}
