package response

import (
	"time"

	"flight-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type FlightResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	FlightNumber   string    `json:"flightNumber"`
	Airline        string    `json:"airline"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	MaxSlots       int32     `json:"maxSlots"`
	AvailableSlots int32     `json:"availableSlots"`
	PriceCents     int64     `json:"priceCents"`
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type FlightListResponse struct {
	Flights    []*FlightResponse  `json:"flights"`
	Pagination PaginationResponse `json:"pagination"`
}

type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func FromFlightView(v *queries.FlightView) *FlightResponse {
	if v == nil {
		return nil
	}
	var out FlightResponse
	_ = copier.Copy(&out, v)
	return &out
}

func FromFlightViews(views []*queries.FlightView, page queries.PageInfo) *FlightListResponse {
	out := make([]*FlightResponse, len(views))
	for i, v := range views {
		out[i] = FromFlightView(v)
	}
	return &FlightListResponse{Flights: out, Pagination: FromPageInfo(page)}
}

func FromPageInfo(p queries.PageInfo) PaginationResponse {
	return PaginationResponse{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}
