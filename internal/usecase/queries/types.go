package queries

import (
	"time"

	"github.com/google/uuid"
)

// FlightView represents read-optimized flight data
type FlightView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	FlightNumber   string    `json:"flight_number"`
	Airline        string    `json:"airline"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	MaxSlots       int32     `json:"max_slots"`
	AvailableSlots int32     `json:"available_slots"`
	PriceCents     int64     `json:"price_cents"`
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PassengerView struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DocumentNumber string `json:"document_number"`
}

type PaymentSummary struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   string     `json:"session_id"`
	Status      string     `json:"status"`
	AmountCents int64      `json:"amount_cents"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

// ReservationView is a reservation with its flight, owner and payment.
type ReservationView struct {
	ID                 uuid.UUID       `json:"id"`
	Reference          string          `json:"reference"`
	UserID             uuid.UUID       `json:"user_id"`
	UserEmail          string          `json:"user_email"`
	UserName           string          `json:"user_name"`
	ResourceID         uuid.UUID       `json:"resource_id"`
	FlightName         string          `json:"flight_name"`
	FlightNumber       string          `json:"flight_number"`
	Airline            string          `json:"airline"`
	Origin             string          `json:"origin"`
	Destination        string          `json:"destination"`
	DepartureTime      time.Time       `json:"departure_time"`
	ArrivalTime        time.Time       `json:"arrival_time"`
	Currency           string          `json:"currency"`
	PassengerCount     int32           `json:"passenger_count"`
	Passengers         []PassengerView `json:"passengers"`
	Status             string          `json:"status"`
	ExpiresAt          time.Time       `json:"expires_at"`
	ConfirmedAt        *time.Time      `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	CancellationReason *string         `json:"cancellation_reason,omitempty"`
	Payment            *PaymentSummary `json:"payment,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
}

type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPageInfo(page, limit int, total int64) PageInfo {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PageInfo{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

type DailyRevenue struct {
	Date         string `json:"date"`
	RevenueCents int64  `json:"revenue_cents"`
	Payments     int64  `json:"payments"`
}

type DashboardStats struct {
	TotalReservations     int64              `json:"total_reservations"`
	ConfirmedReservations int64              `json:"confirmed_reservations"`
	PendingReservations   int64              `json:"pending_reservations"`
	CancelledReservations int64              `json:"cancelled_reservations"`
	TotalRevenueCents     int64              `json:"total_revenue_cents"`
	TotalUsers            int64              `json:"total_users"`
	TotalFlights          int64              `json:"total_flights"`
	RecentReservations    []*ReservationView `json:"recent_reservations"`
	RevenueByDay          []DailyRevenue     `json:"revenue_by_day"`
}

type ManifestStatistics struct {
	TotalReservations     int64   `json:"total_reservations"`
	ConfirmedReservations int64   `json:"confirmed_reservations"`
	PendingReservations   int64   `json:"pending_reservations"`
	CancelledReservations int64   `json:"cancelled_reservations"`
	TotalPassengers       int64   `json:"total_passengers"`
	OccupancyRate         float64 `json:"occupancy_rate"`
	RevenueCents          int64   `json:"revenue_cents"`
}

type FlightManifest struct {
	Flight       *FlightView        `json:"flight"`
	Statistics   ManifestStatistics `json:"statistics"`
	Reservations []*ReservationView `json:"reservations"`
	Pagination   PageInfo           `json:"pagination"`
}

// ReservationFilter narrows admin listings. Zero values disable a filter.
type ReservationFilter struct {
	Status     string
	ResourceID *uuid.UUID
	Search     string
}
