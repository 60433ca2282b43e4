package response

import (
	"flight-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type DailyRevenueResponse struct {
	Date         string `json:"date"`
	RevenueCents int64  `json:"revenueCents"`
	Payments     int64  `json:"payments"`
}

type DashboardResponse struct {
	TotalReservations     int64                  `json:"totalReservations"`
	ConfirmedReservations int64                  `json:"confirmedReservations"`
	PendingReservations   int64                  `json:"pendingReservations"`
	CancelledReservations int64                  `json:"cancelledReservations"`
	TotalRevenueCents     int64                  `json:"totalRevenueCents"`
	TotalUsers            int64                  `json:"totalUsers"`
	TotalFlights          int64                  `json:"totalFlights"`
	RecentReservations    []*ReservationResponse `json:"recentReservations"`
	RevenueByDay          []DailyRevenueResponse `json:"revenueByDay"`
}

type ManifestStatisticsResponse struct {
	TotalReservations     int64   `json:"totalReservations"`
	ConfirmedReservations int64   `json:"confirmedReservations"`
	PendingReservations   int64   `json:"pendingReservations"`
	CancelledReservations int64   `json:"cancelledReservations"`
	TotalPassengers       int64   `json:"totalPassengers"`
	OccupancyRate         float64 `json:"occupancyRate"`
	RevenueCents          int64   `json:"revenueCents"`
}

type FlightManifestResponse struct {
	Flight       *FlightResponse            `json:"flight"`
	Statistics   ManifestStatisticsResponse `json:"statistics"`
	Reservations []*ReservationResponse     `json:"reservations"`
	Pagination   PaginationResponse         `json:"pagination"`
}

type AdminActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func FromDashboardStats(s *queries.DashboardStats) *DashboardResponse {
	var out DashboardResponse
	_ = copier.Copy(&out, s)
	out.RecentReservations = FromReservationViews(s.RecentReservations)
	if out.RevenueByDay == nil {
		out.RevenueByDay = []DailyRevenueResponse{}
	}
	return &out
}

func FromFlightManifest(m *queries.FlightManifest) *FlightManifestResponse {
	var stats ManifestStatisticsResponse
	_ = copier.Copy(&stats, &m.Statistics)
	return &FlightManifestResponse{
		Flight:       FromFlightView(m.Flight),
		Statistics:   stats,
		Reservations: FromReservationViews(m.Reservations),
		Pagination:   FromPageInfo(m.Pagination),
	}
}
