package queries

import (
	"context"
	"time"

	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/infra"

	"github.com/google/uuid"
)

//go:generate mockgen -source=admin.go -destination=../../../tests/mock/queries/admin_mock.go -package=queriesmock

const (
	recentReservationsLimit = 10
	revenueWindow           = 30 * 24 * time.Hour
)

type AdminReservationReadStore interface {
	List(ctx context.Context, filter ReservationFilter, limit, offset int32) ([]*ReservationView, error)
	Count(ctx context.Context, filter ReservationFilter) (int64, error)
}

type StatsReadStore interface {
	CountByStatus(ctx context.Context, resourceID *uuid.UUID) (map[string]int64, error)
	SumCompletedRevenue(ctx context.Context, resourceID *uuid.UUID) (int64, error)
	SumActivePassengers(ctx context.Context, resourceID uuid.UUID) (int64, error)
	RevenueByDay(ctx context.Context, since time.Time) ([]DailyRevenue, error)
	CountUsers(ctx context.Context) (int64, error)
	CountFlights(ctx context.Context) (int64, error)
}

type AdminQueries interface {
	ListReservations(ctx context.Context, filter ReservationFilter, page, limit int) ([]*ReservationView, PageInfo, error)
	Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error)
	FlightManifest(ctx context.Context, resourceID uuid.UUID, filter ReservationFilter, page, limit int) (*FlightManifest, error)
}

type adminQueriesImpl struct {
	reservations AdminReservationReadStore
	stats        StatsReadStore
	flights      FlightReadStore
}

func NewAdminQueries(reservations AdminReservationReadStore, stats StatsReadStore, flights FlightReadStore) AdminQueries {
	return &adminQueriesImpl{
		reservations: reservations,
		stats:        stats,
		flights:      flights,
	}
}

func (q *adminQueriesImpl) ListReservations(ctx context.Context, filter ReservationFilter, page, limit int) ([]*ReservationView, PageInfo, error) {
	if err := validateStatusFilter(filter.Status); err != nil {
		return nil, PageInfo{}, err
	}
	page = ValidatePage(page)
	limit = ValidateLimit(limit)

	total, err := q.reservations.Count(ctx, filter)
	if err != nil {
		return nil, PageInfo{}, err
	}

	// #nosec G115 -- limit is clamped by ValidateLimit
	rows, err := q.reservations.List(ctx, filter, int32(limit), pageOffset(page, limit))
	if err != nil {
		return nil, PageInfo{}, err
	}
	return rows, NewPageInfo(page, limit, total), nil
}

func (q *adminQueriesImpl) Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error) {
	counts, err := q.stats.CountByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}
	revenue, err := q.stats.SumCompletedRevenue(ctx, nil)
	if err != nil {
		return nil, err
	}
	users, err := q.stats.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	flights, err := q.stats.CountFlights(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := q.reservations.List(ctx, ReservationFilter{}, recentReservationsLimit, 0)
	if err != nil {
		return nil, err
	}
	daily, err := q.stats.RevenueByDay(ctx, now.Add(-revenueWindow))
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalReservations:     sumCounts(counts),
		ConfirmedReservations: counts[reservation.StatusConfirmed.String()],
		PendingReservations:   counts[reservation.StatusPendingPayment.String()],
		CancelledReservations: counts[reservation.StatusCancelled.String()],
		TotalRevenueCents:     revenue,
		TotalUsers:            users,
		TotalFlights:          flights,
		RecentReservations:    recent,
		RevenueByDay:          daily,
	}, nil
}

func (q *adminQueriesImpl) FlightManifest(ctx context.Context, resourceID uuid.UUID, filter ReservationFilter, page, limit int) (*FlightManifest, error) {
	if err := validateStatusFilter(filter.Status); err != nil {
		return nil, err
	}

	flight, err := q.flights.FindByID(ctx, resourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}

	filter.ResourceID = &resourceID
	rows, pageInfo, err := q.ListReservations(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	counts, err := q.stats.CountByStatus(ctx, &resourceID)
	if err != nil {
		return nil, err
	}
	passengers, err := q.stats.SumActivePassengers(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	revenue, err := q.stats.SumCompletedRevenue(ctx, &resourceID)
	if err != nil {
		return nil, err
	}

	return &FlightManifest{
		Flight: flight,
		Statistics: ManifestStatistics{
			TotalReservations:     sumCounts(counts),
			ConfirmedReservations: counts[reservation.StatusConfirmed.String()],
			PendingReservations:   counts[reservation.StatusPendingPayment.String()],
			CancelledReservations: counts[reservation.StatusCancelled.String()],
			TotalPassengers:       passengers,
			OccupancyRate:         occupancyRate(flight.MaxSlots, flight.AvailableSlots),
			RevenueCents:          revenue,
		},
		Reservations: rows,
		Pagination:   pageInfo,
	}, nil
}

func validateStatusFilter(status string) error {
	if status == "" {
		return nil
	}
	if _, err := reservation.ParseStatus(status); err != nil {
		return ErrInvalidStatusFilter
	}
	return nil
}

func sumCounts(counts map[string]int64) int64 {
	var total int64
	for _, c := range counts {
		total += c
	}
	return total
}

// occupancyRate is the sold share of seats in percent, rounded to two decimals.
func occupancyRate(maxSlots, available int32) float64 {
	if maxSlots <= 0 {
		return 0
	}
	sold := float64(maxSlots-available) / float64(maxSlots) * 100
	return float64(int64(sold*100+0.5)) / 100
}
