package readstore

import (
	"context"
	"time"

	"flight-booking/internal/infra"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/pkg/pgconv"
	"flight-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type StatsQueries interface {
	CountReservationsGroupedByStatus(ctx context.Context, db postgres.DBTX, resourceID pgtype.UUID) ([]postgres.StatusCountRow, error)
	SumCompletedRevenue(ctx context.Context, db postgres.DBTX, resourceID pgtype.UUID) (int64, error)
	SumActivePassengers(ctx context.Context, db postgres.DBTX, resourceID uuid.UUID) (int64, error)
	RevenueByDay(ctx context.Context, db postgres.DBTX, since time.Time) ([]postgres.RevenueByDayRow, error)
	CountUsers(ctx context.Context, db postgres.DBTX) (int64, error)
	CountResources(ctx context.Context, db postgres.DBTX) (int64, error)
}

type StatsReadStore struct {
	queries StatsQueries
	db      postgres.DBTX
}

func NewStatsReadStore(queries StatsQueries, db postgres.DBTX) *StatsReadStore {
	return &StatsReadStore{
		queries: queries,
		db:      db,
	}
}

// CountByStatus counts reservations per status, optionally for one flight.
func (s *StatsReadStore) CountByStatus(ctx context.Context, resourceID *uuid.UUID) (map[string]int64, error) {
	rows, err := s.queries.CountReservationsGroupedByStatus(ctx, s.db, pgconv.UUIDPtrToPgtype(resourceID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count reservations by status", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (s *StatsReadStore) SumCompletedRevenue(ctx context.Context, resourceID *uuid.UUID) (int64, error) {
	total, err := s.queries.SumCompletedRevenue(ctx, s.db, pgconv.UUIDPtrToPgtype(resourceID))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum revenue", err)
	}
	return total, nil
}

func (s *StatsReadStore) SumActivePassengers(ctx context.Context, resourceID uuid.UUID) (int64, error) {
	total, err := s.queries.SumActivePassengers(ctx, s.db, resourceID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum passengers", err)
	}
	return total, nil
}

func (s *StatsReadStore) RevenueByDay(ctx context.Context, since time.Time) ([]queries.DailyRevenue, error) {
	rows, err := s.queries.RevenueByDay(ctx, s.db, since)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate revenue by day", err)
	}

	result := make([]queries.DailyRevenue, len(rows))
	for i, row := range rows {
		result[i] = queries.DailyRevenue{
			Date:         row.Day,
			RevenueCents: row.RevenueCents,
			Payments:     row.Payments,
		}
	}
	return result, nil
}

func (s *StatsReadStore) CountUsers(ctx context.Context) (int64, error) {
	count, err := s.queries.CountUsers(ctx, s.db)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count users", err)
	}
	return count, nil
}

func (s *StatsReadStore) CountFlights(ctx context.Context) (int64, error) {
	count, err := s.queries.CountResources(ctx, s.db)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count flights", err)
	}
	return count, nil
}
