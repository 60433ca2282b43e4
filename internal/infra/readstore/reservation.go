package readstore

import (
	"context"
	"strings"
	"time"

	"flight-booking/internal/domain/notification"
	"flight-booking/internal/infra"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/infra/repository/converter"
	"flight-booking/internal/pkg/pgconv"
	"flight-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationViewQueries interface {
	GetReservationDetail(ctx context.Context, db postgres.DBTX, id uuid.UUID) (postgres.ReservationDetailRow, error)
	GetReservationDetailBySessionID(ctx context.Context, db postgres.DBTX, sessionID string) (postgres.ReservationDetailRow, error)
	ListReservationDetailsByUserFirstPage(ctx context.Context, db postgres.DBTX, arg postgres.ListReservationDetailsByUserFirstPageParams) ([]postgres.ReservationDetailRow, error)
	ListReservationDetailsByUserKeyset(ctx context.Context, db postgres.DBTX, arg postgres.ListReservationDetailsByUserKeysetParams) ([]postgres.ReservationDetailRow, error)
	ListReservationDetails(ctx context.Context, db postgres.DBTX, arg postgres.ListReservationDetailsParams) ([]postgres.ReservationDetailRow, error)
	CountReservations(ctx context.Context, db postgres.DBTX, arg postgres.CountReservationsParams) (int64, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      postgres.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db postgres.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationDetail(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return toReservationView(row)
}

func (r *ReservationReadStore) FindBySessionID(ctx context.Context, sessionID string) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationDetailBySessionID(ctx, r.db, sessionID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by session", err)
	}

	return toReservationView(row)
}

func (r *ReservationReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	params := postgres.ListReservationDetailsByUserFirstPageParams{
		UserID: userID,
		Limit:  limit,
	}

	rows, err := r.queries.ListReservationDetailsByUserFirstPage(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations first page", err)
	}

	return toReservationViews(rows)
}

func (r *ReservationReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	params := postgres.ListReservationDetailsByUserKeysetParams{
		UserID:    userID,
		CreatedAt: lastCreatedAt,
		ID:        lastID,
		Limit:     limit,
	}

	rows, err := r.queries.ListReservationDetailsByUserKeyset(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations keyset", err)
	}

	return toReservationViews(rows)
}

func (r *ReservationReadStore) List(ctx context.Context, filter queries.ReservationFilter, limit, offset int32) ([]*queries.ReservationView, error) {
	status, resourceID, search := filterParams(filter)
	params := postgres.ListReservationDetailsParams{
		Status:     status,
		ResourceID: resourceID,
		Search:     search,
		Limit:      limit,
		Offset:     offset,
	}

	rows, err := r.queries.ListReservationDetails(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	return toReservationViews(rows)
}

func (r *ReservationReadStore) Count(ctx context.Context, filter queries.ReservationFilter) (int64, error) {
	status, resourceID, search := filterParams(filter)
	params := postgres.CountReservationsParams{
		Status:     status,
		ResourceID: resourceID,
		Search:     search,
	}

	count, err := r.queries.CountReservations(ctx, r.db, params)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count reservations", err)
	}
	return count, nil
}

func filterParams(filter queries.ReservationFilter) (pgtype.Text, pgtype.UUID, pgtype.Text) {
	var status, search pgtype.Text
	if filter.Status != "" {
		status = pgtype.Text{String: filter.Status, Valid: true}
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		search = pgtype.Text{String: s, Valid: true}
	}
	return status, pgconv.UUIDPtrToPgtype(filter.ResourceID), search
}

func toReservationViews(rows []postgres.ReservationDetailRow) ([]*queries.ReservationView, error) {
	result := make([]*queries.ReservationView, 0, len(rows))
	for _, row := range rows {
		view, err := toReservationView(row)
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	return result, nil
}

func toReservationView(row postgres.ReservationDetailRow) (*queries.ReservationView, error) {
	meta, err := converter.DecodeFlightMetadata(row.ResourceMetadata)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode flight metadata", err)
	}
	records, err := converter.DecodePassengers(row.PassengerData)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode passenger data", err)
	}

	passengers := make([]queries.PassengerView, len(records))
	for i, p := range records {
		passengers[i] = queries.PassengerView{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			DocumentNumber: p.DocumentNumber,
		}
	}

	view := &queries.ReservationView{
		ID:                 row.ID,
		Reference:          notification.Reference(row.ID),
		UserID:             row.UserID,
		UserEmail:          row.UserEmail,
		UserName:           strings.TrimSpace(row.UserFirstName + " " + row.UserLastName),
		ResourceID:         row.ResourceID,
		FlightName:         row.ResourceName,
		FlightNumber:       meta.FlightNumber,
		Airline:            meta.Airline,
		Origin:             meta.Origin,
		Destination:        meta.Destination,
		DepartureTime:      meta.DepartureTime,
		ArrivalTime:        meta.ArrivalTime,
		Currency:           row.ResourceCurrency,
		PassengerCount:     row.PassengerCount,
		Passengers:         passengers,
		Status:             row.Status,
		ExpiresAt:          row.ExpiresAt,
		ConfirmedAt:        pgconv.TimePtrFromPgtype(row.ConfirmedAt),
		CancelledAt:        pgconv.TimePtrFromPgtype(row.CancelledAt),
		CancellationReason: pgconv.StringPtrFromPgtype(row.CancellationReason),
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}

	if row.PaymentID.Valid {
		view.Payment = &queries.PaymentSummary{
			ID:          uuid.UUID(row.PaymentID.Bytes),
			SessionID:   row.PaymentSessionID.String,
			Status:      row.PaymentStatus.String,
			AmountCents: row.PaymentAmountCents.Int64,
			PaidAt:      pgconv.TimePtrFromPgtype(row.PaymentPaidAt),
		}
	}

	return view, nil
}
