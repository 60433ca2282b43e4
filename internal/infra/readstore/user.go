package readstore

import (
	"context"

	"github.com/google/uuid"

	"flight-booking/internal/infra"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/pkg/pgconv"
	"flight-booking/internal/usecase/queries"
)

type UserReadQueries interface {
	FindUserByID(ctx context.Context, db postgres.DBTX, id uuid.UUID) (postgres.Users, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      postgres.DBTX
}

func NewUserReadStore(queries UserReadQueries, db postgres.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row, err := r.queries.FindUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return toAuthorizedUserView(row), nil
}

func toAuthorizedUserView(row postgres.Users) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        row.ID,
		Email:     row.Email,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Role:      row.Role,
		IsActive:  row.IsActive,
	}
}
