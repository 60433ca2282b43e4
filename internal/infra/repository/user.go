package repository

import (
	"context"
	"time"

	"flight-booking/internal/domain/user"
	"flight-booking/internal/infra"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

//go:generate mockgen -source=user.go -destination=../../../tests/mock/repository/user_mock.go -package=repositorymock

type UserQueries interface {
	FindUserByEmail(ctx context.Context, db postgres.DBTX, email string) (postgres.Users, error)
	FindUserByID(ctx context.Context, db postgres.DBTX, id uuid.UUID) (postgres.Users, error)
	UpdateUserLastLogin(ctx context.Context, db postgres.DBTX, id uuid.UUID, at time.Time) error
}

type UserRepository struct {
	queries UserQueries
	db      postgres.DBTX
}

func NewUserRepository(queries UserQueries, db postgres.DBTX) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      db,
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	row, err := r.queries.FindUserByEmail(ctx, r.db, email.Value())
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return toUserDomain(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row, err := r.queries.FindUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return toUserDomain(row)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if err := r.queries.UpdateUserLastLogin(ctx, r.db, userID, at); err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	return nil
}

func toUserDomain(row postgres.Users) (*user.User, error) {
	email, err := user.NewEmail(row.Email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user has invalid email", err)
	}
	role, err := user.NewRole(row.Role)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user has invalid role", err)
	}
	return user.ReconstructUser(
		row.ID,
		email,
		row.PasswordHash,
		row.FirstName,
		row.LastName,
		role,
		pgconv.TimePtrFromPgtype(row.LastLogin),
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
