package commands

import (
	"context"
	"log/slog"
	"time"

	"flight-booking/internal/domain/auth"
	"flight-booking/internal/domain/user"
	reqdto "flight-booking/internal/handler/dto/request"
	"flight-booking/internal/infra"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/pkg/jwt"
	"flight-booking/internal/pkg/password"
	"flight-booking/internal/usecase/queries"
	"flight-booking/internal/usecase/shared"
)

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/auth_mock.go -package=commandsmock

var (
	ErrInvalidCredentials   = errs.Mark(auth.ErrInvalidCredentials, errs.ErrUnauthorized)
	ErrUserInactive         = errs.Mark(errs.New("user inactive"), errs.ErrForbidden)
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	User        *queries.AuthorizedUserView
	AccessToken string
	ExpiresAt   time.Time
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	var u *user.User
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := a.validateUser(ctx, tx, credentials)
		if err != nil {
			return err
		}
		u = found

		if updateErr := tx.Users().UpdateLastLogin(ctx, found.ID(), a.clock.Now()); updateErr != nil {
			// login still succeeds
			slog.WarnContext(ctx, "failed to update last login", "user_id", found.ID(), "error", updateErr.Error())
		}
		return nil
	})
	if err != nil {
		if errs.Is(err, ErrInvalidCredentials) || errs.Is(err, ErrUserInactive) {
			slog.InfoContext(ctx, "login rejected", "credentials", credentials, "reason", err.Error())
		}
		return nil, err
	}

	token, expiresAt, err := a.jwtService.GenerateToken(u.ID(), u.Email().Value(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		User: &queries.AuthorizedUserView{
			ID:        u.ID(),
			Email:     u.Email().Value(),
			FirstName: u.FirstName(),
			LastName:  u.LastName(),
			Role:      u.Role().String(),
			IsActive:  u.IsActive(),
		},
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, tx shared.Tx, credentials auth.Credentials) (*user.User, error) {
	u, err := tx.Users().FindByEmail(ctx, credentials.Email())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// same error and bcrypt cost as a wrong password
			password.CompareDummy(credentials.Password().Value())
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(u.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
