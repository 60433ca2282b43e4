//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"flight-booking/internal/domain/user"
	reqdto "flight-booking/internal/handler/dto/request"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/pkg/jwt"
	"flight-booking/internal/pkg/password"
	"flight-booking/internal/usecase/commands"
	"flight-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testPassword  = "correct-horse-battery"
	testJWTSecret = "unit-test-secret-key-32-bytes-long!!"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := password.HashPassword(testPassword)
	require.NoError(t, err)

	newSut := func(t *testing.T) (commands.AuthCommands, *uowFixture, *jwt.Service) {
		ctrl := gomock.NewController(t)
		f := newUowFixture(ctrl)
		jwtSvc := jwt.NewService(testJWTSecret, time.Hour, "flight-booking", f.clock)
		return commands.NewAuthCommands(f.uow, jwtSvc, f.clock), f, jwtSvc
	}
	loginFor := func(b *builder.UserBuilder) reqdto.LoginRequest {
		return reqdto.LoginRequest{Email: b.Email, Password: testPassword}
	}

	t.Run("正しい資格情報でトークンを発行する", func(t *testing.T) {
		sut, f, jwtSvc := newSut(t)
		b := builder.NewUserBuilder().WithPasswordHash(hash)
		u, err := b.BuildDomain()
		require.NoError(t, err)

		f.users.EXPECT().FindByEmail(gomock.Any(), u.Email()).Return(u, nil)
		f.users.EXPECT().UpdateLastLogin(gomock.Any(), u.ID(), fixedNow).Return(nil)

		result, err := sut.Login(ctx, loginFor(b))
		require.NoError(t, err)

		assert.Equal(t, u.ID(), result.User.ID)
		assert.Equal(t, "customer", result.User.Role)
		assert.Equal(t, fixedNow.Add(time.Hour), result.ExpiresAt)

		claims, err := jwtSvc.ValidateToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, u.ID(), claims.UserID)
		assert.Equal(t, "test@example.com", claims.Email)
	})

	t.Run("最終ログインの更新失敗ではログインを止めない", func(t *testing.T) {
		sut, f, _ := newSut(t)
		b := builder.NewUserBuilder().WithPasswordHash(hash).AsAdmin()
		u, err := b.BuildDomain()
		require.NoError(t, err)

		f.users.EXPECT().FindByEmail(gomock.Any(), u.Email()).Return(u, nil)
		f.users.EXPECT().UpdateLastLogin(gomock.Any(), u.ID(), fixedNow).Return(errors.New("lock timeout"))

		result, err := sut.Login(ctx, loginFor(b))
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin.String(), result.User.Role)
	})

	failures := []struct {
		name  string
		req   func(b *builder.UserBuilder) reqdto.LoginRequest
		setup func(f *uowFixture, u *user.User)
		errIs error
	}{
		{
			name: "パスワードが違う",
			req: func(b *builder.UserBuilder) reqdto.LoginRequest {
				return reqdto.LoginRequest{Email: b.Email, Password: "wrong-password"}
			},
			setup: func(f *uowFixture, u *user.User) {
				f.users.EXPECT().FindByEmail(gomock.Any(), u.Email()).Return(u, nil)
			},
			errIs: commands.ErrInvalidCredentials,
		},
		{
			name: "存在しないユーザー",
			req:  loginFor,
			setup: func(f *uowFixture, u *user.User) {
				f.users.EXPECT().FindByEmail(gomock.Any(), u.Email()).Return(nil, notFound("user"))
			},
			errIs: commands.ErrInvalidCredentials,
		},
		{
			name: "短すぎるパスワード",
			req: func(b *builder.UserBuilder) reqdto.LoginRequest {
				return reqdto.LoginRequest{Email: b.Email, Password: "short"}
			},
			setup: func(*uowFixture, *user.User) {},
			errIs: commands.ErrInvalidCredentials,
		},
		{
			name: "DB障害",
			req:  loginFor,
			setup: func(f *uowFixture, u *user.User) {
				f.users.EXPECT().FindByEmail(gomock.Any(), u.Email()).Return(nil, errors.New("connection refused"))
			},
			errIs: commands.ErrAuthenticationFailed,
		},
	}

	for _, c := range failures {
		t.Run(c.name, func(t *testing.T) {
			sut, f, _ := newSut(t)
			b := builder.NewUserBuilder().WithPasswordHash(hash)
			u, err := b.BuildDomain()
			require.NoError(t, err)
			c.setup(f, u)

			_, err = sut.Login(ctx, c.req(b))
			assert.True(t, errs.Is(err, c.errIs), "got %v", err)
		})
	}

	t.Run("無効化されたユーザーはForbidden", func(t *testing.T) {
		sut, f, _ := newSut(t)
		b := builder.NewUserBuilder().WithPasswordHash(hash).AsInactive()
		u, err := b.BuildDomain()
		require.NoError(t, err)

		f.users.EXPECT().FindByEmail(gomock.Any(), u.Email()).Return(u, nil)

		_, err = sut.Login(ctx, loginFor(b))
		assert.True(t, errs.Is(err, commands.ErrUserInactive), "got %v", err)
		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})
}
