//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"flight-booking/internal/domain/user"
	"flight-booking/internal/infra"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/infra/repository"
	"flight-booking/tests/common/builder"
	repositorymock "flight-booking/tests/mock/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserFindByEmail(t *testing.T) {
	email, err := user.NewEmail("ana@example.com")
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockUserQueries(ctrl)

		row := builder.NewUserBuilder().WithEmail("ana@example.com").AsAdmin().BuildInfra()
		lastLogin := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
		row.LastLogin = pgtype.Timestamptz{Time: lastLogin, Valid: true}
		q.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any(), "ana@example.com").Return(row, nil)

		got, err := repository.NewUserRepository(q, nil).FindByEmail(context.Background(), email)
		require.NoError(t, err)
		assert.Equal(t, row.ID, got.ID())
		assert.True(t, got.IsAdmin())
		require.NotNil(t, got.LastLogin())
		assert.Equal(t, lastLogin, *got.LastLogin())
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockUserQueries(ctrl)
		q.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any(), gomock.Any()).Return(postgres.Users{}, pgx.ErrNoRows)

		_, err := repository.NewUserRepository(q, nil).FindByEmail(context.Background(), email)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("stored role is unknown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockUserQueries(ctrl)
		row := builder.NewUserBuilder().WithRole("pilot").BuildInfra()
		q.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any(), gomock.Any()).Return(row, nil)

		_, err := repository.NewUserRepository(q, nil).FindByEmail(context.Background(), email)
		require.Error(t, err)
		assert.False(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestUserUpdateLastLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := repositorymock.NewMockUserQueries(ctrl)

	id := builder.NewUserBuilder().BuildInfra().ID
	at := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	q.EXPECT().UpdateUserLastLogin(gomock.Any(), gomock.Any(), id, at).Return(assert.AnError)

	err := repository.NewUserRepository(q, nil).UpdateLastLogin(context.Background(), id, at)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}
