//go:build unit

package repository_test

import (
	"context"
	"testing"

	"flight-booking/internal/infra"
	"flight-booking/internal/infra/postgres"
	"flight-booking/internal/infra/repository"
	"flight-booking/tests/common/builder"
	repositorymock "flight-booking/tests/mock/repository"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestResourceUpdate(t *testing.T) {
	flight := builder.NewFlightBuilder().WithSeats(200, 170)

	t.Run("空席数以外を保存する", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockResourceWriteQueries(ctrl)
		q.EXPECT().UpdateResource(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ postgres.DBTX, arg postgres.UpdateResourceParams) (int64, error) {
				assert.Equal(t, flight.ID, arg.ID)
				assert.Equal(t, int32(200), arg.MaxSlots)
				assert.Equal(t, flight.PriceCents, arg.PriceCents)
				assert.Contains(t, string(arg.Metadata), `"flightNumber":"IB3106"`)
				return 1, nil
			})

		err := repository.NewResourceRepository(q, nil).Update(context.Background(), flight.BuildDomain())
		require.NoError(t, err)
	})

	t.Run("対象行なしはNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockResourceWriteQueries(ctrl)
		q.EXPECT().UpdateResource(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		err := repository.NewResourceRepository(q, nil).Update(context.Background(), flight.BuildDomain())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestResourceFindByIDForUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := repositorymock.NewMockResourceWriteQueries(ctrl)
	id := builder.NewFlightBuilder().ID
	q.EXPECT().GetResourceForUpdate(gomock.Any(), gomock.Any(), id).Return(postgres.Resources{}, pgx.ErrNoRows)

	_, err := repository.NewResourceRepository(q, nil).FindByIDForUpdate(context.Background(), id)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestResourceCountLiveReservations(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := repositorymock.NewMockResourceWriteQueries(ctrl)
	id := builder.NewFlightBuilder().ID
	q.EXPECT().CountLiveReservationsByResource(gomock.Any(), gomock.Any(), id).Return(int64(4), nil)

	n, err := repository.NewResourceRepository(q, nil).CountLiveReservations(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestResourceDelete(t *testing.T) {
	id := builder.NewFlightBuilder().ID

	t.Run("取消済み予約を消してから便を削除する", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockResourceWriteQueries(ctrl)
		gomock.InOrder(
			q.EXPECT().DeleteCancelledReservationsByResource(gomock.Any(), gomock.Any(), id).Return(int64(3), nil),
			q.EXPECT().DeleteResource(gomock.Any(), gomock.Any(), id).Return(int64(1), nil),
		)

		require.NoError(t, repository.NewResourceRepository(q, nil).Delete(context.Background(), id))
	})

	t.Run("対象行なしはNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockResourceWriteQueries(ctrl)
		q.EXPECT().DeleteCancelledReservationsByResource(gomock.Any(), gomock.Any(), id).Return(int64(0), nil)
		q.EXPECT().DeleteResource(gomock.Any(), gomock.Any(), id).Return(int64(0), nil)

		err := repository.NewResourceRepository(q, nil).Delete(context.Background(), id)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("予約削除の失敗で便は消さない", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockResourceWriteQueries(ctrl)
		q.EXPECT().DeleteCancelledReservationsByResource(gomock.Any(), gomock.Any(), id).Return(int64(0), assert.AnError)

		err := repository.NewResourceRepository(q, nil).Delete(context.Background(), id)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
