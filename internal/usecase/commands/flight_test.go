//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"flight-booking/internal/domain/resource"
	reqdto "flight-booking/internal/handler/dto/request"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/commands"
	"flight-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFlightCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("全席空席の便を作成する", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newUowFixture(ctrl)
		sut := commands.NewFlightCommands(f.uow, f.cache, f.clock)
		req := builder.NewFlightBuilder().BuildRequest()

		f.resources.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r *resource.Resource) (uuid.UUID, error) {
				assert.Equal(t, 180, r.MaxSlots())
				assert.Equal(t, 180, r.AvailableSlots())
				assert.Equal(t, "MAD → LIS", r.Flight().Route())
				assert.Equal(t, fixedNow, r.CreatedAt())
				return r.ID(), nil
			})

		id, err := sut.Create(ctx, req)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})

	invalid := []struct {
		name   string
		mutate func(r *reqdto.CreateFlightRequest)
		errIs  error
	}{
		{
			name:   "到着が出発より前",
			mutate: func(r *reqdto.CreateFlightRequest) { r.ArrivalTime = r.DepartureTime.Add(-1) },
			errIs:  resource.ErrInvalidSchedule,
		},
		{
			name:   "同じ空港",
			mutate: func(r *reqdto.CreateFlightRequest) { r.Destination = r.Origin },
			errIs:  resource.ErrSameAirports,
		},
		{
			name:   "不正な通貨",
			mutate: func(r *reqdto.CreateFlightRequest) { r.Currency = "EURO" },
			errIs:  resource.ErrInvalidCurrency,
		},
	}

	for _, c := range invalid {
		t.Run(c.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newUowFixture(ctrl)
			sut := commands.NewFlightCommands(f.uow, f.cache, f.clock)
			req := builder.NewFlightBuilder().BuildRequest()
			c.mutate(&req)

			_, err := sut.Create(ctx, req)
			assert.True(t, errs.Is(err, c.errIs), "got %v", err)
			assert.True(t, errs.Is(err, errs.ErrDomainValidation))
		})
	}

	t.Run("保存失敗はDBエラー", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newUowFixture(ctrl)
		sut := commands.NewFlightCommands(f.uow, f.cache, f.clock)

		f.resources.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.Nil, errors.New("disk full"))

		_, err := sut.Create(ctx, builder.NewFlightBuilder().BuildRequest())
		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed), "got %v", err)
	})
}

func TestFlightUpdate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*uowFixture, commands.FlightCommands, *builder.FlightBuilder) {
		ctrl := gomock.NewController(t)
		f := newUowFixture(ctrl)
		// 30 seats sold
		flight := builder.NewFlightBuilder().WithSeats(180, 150)
		return f, commands.NewFlightCommands(f.uow, f.cache, f.clock), flight
	}

	t.Run("増席は空席を同じ数だけ増やす", func(t *testing.T) {
		f, sut, flight := setup(t)
		req := flight.BuildUpdateRequest()
		req.MaxSlots = 200

		f.resources.EXPECT().FindByIDForUpdate(gomock.Any(), flight.ID).Return(flight.BuildDomain(), nil)
		f.inventory.EXPECT().Increment(gomock.Any(), flight.ID, 20).Return(170, nil)
		f.resources.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r *resource.Resource) error {
				assert.Equal(t, 200, r.MaxSlots())
				assert.Equal(t, fixedNow, r.UpdatedAt())
				return nil
			})
		f.cache.EXPECT().Invalidate(gomock.Any(), flight.ID)

		require.NoError(t, sut.Update(ctx, flight.ID, req))
	})

	t.Run("減席は条件付きで空席を減らす", func(t *testing.T) {
		f, sut, flight := setup(t)
		req := flight.BuildUpdateRequest()
		req.MaxSlots = 100

		f.resources.EXPECT().FindByIDForUpdate(gomock.Any(), flight.ID).Return(flight.BuildDomain(), nil)
		f.inventory.EXPECT().Decrement(gomock.Any(), flight.ID, 80).Return(nil)
		f.resources.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Invalidate(gomock.Any(), flight.ID)

		require.NoError(t, sut.Update(ctx, flight.ID, req))
	})

	t.Run("座席数が同じなら在庫に触れない", func(t *testing.T) {
		f, sut, flight := setup(t)
		req := flight.BuildUpdateRequest()
		req.Name = "Madrid to Lisbon (A321)"

		f.resources.EXPECT().FindByIDForUpdate(gomock.Any(), flight.ID).Return(flight.BuildDomain(), nil)
		f.resources.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r *resource.Resource) error {
				assert.Equal(t, "Madrid to Lisbon (A321)", r.Name())
				return nil
			})
		f.cache.EXPECT().Invalidate(gomock.Any(), flight.ID)

		require.NoError(t, sut.Update(ctx, flight.ID, req))
	})

	t.Run("販売済み席数を下回る減席は在庫不足", func(t *testing.T) {
		f, sut, flight := setup(t)
		req := flight.BuildUpdateRequest()
		req.MaxSlots = 29

		f.resources.EXPECT().FindByIDForUpdate(gomock.Any(), flight.ID).Return(flight.BuildDomain(), nil)

		err := sut.Update(ctx, flight.ID, req)
		assert.True(t, errs.Is(err, resource.ErrCapacityBelowSold), "got %v", err)
		assert.True(t, errs.Is(err, errs.ErrInsufficientInventory))
	})

	t.Run("同時予約で空席が足りなくなれば在庫不足", func(t *testing.T) {
		f, sut, flight := setup(t)
		req := flight.BuildUpdateRequest()
		req.MaxSlots = 30

		f.resources.EXPECT().FindByIDForUpdate(gomock.Any(), flight.ID).Return(flight.BuildDomain(), nil)
		f.inventory.EXPECT().Decrement(gomock.Any(), flight.ID, 150).Return(conflict("not enough available slots"))

		err := sut.Update(ctx, flight.ID, req)
		assert.True(t, errs.Is(err, errs.ErrInsufficientInventory), "got %v", err)
	})

	t.Run("不正な内容は検証エラー", func(t *testing.T) {
		f, sut, flight := setup(t)
		req := flight.BuildUpdateRequest()
		req.Destination = req.Origin

		f.resources.EXPECT().FindByIDForUpdate(gomock.Any(), flight.ID).Return(flight.BuildDomain(), nil)

		err := sut.Update(ctx, flight.ID, req)
		assert.True(t, errs.Is(err, resource.ErrSameAirports), "got %v", err)
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})

	t.Run("存在しない便", func(t *testing.T) {
		f, sut, flight := setup(t)
		f.resources.EXPECT().FindByIDForUpdate(gomock.Any(), flight.ID).Return(nil, notFound("resource"))

		err := sut.Update(ctx, flight.ID, flight.BuildUpdateRequest())
		assert.True(t, errs.Is(err, errs.ErrResourceNotFound), "got %v", err)
	})
}

func TestFlightDelete(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*uowFixture, commands.FlightCommands, *builder.FlightBuilder) {
		ctrl := gomock.NewController(t)
		f := newUowFixture(ctrl)
		return f, commands.NewFlightCommands(f.uow, f.cache, f.clock), builder.NewFlightBuilder()
	}

	t.Run("有効な予約がなければ削除する", func(t *testing.T) {
		f, sut, flight := setup(t)
		gomock.InOrder(
			f.resources.EXPECT().FindByIDForUpdate(gomock.Any(), flight.ID).Return(flight.BuildDomain(), nil),
			f.resources.EXPECT().CountLiveReservations(gomock.Any(), flight.ID).Return(0, nil),
			f.resources.EXPECT().Delete(gomock.Any(), flight.ID).Return(nil),
		)
		f.cache.EXPECT().Invalidate(gomock.Any(), flight.ID)

		require.NoError(t, sut.Delete(ctx, flight.ID))
	})

	t.Run("保留中または確定済みの予約があれば拒否", func(t *testing.T) {
		f, sut, flight := setup(t)
		f.resources.EXPECT().FindByIDForUpdate(gomock.Any(), flight.ID).Return(flight.BuildDomain(), nil)
		f.resources.EXPECT().CountLiveReservations(gomock.Any(), flight.ID).Return(2, nil)

		err := sut.Delete(ctx, flight.ID)
		assert.True(t, errs.Is(err, errs.ErrFlightHasReservations), "got %v", err)
	})

	t.Run("存在しない便", func(t *testing.T) {
		f, sut, flight := setup(t)
		f.resources.EXPECT().FindByIDForUpdate(gomock.Any(), flight.ID).Return(nil, notFound("resource"))

		err := sut.Delete(ctx, flight.ID)
		assert.True(t, errs.Is(err, errs.ErrResourceNotFound), "got %v", err)
	})

	t.Run("件数取得の失敗はDBエラー", func(t *testing.T) {
		f, sut, flight := setup(t)
		f.resources.EXPECT().FindByIDForUpdate(gomock.Any(), flight.ID).Return(flight.BuildDomain(), nil)
		f.resources.EXPECT().CountLiveReservations(gomock.Any(), flight.ID).Return(0, errors.New("connection reset"))

		err := sut.Delete(ctx, flight.ID)
		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed), "got %v", err)
	})
}
