//go:build unit

package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"flight-booking/internal/infra/cache"
	"flight-booking/internal/usecase/queries"

	"github.com/go-redis/redismock/v9"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleView() *queries.FlightView {
	return &queries.FlightView{
		ID:             uuid.New(),
		Name:           "Paris - Tokyo",
		FlightNumber:   "AF276",
		Airline:        "Air France",
		Origin:         "CDG",
		Destination:    "HND",
		DepartureTime:  time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		ArrivalTime:    time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC),
		MaxSlots:       180,
		AvailableSlots: 42,
		PriceCents:     89900,
		Currency:       "EUR",
	}
}

func TestFlightCache(t *testing.T) {
	ctx := context.Background()
	ttl := 30 * time.Second

	t.Run("キャッシュヒット", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := cache.NewFlightCache(db, ttl)
		view := sampleView()
		raw, err := json.Marshal(view)
		require.NoError(t, err)

		mock.ExpectGet(cache.FlightKey(view.ID)).SetVal(string(raw))

		got, ok, err := c.Get(ctx, view.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		if diff := cmp.Diff(view, got); diff != "" {
			t.Errorf("FlightView mismatch (-want +got):\n%s", diff)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("キャッシュミス", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := cache.NewFlightCache(db, ttl)
		id := uuid.New()

		mock.ExpectGet(cache.FlightKey(id)).RedisNil()

		got, ok, err := c.Get(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Redis障害はエラーを返す", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := cache.NewFlightCache(db, ttl)
		id := uuid.New()

		mock.ExpectGet(cache.FlightKey(id)).SetErr(errors.New("connection refused"))

		_, ok, err := c.Get(ctx, id)
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("壊れたエントリはミス扱い", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := cache.NewFlightCache(db, ttl)
		id := uuid.New()

		mock.ExpectGet(cache.FlightKey(id)).SetVal("{not json")

		_, ok, err := c.Get(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("TTL付きで保存", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := cache.NewFlightCache(db, ttl)
		view := sampleView()
		raw, err := json.Marshal(view)
		require.NoError(t, err)

		mock.ExpectSet(cache.FlightKey(view.ID), raw, ttl).SetVal("OK")

		require.NoError(t, c.Set(ctx, view))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("在庫変更後に削除", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := cache.NewFlightCache(db, ttl)
		id := uuid.New()

		mock.ExpectDel(cache.FlightKey(id)).SetVal(1)

		c.Invalidate(ctx, id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("削除失敗でもパニックしない", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := cache.NewFlightCache(db, ttl)
		id := uuid.New()

		mock.ExpectDel(cache.FlightKey(id)).SetErr(errors.New("timeout"))

		assert.NotPanics(t, func() { c.Invalidate(ctx, id) })
	})
}
