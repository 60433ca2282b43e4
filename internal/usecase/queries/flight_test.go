//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"flight-booking/internal/infra"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/queries"
	"flight-booking/tests/common/builder"
	queriesmock "flight-booking/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

func TestFlightQueriesGetByID(t *testing.T) {
	ctx := context.Background()
	view := builder.NewFlightBuilder().BuildView()

	cases := []struct {
		name    string
		setup   func(store *queriesmock.MockFlightReadStore, cache *queriesmock.MockFlightCache)
		want    *queries.FlightView
		wantErr error
	}{
		{
			name: "キャッシュヒット時はDBを読まない",
			setup: func(_ *queriesmock.MockFlightReadStore, cache *queriesmock.MockFlightCache) {
				cache.EXPECT().Get(gomock.Any(), view.ID).Return(view, true, nil)
			},
			want: view,
		},
		{
			name: "キャッシュミス時はDBから読んでキャッシュする",
			setup: func(store *queriesmock.MockFlightReadStore, cache *queriesmock.MockFlightCache) {
				cache.EXPECT().Get(gomock.Any(), view.ID).Return(nil, false, nil)
				store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
				cache.EXPECT().Set(gomock.Any(), view).Return(nil)
			},
			want: view,
		},
		{
			name: "キャッシュ障害はミス扱い",
			setup: func(store *queriesmock.MockFlightReadStore, cache *queriesmock.MockFlightCache) {
				cache.EXPECT().Get(gomock.Any(), view.ID).Return(nil, false, errors.New("redis: connection refused"))
				store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
				cache.EXPECT().Set(gomock.Any(), view).Return(errors.New("redis: connection refused"))
			},
			want: view,
		},
		{
			name: "存在しない便",
			setup: func(store *queriesmock.MockFlightReadStore, cache *queriesmock.MockFlightCache) {
				cache.EXPECT().Get(gomock.Any(), view.ID).Return(nil, false, nil)
				store.EXPECT().FindByID(gomock.Any(), view.ID).Return(nil, notFound("flight"))
			},
			wantErr: errs.ErrResourceNotFound,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockFlightReadStore(ctrl)
			cache := queriesmock.NewMockFlightCache(ctrl)
			c.setup(store, cache)

			got, err := queries.NewFlightQueries(store, cache).GetByID(ctx, view.ID)
			if c.wantErr != nil {
				assert.True(t, errs.Is(err, c.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestFlightQueriesList(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name       string
		page       int
		limit      int
		wantLimit  int32
		wantOffset int32
		wantInfo   queries.PageInfo
	}{
		{name: "既定値", page: 0, limit: 0, wantLimit: 20, wantOffset: 0, wantInfo: queries.PageInfo{Page: 1, Limit: 20, Total: 45, TotalPages: 3}},
		{name: "3ページ目", page: 3, limit: 10, wantLimit: 10, wantOffset: 20, wantInfo: queries.PageInfo{Page: 3, Limit: 10, Total: 45, TotalPages: 5}},
		{name: "上限で丸める", page: 1, limit: 500, wantLimit: 100, wantOffset: 0, wantInfo: queries.PageInfo{Page: 1, Limit: 100, Total: 45, TotalPages: 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockFlightReadStore(ctrl)
			cache := queriesmock.NewMockFlightCache(ctrl)

			flights := []*queries.FlightView{builder.NewFlightBuilder().BuildView()}
			store.EXPECT().Count(gomock.Any()).Return(int64(45), nil)
			store.EXPECT().List(gomock.Any(), c.wantLimit, c.wantOffset).Return(flights, nil)

			got, info, err := queries.NewFlightQueries(store, cache).List(ctx, c.page, c.limit)
			require.NoError(t, err)
			assert.Equal(t, flights, got)
			assert.Equal(t, c.wantInfo, info)
		})
	}
}

func TestPageInfoOfEmptyResult(t *testing.T) {
	info := queries.NewPageInfo(1, 20, 0)
	assert.Equal(t, 0, info.TotalPages)
}
