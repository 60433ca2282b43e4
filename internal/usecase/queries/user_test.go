//go:build unit

package queries_test

import (
	"context"
	"testing"

	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/queries"
	"flight-booking/tests/common/builder"
	queriesmock "flight-booking/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("有効なユーザーを返す", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUserReadStore(ctrl)
		view := builder.NewUserBuilder().BuildReadModel()
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		got, err := queries.NewUserQueries(store).GetCurrentUser(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("無効化されたユーザー", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUserReadStore(ctrl)
		view := builder.NewUserBuilder().AsInactive().BuildReadModel()
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		_, err := queries.NewUserQueries(store).GetCurrentUser(ctx, view.ID)
		assert.True(t, errs.Is(err, queries.ErrUserInactive), "got %v", err)
	})

	t.Run("存在しないユーザー", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUserReadStore(ctrl)
		view := builder.NewUserBuilder().BuildReadModel()
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(nil, notFound("user"))

		_, err := queries.NewUserQueries(store).GetCurrentUser(ctx, view.ID)
		assert.True(t, errs.Is(err, queries.ErrUserNotFound), "got %v", err)
	})
}
