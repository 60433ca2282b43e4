//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"flight-booking/internal/domain/reservation"
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

func TestReservationExpirePending(t *testing.T) {
	now := time.Date(2030, 5, 1, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "still pending", affected: 1, want: true},
		{name: "confirmed concurrently", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			q := repositorymock.NewMockReservationWriteQueries(ctrl)
			res := builder.NewReservationBuilder().BuildDomain()
			require.NoError(t, res.Expire(now))

			q.EXPECT().ExpirePendingReservation(gomock.Any(), gomock.Any(), postgres.ExpirePendingReservationParams{
				ID:     res.ID(),
				Now:    now,
				Reason: reservation.ReasonPaymentExpired,
			}).Return(tt.affected, nil)

			got, err := repository.NewReservationRepository(q, nil).ExpirePending(context.Background(), res)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReservationUpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", affected: 1},
		{name: "row vanished", affected: 0, wantKind: infra.KindNotFound},
		{name: "database error", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			q := repositorymock.NewMockReservationWriteQueries(ctrl)
			res := builder.NewReservationBuilder().AsConfirmed().BuildDomain()

			q.EXPECT().UpdateReservationStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.affected, tt.mockErr)

			err := repository.NewReservationRepository(q, nil).UpdateStatus(context.Background(), res)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
		})
	}
}

func TestReservationFindByIDForUpdateNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := repositorymock.NewMockReservationWriteQueries(ctrl)
	res := builder.NewReservationBuilder().BuildDomain()

	q.EXPECT().GetReservationForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(postgres.Reservations{}, pgx.ErrNoRows)

	_, err := repository.NewReservationRepository(q, nil).FindByIDForUpdate(context.Background(), res.ID())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}
