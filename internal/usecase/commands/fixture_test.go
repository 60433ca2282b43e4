//go:build unit

package commands_test

import (
	"context"
	"time"

	"flight-booking/internal/infra"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/usecase/shared"
	sharedmock "flight-booking/tests/mock/shared"

	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2030, 5, 1, 12, 30, 0, 0, time.UTC)

// uowFixture runs every Within callback against one mocked transaction.
type uowFixture struct {
	uow           *sharedmock.MockUnitOfWork
	tx            *sharedmock.MockTx
	reads         *sharedmock.MockCommandReads
	inventory     *sharedmock.MockInventoryRepository
	resources     *sharedmock.MockResourceRepository
	reservations  *sharedmock.MockReservationRepository
	payments      *sharedmock.MockPaymentRepository
	idempotency   *sharedmock.MockIdempotencyRepository
	notifications *sharedmock.MockNotificationRepository
	users         *sharedmock.MockUserRepository
	gateway       *sharedmock.MockPaymentGateway
	cache         *sharedmock.MockFlightCacheInvalidator
	notifier      *sharedmock.MockNotifier
	clock         *clock.MockClock
}

func newUowFixture(ctrl *gomock.Controller) *uowFixture {
	f := &uowFixture{
		uow:           sharedmock.NewMockUnitOfWork(ctrl),
		tx:            sharedmock.NewMockTx(ctrl),
		reads:         sharedmock.NewMockCommandReads(ctrl),
		inventory:     sharedmock.NewMockInventoryRepository(ctrl),
		resources:     sharedmock.NewMockResourceRepository(ctrl),
		reservations:  sharedmock.NewMockReservationRepository(ctrl),
		payments:      sharedmock.NewMockPaymentRepository(ctrl),
		idempotency:   sharedmock.NewMockIdempotencyRepository(ctrl),
		notifications: sharedmock.NewMockNotificationRepository(ctrl),
		users:         sharedmock.NewMockUserRepository(ctrl),
		gateway:       sharedmock.NewMockPaymentGateway(ctrl),
		cache:         sharedmock.NewMockFlightCacheInvalidator(ctrl),
		notifier:      sharedmock.NewMockNotifier(ctrl),
		clock:         clock.NewMockClock(fixedNow),
	}

	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		}).AnyTimes()
	f.uow.EXPECT().CommandReads().Return(f.reads).AnyTimes()

	f.tx.EXPECT().Reads().Return(f.reads).AnyTimes()
	f.tx.EXPECT().Inventory().Return(f.inventory).AnyTimes()
	f.tx.EXPECT().Resources().Return(f.resources).AnyTimes()
	f.tx.EXPECT().Reservations().Return(f.reservations).AnyTimes()
	f.tx.EXPECT().Payments().Return(f.payments).AnyTimes()
	f.tx.EXPECT().Idempotency().Return(f.idempotency).AnyTimes()
	f.tx.EXPECT().Notifications().Return(f.notifications).AnyTimes()
	f.tx.EXPECT().Users().Return(f.users).AnyTimes()
	return f
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

func conflict(what string) error {
	return infra.WrapRepoErr(what, nil, infra.KindConflict)
}
