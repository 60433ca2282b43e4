//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"flight-booking/internal/domain/notification"
	"flight-booking/internal/domain/payment"
	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/commands"
	"flight-booking/internal/usecase/shared"
	"flight-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type confirmationScenario struct {
	f       *uowFixture
	sut     commands.PaymentCommands
	flight  *builder.FlightBuilder
	res     *reservation.Reservation
	pay     *payment.Payment
	session string
}

func newConfirmationScenario(t *testing.T, resBuilder *builder.ReservationBuilder, payStatus payment.Status) *confirmationScenario {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := newUowFixture(ctrl)
	flight := builder.NewFlightBuilder()
	res := resBuilder.ForFlight(flight.ID).BuildDomain()
	pay := builder.NewPaymentBuilder().ForReservation(res.ID()).WithStatus(payStatus).BuildDomain()
	return &confirmationScenario{
		f:       f,
		sut:     commands.NewPaymentCommands(f.uow, f.gateway, f.cache, f.notifier, checkoutSettings, f.clock),
		flight:  flight,
		res:     res,
		pay:     pay,
		session: pay.ExternalSessionID(),
	}
}

func (s *confirmationScenario) expectClaim(claimed bool) {
	s.f.payments.EXPECT().FindBySessionID(gomock.Any(), s.session).Return(s.pay, nil)
	s.f.reservations.EXPECT().FindByIDForUpdate(gomock.Any(), s.res.ID()).Return(s.res, nil)
	s.f.payments.EXPECT().Transition(gomock.Any(), s.pay, payment.StatusPending, payment.StatusFailed).Return(claimed, nil)
}

func TestConfirmBySession(t *testing.T) {
	ctx := context.Background()

	t.Run("保留中の予約を確定し在庫を減らす", func(t *testing.T) {
		s := newConfirmationScenario(t, builder.NewReservationBuilder(), payment.StatusPending)
		owner, err := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = s.res.UserID() }).BuildDomain()
		require.NoError(t, err)

		s.expectClaim(true)
		s.f.inventory.EXPECT().Decrement(gomock.Any(), s.flight.ID, 2).Return(nil)
		s.f.reservations.EXPECT().UpdateStatus(gomock.Any(), s.res).Return(nil)
		s.f.reads.EXPECT().ResourceByID(gomock.Any(), s.flight.ID).Return(s.flight.BuildDomain(), nil).Times(2)
		s.f.reads.EXPECT().UserByID(gomock.Any(), s.res.UserID()).Return(owner, nil)
		s.f.cache.EXPECT().Invalidate(gomock.Any(), s.flight.ID)
		s.f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(func(_ context.Context, event notification.Event) {
			assert.Equal(t, notification.TopicReservationConfirmation, event.Topic)
			assert.Equal(t, "test@example.com", event.RecipientEmail)
			assert.Equal(t, s.res.ID(), event.ReservationID)
			assert.Equal(t, int64(17998), event.AmountCents)
			assert.Equal(t, fixedNow, event.OccurredAt)
		})

		summary, err := s.sut.ConfirmBySession(ctx, s.session, "pi_123")
		require.NoError(t, err)

		assert.Equal(t, "CONFIRMED", summary.Status)
		assert.Equal(t, "COMPLETED", summary.PaymentStatus)
		assert.Equal(t, "Madrid to Lisbon", summary.ResourceName)
		assert.False(t, summary.Replayed)
		require.NotNil(t, s.pay.ExternalPaymentRef())
		assert.Equal(t, "pi_123", *s.pay.ExternalPaymentRef())
		assert.Equal(t, fixedNow, *s.res.ConfirmedAt())
	})

	t.Run("期限切れで取り消された予約も遅延決済で確定する", func(t *testing.T) {
		s := newConfirmationScenario(t, builder.NewReservationBuilder().AsExpired(), payment.StatusFailed)
		owner, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)

		s.expectClaim(true)
		s.f.inventory.EXPECT().Decrement(gomock.Any(), s.flight.ID, 2).Return(nil)
		s.f.reservations.EXPECT().UpdateStatus(gomock.Any(), s.res).Return(nil)
		s.f.reads.EXPECT().ResourceByID(gomock.Any(), s.flight.ID).Return(s.flight.BuildDomain(), nil).AnyTimes()
		s.f.reads.EXPECT().UserByID(gomock.Any(), s.res.UserID()).Return(owner, nil)
		s.f.cache.EXPECT().Invalidate(gomock.Any(), s.flight.ID)
		s.f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

		summary, err := s.sut.ConfirmBySession(ctx, s.session, "")
		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", summary.Status)
		assert.Nil(t, s.pay.ExternalPaymentRef())
	})

	t.Run("空席がなければ確定せずエラーを返す", func(t *testing.T) {
		s := newConfirmationScenario(t, builder.NewReservationBuilder(), payment.StatusPending)

		s.expectClaim(true)
		s.f.inventory.EXPECT().Decrement(gomock.Any(), s.flight.ID, 2).Return(conflict("not enough seats"))

		_, err := s.sut.ConfirmBySession(ctx, s.session, "pi_123")
		assert.True(t, errs.Is(err, errs.ErrInsufficientInventory), "got %v", err)
	})

	t.Run("管理者が確定済みの予約は在庫も通知も動かさない", func(t *testing.T) {
		s := newConfirmationScenario(t, builder.NewReservationBuilder().AsConfirmed(), payment.StatusPending)

		s.expectClaim(true)
		s.f.reads.EXPECT().ResourceByID(gomock.Any(), s.flight.ID).Return(s.flight.BuildDomain(), nil)

		summary, err := s.sut.ConfirmBySession(ctx, s.session, "pi_123")
		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", summary.Status)
		assert.Equal(t, "COMPLETED", summary.PaymentStatus)
	})

	t.Run("管理者が取り消した予約への決済は返金待ちにする", func(t *testing.T) {
		s := newConfirmationScenario(t, builder.NewReservationBuilder().AsCancelled("overbooked"), payment.StatusPending)

		s.expectClaim(true)
		s.f.payments.EXPECT().Transition(gomock.Any(), s.pay, payment.StatusCompleted).Return(true, nil)
		s.f.reads.EXPECT().ResourceByID(gomock.Any(), s.flight.ID).Return(s.flight.BuildDomain(), nil)

		summary, err := s.sut.ConfirmBySession(ctx, s.session, "pi_123")
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", summary.Status)
		assert.Equal(t, "REFUND_INITIATED", summary.PaymentStatus)
	})

	t.Run("処理済みの決済は現在の状態を再生する", func(t *testing.T) {
		s := newConfirmationScenario(t, builder.NewReservationBuilder().AsConfirmed(), payment.StatusCompleted)

		s.f.payments.EXPECT().FindBySessionID(gomock.Any(), s.session).Return(s.pay, nil)
		s.f.reservations.EXPECT().FindByID(gomock.Any(), s.res.ID()).Return(s.res, nil)
		s.f.payments.EXPECT().FindByReservationID(gomock.Any(), s.res.ID()).Return(s.pay, nil)
		s.f.reads.EXPECT().ResourceByID(gomock.Any(), s.flight.ID).Return(s.flight.BuildDomain(), nil)

		summary, err := s.sut.ConfirmBySession(ctx, s.session, "pi_123")
		require.NoError(t, err)
		assert.True(t, summary.Replayed)
		assert.Equal(t, "CONFIRMED", summary.Status)
	})

	t.Run("並行する配信に負けた場合は再生に回る", func(t *testing.T) {
		s := newConfirmationScenario(t, builder.NewReservationBuilder(), payment.StatusPending)
		confirmed := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.ID = s.res.ID()
			b.ResourceID = s.flight.ID
		}).AsConfirmed().BuildDomain()
		stored := builder.NewPaymentBuilder().ForReservation(s.res.ID()).WithStatus(payment.StatusCompleted).BuildDomain()

		s.expectClaim(false)
		s.f.reservations.EXPECT().FindByID(gomock.Any(), s.res.ID()).Return(confirmed, nil)
		s.f.payments.EXPECT().FindByReservationID(gomock.Any(), s.res.ID()).Return(stored, nil)
		s.f.reads.EXPECT().ResourceByID(gomock.Any(), s.flight.ID).Return(s.flight.BuildDomain(), nil)

		summary, err := s.sut.ConfirmBySession(ctx, s.session, "pi_123")
		require.NoError(t, err)
		assert.True(t, summary.Replayed)
		assert.Equal(t, "CONFIRMED", summary.Status)
	})

	t.Run("未知のセッションはPaymentNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newUowFixture(ctrl)
		sut := commands.NewPaymentCommands(f.uow, f.gateway, f.cache, f.notifier, checkoutSettings, f.clock)

		f.payments.EXPECT().FindBySessionID(gomock.Any(), "cs_unknown").Return(nil, notFound("payment"))

		_, err := sut.ConfirmBySession(ctx, "cs_unknown", "")
		assert.True(t, errs.Is(err, errs.ErrPaymentNotFound), "got %v", err)
	})
}

func TestVerifyPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("支払済みならセッションを確定する", func(t *testing.T) {
		s := newConfirmationScenario(t, builder.NewReservationBuilder().AsConfirmed(), payment.StatusCompleted)

		s.f.gateway.EXPECT().RetrieveSession(gomock.Any(), s.session).Return(&shared.GatewaySession{
			ID:         s.session,
			Paid:       true,
			PaymentRef: "pi_123",
		}, nil)
		s.f.payments.EXPECT().FindBySessionID(gomock.Any(), s.session).Return(s.pay, nil)
		s.f.reservations.EXPECT().FindByID(gomock.Any(), s.res.ID()).Return(s.res, nil)
		s.f.payments.EXPECT().FindByReservationID(gomock.Any(), s.res.ID()).Return(s.pay, nil)
		s.f.reads.EXPECT().ResourceByID(gomock.Any(), s.flight.ID).Return(s.flight.BuildDomain(), nil)

		summary, err := s.sut.VerifyPayment(ctx, s.session)
		require.NoError(t, err)
		assert.Equal(t, s.res.ID(), summary.ReservationID)
	})

	cases := []struct {
		name    string
		session string
		setup   func(f *uowFixture)
		errIs   error
	}{
		{
			name:    "セッションIDが空",
			session: "",
			setup:   func(*uowFixture) {},
			errIs:   errs.ErrInvalidSession,
		},
		{
			name:    "未払い",
			session: "cs_open",
			setup: func(f *uowFixture) {
				f.gateway.EXPECT().RetrieveSession(gomock.Any(), "cs_open").Return(&shared.GatewaySession{ID: "cs_open"}, nil)
			},
			errIs: errs.ErrPaymentNotCompleted,
		},
		{
			name:    "ゲートウェイ障害",
			session: "cs_down",
			setup: func(f *uowFixture) {
				f.gateway.EXPECT().RetrieveSession(gomock.Any(), "cs_down").Return(nil, errors.New("timeout"))
			},
			errIs: errs.ErrGatewayUnavailable,
		},
		{
			name:    "ゲートウェイが知らないセッション",
			session: "cs_bogus",
			setup: func(f *uowFixture) {
				f.gateway.EXPECT().RetrieveSession(gomock.Any(), "cs_bogus").Return(nil, errs.Mark(errors.New("no such session"), errs.ErrInvalidSession))
			},
			errIs: errs.ErrInvalidSession,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newUowFixture(ctrl)
			sut := commands.NewPaymentCommands(f.uow, f.gateway, f.cache, f.notifier, checkoutSettings, f.clock)
			c.setup(f)

			_, err := sut.VerifyPayment(ctx, c.session)
			assert.True(t, errs.Is(err, c.errIs), "got %v", err)
		})
	}
}
