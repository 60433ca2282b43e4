//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"flight-booking/internal/domain/payment"
	"flight-booking/internal/domain/reservation"
	reqdto "flight-booking/internal/handler/dto/request"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/commands"
	"flight-booking/internal/usecase/shared"
	"flight-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var checkoutSettings = commands.CheckoutSettings{
	PaymentWindow:  2 * time.Hour,
	IdempotencyTTL: 24 * time.Hour,
	GatewayTimeout: 5 * time.Second,
	SuccessURL:     "https://app.example.com/success?session_id={CHECKOUT_SESSION_ID}",
	CancelURL:      "https://app.example.com/cancel",
}

func requestHash(t *testing.T, req reqdto.CheckoutRequest) string {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	flightBuilder := builder.NewFlightBuilder()
	customer, err := builder.NewUserBuilder().BuildDomain()
	require.NoError(t, err)

	newRequest := func() reqdto.CheckoutRequest {
		return builder.NewReservationBuilder().ForFlight(flightBuilder.ID).BuildCheckoutRequest()
	}
	session := &shared.CheckoutSession{ID: "cs_test_abc", URL: "https://checkout.example.com/cs_test_abc"}

	t.Run("保留を作成し在庫には触れない", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newUowFixture(ctrl)
		sut := commands.NewCheckoutCommands(f.uow, f.gateway, checkoutSettings, f.clock)
		req := newRequest()

		var created *reservation.Reservation
		f.reads.EXPECT().ResourceByID(gomock.Any(), flightBuilder.ID).Return(flightBuilder.BuildDomain(), nil)
		f.reads.EXPECT().UserByID(gomock.Any(), customer.ID()).Return(customer, nil)
		f.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r *reservation.Reservation) (uuid.UUID, error) {
				created = r
				return r.ID(), nil
			})
		f.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, got shared.CheckoutSessionRequest) (*shared.CheckoutSession, error) {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				want := shared.CheckoutSessionRequest{
					ReservationID: created.ID(),
					ResourceID:    flightBuilder.ID,
					UserID:        customer.ID(),
					CustomerEmail: "test@example.com",
					ProductName:   "Madrid to Lisbon",
					Description:   "IB3106 MAD → LIS",
					UnitAmount:    8999,
					Quantity:      2,
					Currency:      "EUR",
					SuccessURL:    checkoutSettings.SuccessURL,
					CancelURL:     checkoutSettings.CancelURL,
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("session request mismatch (-want +got):\n%s", diff)
				}
				return session, nil
			})
		f.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *payment.Payment) (uuid.UUID, error) {
				assert.Equal(t, created.ID(), p.ReservationID())
				assert.Equal(t, session.ID, p.ExternalSessionID())
				assert.Equal(t, int64(17998), p.Amount().Cents())
				assert.Equal(t, payment.StatusPending, p.Status())
				return p.ID(), nil
			})

		result, err := sut.Checkout(ctx, req, customer.ID(), nil)
		require.NoError(t, err)

		assert.Equal(t, session.URL, result.CheckoutURL)
		assert.Equal(t, session.ID, result.SessionID)
		assert.Equal(t, created.ID(), result.ReservationID)
		assert.False(t, result.IsReplayed)
		assert.Equal(t, reservation.StatusPendingPayment, created.Status())
		assert.Equal(t, fixedNow.Add(checkoutSettings.PaymentWindow), created.ExpiresAt())
		assert.Equal(t, 2, created.Manifest().Len())
	})

	t.Run("乗客リストが人数と一致しない場合は検証エラー", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newUowFixture(ctrl)
		sut := commands.NewCheckoutCommands(f.uow, f.gateway, checkoutSettings, f.clock)
		req := newRequest()
		req.PassengerCount = 3

		_, err := sut.Checkout(ctx, req, customer.ID(), nil)
		assert.True(t, errs.Is(err, commands.ErrInvalidPassengers), "got %v", err)
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})

	t.Run("便が存在しない場合はNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newUowFixture(ctrl)
		sut := commands.NewCheckoutCommands(f.uow, f.gateway, checkoutSettings, f.clock)

		f.reads.EXPECT().ResourceByID(gomock.Any(), flightBuilder.ID).Return(nil, notFound("resource"))

		_, err := sut.Checkout(ctx, newRequest(), customer.ID(), nil)
		assert.True(t, errs.Is(err, errs.ErrResourceNotFound), "got %v", err)
	})

	t.Run("空席不足は事前チェックで拒否", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newUowFixture(ctrl)
		sut := commands.NewCheckoutCommands(f.uow, f.gateway, checkoutSettings, f.clock)

		soldOut := builder.NewFlightBuilder().With(func(b *builder.FlightBuilder) { b.ID = flightBuilder.ID }).WithSeats(180, 1)
		f.reads.EXPECT().ResourceByID(gomock.Any(), flightBuilder.ID).Return(soldOut.BuildDomain(), nil)

		_, err := sut.Checkout(ctx, newRequest(), customer.ID(), nil)
		assert.True(t, errs.Is(err, errs.ErrInsufficientInventory), "got %v", err)
	})

	t.Run("ゲートウェイ障害時は保留を残して503相当のエラー", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newUowFixture(ctrl)
		sut := commands.NewCheckoutCommands(f.uow, f.gateway, checkoutSettings, f.clock)

		f.reads.EXPECT().ResourceByID(gomock.Any(), flightBuilder.ID).Return(flightBuilder.BuildDomain(), nil)
		f.reads.EXPECT().UserByID(gomock.Any(), customer.ID()).Return(customer, nil)
		f.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
		f.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := sut.Checkout(ctx, newRequest(), customer.ID(), nil)
		assert.True(t, errs.Is(err, errs.ErrGatewayUnavailable), "got %v", err)
	})

	t.Run("冪等キー", func(t *testing.T) {
		key := uuid.New()

		t.Run("初回は結果を保存する", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newUowFixture(ctrl)
			sut := commands.NewCheckoutCommands(f.uow, f.gateway, checkoutSettings, f.clock)
			req := newRequest()

			f.idempotency.EXPECT().TryInsert(gomock.Any(), key, customer.ID(), "POST /api/checkout", requestHash(t, req), fixedNow.Add(checkoutSettings.IdempotencyTTL)).Return(true, nil)
			f.reads.EXPECT().ResourceByID(gomock.Any(), flightBuilder.ID).Return(flightBuilder.BuildDomain(), nil)
			f.reads.EXPECT().UserByID(gomock.Any(), customer.ID()).Return(customer, nil)
			f.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
			f.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(session, nil)
			f.payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
			f.idempotency.EXPECT().Complete(gomock.Any(), key, customer.ID(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, _, _, reservationID uuid.UUID, body []byte) error {
					var stored commands.CheckoutResult
					require.NoError(t, json.Unmarshal(body, &stored))
					assert.Equal(t, reservationID, stored.ReservationID)
					assert.Equal(t, session.URL, stored.CheckoutURL)
					return nil
				})

			result, err := sut.Checkout(ctx, req, customer.ID(), &key)
			require.NoError(t, err)
			assert.False(t, result.IsReplayed)
		})

		t.Run("完了済みキーは保存済みの結果を再生する", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newUowFixture(ctrl)
			sut := commands.NewCheckoutCommands(f.uow, f.gateway, checkoutSettings, f.clock)
			req := newRequest()

			stored := commands.CheckoutResult{CheckoutURL: session.URL, ReservationID: uuid.New(), SessionID: session.ID}
			body, err := json.Marshal(stored)
			require.NoError(t, err)

			f.idempotency.EXPECT().TryInsert(gomock.Any(), key, customer.ID(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			f.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, customer.ID()).Return(&shared.IdempotencyRecord{
				Key:          key,
				UserID:       customer.ID(),
				Status:       shared.IdempotencyStatusCompleted,
				RequestHash:  requestHash(t, req),
				ResponseBody: body,
			}, nil)

			result, err := sut.Checkout(ctx, req, customer.ID(), &key)
			require.NoError(t, err)
			assert.True(t, result.IsReplayed)
			assert.Equal(t, stored.ReservationID, result.ReservationID)
		})

		t.Run("異なるリクエストでの再利用はMismatch", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newUowFixture(ctrl)
			sut := commands.NewCheckoutCommands(f.uow, f.gateway, checkoutSettings, f.clock)

			f.idempotency.EXPECT().TryInsert(gomock.Any(), key, customer.ID(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			f.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, customer.ID()).Return(&shared.IdempotencyRecord{
				Status:      shared.IdempotencyStatusCompleted,
				RequestHash: "another-request",
			}, nil)

			_, err := sut.Checkout(ctx, newRequest(), customer.ID(), &key)
			assert.True(t, errs.Is(err, errs.ErrIdempotencyMismatch), "got %v", err)
		})

		t.Run("処理中のキーはInProgress", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newUowFixture(ctrl)
			sut := commands.NewCheckoutCommands(f.uow, f.gateway, checkoutSettings, f.clock)
			req := newRequest()

			f.idempotency.EXPECT().TryInsert(gomock.Any(), key, customer.ID(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			f.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, customer.ID()).Return(&shared.IdempotencyRecord{
				Status:      shared.IdempotencyStatusProcessing,
				RequestHash: requestHash(t, req),
			}, nil)

			_, err := sut.Checkout(ctx, req, customer.ID(), &key)
			assert.True(t, errs.Is(err, errs.ErrIdempotencyInProgress), "got %v", err)
		})

		t.Run("失敗時はキーを解放する", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newUowFixture(ctrl)
			sut := commands.NewCheckoutCommands(f.uow, f.gateway, checkoutSettings, f.clock)

			f.idempotency.EXPECT().TryInsert(gomock.Any(), key, customer.ID(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			f.reads.EXPECT().ResourceByID(gomock.Any(), flightBuilder.ID).Return(nil, notFound("resource"))
			f.idempotency.EXPECT().Release(gomock.Any(), key, customer.ID()).Return(nil)

			_, err := sut.Checkout(ctx, newRequest(), customer.ID(), &key)
			assert.True(t, errs.Is(err, errs.ErrResourceNotFound), "got %v", err)
		})
	})
}
