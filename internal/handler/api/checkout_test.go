//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"flight-booking/internal/domain/payment"
	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/handler/api"
	resdto "flight-booking/internal/handler/dto/response"
	"flight-booking/internal/handler/middleware"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/commands"
	"flight-booking/tests/common/builder"
	"flight-booking/tests/common/httptest"
	"flight-booking/tests/common/testutil"
	commandsmock "flight-booking/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCheckout *commandsmock.MockCheckoutCommands
	mockPayments *commandsmock.MockPaymentCommands
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCheckout = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	handler := api.NewCheckoutHandler(s.mockCheckout, s.mockPayments)
	auth := middleware.NewAuthMiddleware(newTokenValidator(s.mockCtrl))

	s.router.POST("/checkout", auth.RequireAuth(), handler.Checkout)
	s.router.GET("/verify-payment", handler.VerifyPayment)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func (s *CheckoutHandlerTestSuite) TestCheckout() {
	url := "/checkout"
	reqBody := builder.NewReservationBuilder().BuildCheckoutRequest()
	result := &commands.CheckoutResult{
		CheckoutURL:   "https://checkout.example.com/cs_test_123",
		ReservationID: uuid.New(),
		SessionID:     "cs_test_123",
	}

	s.Run("success: returns 201 Created with the checkout URL", func() {
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), reqBody, customerPrincipal.UserID, (*uuid.UUID)(nil)).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, customerToken)

		var response resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(result.CheckoutURL, response.CheckoutURL)
		s.Equal(result.ReservationID, response.ReservationID)
		s.Equal(result.SessionID, response.SessionID)
		s.Equal("/api/reservations/"+result.ReservationID.String(), rec.Header().Get("Location"))
	})

	s.Run("success: forwards the idempotency key and returns 200 on replay", func() {
		key := uuid.New()
		replayed := *result
		replayed.IsReplayed = true
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), reqBody, customerPrincipal.UserID, &key).
			Return(&replayed, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, customerToken,
			map[string]string{api.IdempotencyKeyHeader: key.String()})

		var response resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(result.SessionID, response.SessionID)
	})

	s.Run("error: 400 Bad Request for a malformed idempotency key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, customerToken,
			map[string]string{api.IdempotencyKeyHeader: "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid idempotency key format")
	})

	s.Run("error: 401 Unauthorized without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing resourceId", mutate: testutil.Field("resourceId", nil)},
			{name: "malformed resourceId", mutate: testutil.Field("resourceId", "abc")},
			{name: "zero passengers", mutate: testutil.Field("passengerCount", 0)},
			{name: "too many passengers", mutate: testutil.Field("passengerCount", 10)},
			{name: "passenger without document", mutate: testutil.Field("passengers", []map[string]any{{"firstName": "Ada", "lastName": "Lovelace"}})},
			{name: "document number too short", mutate: testutil.Field("passengers.0.documentNumber", "AB1")},
			{name: "passenger without last name", mutate: testutil.Field("passengers.0.lastName", nil)},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), customerToken)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
			expectedMsg    string
		}{
			{"flight not found", errs.Mark(errs.New("missing"), errs.ErrResourceNotFound), http.StatusNotFound, "FLIGHT_NOT_FOUND", "Flight not found"},
			{"sold out", errs.ErrInsufficientInventory, http.StatusConflict, "INSUFFICIENT_INVENTORY", "Not enough seats available"},
			{"invalid passengers", errs.Wrap(commands.ErrInvalidPassengers, "manifest"), http.StatusBadRequest, "INVALID_PASSENGERS", "Invalid passengers"},
			{"gateway down", errs.Wrap(errs.ErrGatewayUnavailable, "create session"), http.StatusServiceUnavailable, "GATEWAY_UNAVAILABLE", "Payment gateway unavailable"},
			{"idempotency in progress", errs.ErrIdempotencyInProgress, http.StatusConflict, "IDEMPOTENCY_IN_PROGRESS", "still being processed"},
			{"idempotency mismatch", errs.ErrIdempotencyMismatch, http.StatusConflict, "IDEMPOTENCY_MISMATCH", "different request"},
			{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL", "Internal error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCheckout.EXPECT().Checkout(gomock.Any(), reqBody, customerPrincipal.UserID, (*uuid.UUID)(nil)).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, customerToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				httptest.AssertErrorCode(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})
}

func (s *CheckoutHandlerTestSuite) TestVerifyPayment() {
	summary := &commands.ConfirmationSummary{
		ReservationID:  uuid.New(),
		ResourceID:     uuid.New(),
		ResourceName:   "Madrid to Lisbon",
		PassengerCount: 2,
		AmountCents:    17998,
		Currency:       "EUR",
		Status:         reservation.StatusConfirmed.String(),
		PaymentStatus:  payment.StatusCompleted.String(),
	}

	s.Run("success: confirms the reservation", func() {
		s.mockPayments.EXPECT().VerifyPayment(gomock.Any(), "cs_test_123").Return(summary, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/verify-payment?session_id=cs_test_123", nil, "")

		var response resdto.VerifyPaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Success)
		s.Equal("Payment verified and reservation confirmed", response.Message)
		s.Equal(summary.ReservationID, response.Reservation.ReservationID)
	})

	s.Run("success: reports an already confirmed reservation", func() {
		replayed := *summary
		replayed.Replayed = true
		s.mockPayments.EXPECT().VerifyPayment(gomock.Any(), "cs_test_123").Return(&replayed, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/verify-payment?session_id=cs_test_123", nil, "")

		var response resdto.VerifyPaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Reservation already confirmed", response.Message)
		s.True(response.Reservation.Replayed)
	})

	s.Run("success: payment recorded on a cancelled reservation", func() {
		late := *summary
		late.Status = reservation.StatusCancelled.String()
		late.PaymentStatus = payment.StatusRefundInitiated.String()
		s.mockPayments.EXPECT().VerifyPayment(gomock.Any(), "cs_test_123").Return(&late, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/verify-payment?session_id=cs_test_123", nil, "")

		var response resdto.VerifyPaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Payment recorded; reservation was not confirmed", response.Message)
	})

	s.Run("error: 400 Bad Request without session_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/verify-payment", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "session_id is required")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{"unpaid session", errs.ErrPaymentNotCompleted, http.StatusBadRequest, "Payment not completed"},
			{"unknown session", errs.Wrap(errs.ErrInvalidSession, "lookup"), http.StatusBadRequest, "Invalid checkout session"},
			{"payment missing", errs.ErrPaymentNotFound, http.StatusNotFound, "Payment not found"},
			{"sold out at capture", errs.ErrInsufficientInventory, http.StatusConflict, "Not enough seats available"},
			{"gateway down", errs.ErrGatewayUnavailable, http.StatusServiceUnavailable, "Payment gateway unavailable"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockPayments.EXPECT().VerifyPayment(gomock.Any(), "cs_test_123").Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/verify-payment?session_id=cs_test_123", nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
