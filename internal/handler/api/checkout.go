package api

import (
	"net/http"

	"flight-booking/internal/domain/reservation"
	reqdto "flight-booking/internal/handler/dto/request"
	resdto "flight-booking/internal/handler/dto/response"
	"flight-booking/internal/handler/httperr"
	"flight-booking/internal/handler/middleware"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const IdempotencyKeyHeader = "Idempotency-Key"

var checkoutErrors = []errorStatus{
	{commands.ErrInvalidPassengers, http.StatusBadRequest, "INVALID_PASSENGERS", "Invalid passengers"},
	{reservation.ErrInvalidPassengerCount, http.StatusBadRequest, "INVALID_PASSENGERS", "Invalid passengers"},
}

type CheckoutHandler struct {
	checkout commands.CheckoutCommands
	payments commands.PaymentCommands
}

func NewCheckoutHandler(checkout commands.CheckoutCommands, payments commands.PaymentCommands) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, payments: payments}
}

// @Summary Start checkout
// @Description Places a pending hold and opens a payment gateway session. Seats are taken only when the payment is captured.
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "UUID; repeated requests with the same key replay the first result"
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Success 200 {object} resdto.CheckoutResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Unauthorized", nil)
		return
	}

	var idempotencyKey *uuid.UUID
	if raw := c.GetHeader(IdempotencyKeyHeader); raw != "" {
		key, err := uuid.Parse(raw)
		if err != nil {
			abortBadRequest(c, err, "Invalid idempotency key format")
			return
		}
		idempotencyKey = &key
	}

	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	result, err := h.checkout.Checkout(c.Request.Context(), req, userID, idempotencyKey)
	if err != nil {
		abortWithMapped(c, err, checkoutErrors)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.Header("Location", "/api/reservations/"+result.ReservationID.String())
	c.JSON(status, resdto.FromCheckoutResult(result))
}

// @Summary Verify payment
// @Description Asks the gateway whether the checkout session is paid and confirms the reservation if so
// @Tags checkout
// @Produce json
// @Param session_id query string true "Checkout session id"
// @Success 200 {object} resdto.VerifyPaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /verify-payment [get]
func (h *CheckoutHandler) VerifyPayment(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		abortBadRequest(c, errs.ErrInvalidSession, "session_id is required")
		return
	}

	summary, err := h.payments.VerifyPayment(c.Request.Context(), sessionID)
	if err != nil {
		abortWithMapped(c, err)
		return
	}

	message := "Payment verified and reservation confirmed"
	if summary.Status != reservation.StatusConfirmed.String() {
		message = "Payment recorded; reservation was not confirmed"
	} else if summary.Replayed {
		message = "Reservation already confirmed"
	}
	c.JSON(http.StatusOK, resdto.VerifyPaymentResponse{
		Success:     true,
		Message:     message,
		Reservation: summary,
	})
}
