package api

import (
	"net/http"

	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/handler/httperr"
	"flight-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type errorStatus struct {
	target  error
	status  int
	code    string
	message string
}

// commonErrors applies after a handler's own table.
var commonErrors = []errorStatus{
	{errs.ErrResourceNotFound, http.StatusNotFound, "FLIGHT_NOT_FOUND", "Flight not found"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found"},
	{errs.ErrPaymentNotFound, http.StatusNotFound, "PAYMENT_NOT_FOUND", "Payment not found"},
	{errs.ErrInsufficientInventory, http.StatusConflict, "INSUFFICIENT_INVENTORY", "Not enough seats available"},
	{reservation.ErrAlreadyConfirmed, http.StatusBadRequest, "ALREADY_CONFIRMED", "Reservation already confirmed"},
	{reservation.ErrAlreadyCancelled, http.StatusBadRequest, "ALREADY_CANCELLED", "Reservation already cancelled"},
	{errs.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized"},
	{errs.ErrForbidden, http.StatusForbidden, "FORBIDDEN", "Forbidden"},
	{errs.ErrGatewayUnavailable, http.StatusServiceUnavailable, "GATEWAY_UNAVAILABLE", "Payment gateway unavailable"},
	{errs.ErrInvalidSignature, http.StatusBadRequest, "INVALID_SIGNATURE", "Invalid signature"},
	{errs.ErrInvalidSession, http.StatusBadRequest, "INVALID_SESSION", "Invalid checkout session"},
	{errs.ErrPaymentNotCompleted, http.StatusBadRequest, "PAYMENT_NOT_COMPLETED", "Payment not completed"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "IDEMPOTENCY_IN_PROGRESS", "Request with this idempotency key is still being processed"},
	{errs.ErrIdempotencyMismatch, http.StatusConflict, "IDEMPOTENCY_MISMATCH", "Idempotency key reused with a different request"},
	{errs.ErrDomainValidation, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request"},
}

// abortWithMapped writes the first matching status from tables, then
// commonErrors, falling back to 500.
func abortWithMapped(c *gin.Context, err error, tables ...[]errorStatus) {
	for _, table := range append(tables, commonErrors) {
		for _, e := range table {
			if errs.Is(err, e.target) {
				httperr.AbortWithCode(c, e.status, e.code, err, e.message)
				return
			}
		}
	}
	httperr.AbortWithCode(c, http.StatusInternalServerError, "INTERNAL", err, "Internal error")
}

func abortBadRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
}
