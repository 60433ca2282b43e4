package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers.
var (
	// Inventory errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrInsufficientInventory = errors.New("not enough available slots")
	ErrFlightHasReservations = errors.New("flight still has live reservations")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")

	// Payment errors
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrInvalidSession      = errors.New("invalid checkout session")

	// Access errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Idempotency errors
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyMismatch    = errors.New("idempotency key reused with a different request")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
