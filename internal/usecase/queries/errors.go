package queries

import (
	"flight-booking/internal/pkg/errs"
)

var (
	ErrFlightNotFound      = errs.Mark(errs.New("flight not found"), errs.ErrResourceNotFound)
	ErrReservationNotFound = errs.ErrReservationNotFound
	ErrReservationAccess   = errs.Mark(errs.New("reservation access denied"), errs.ErrForbidden)
	ErrInvalidCursor       = errs.New("invalid cursor")
	ErrInvalidStatusFilter = errs.New("invalid status filter")
)
