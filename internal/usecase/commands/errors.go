package commands

import (
	"flight-booking/internal/infra"
	"flight-booking/internal/pkg/errs"
)

var (
	ErrInvalidPassengers = errs.Mark(errs.New("invalid passengers"), errs.ErrDomainValidation)
	ErrInvalidFlight     = errs.Mark(errs.New("invalid flight"), errs.ErrDomainValidation)
)

// inventoryErr maps inventory repository failures onto usecase sentinels.
func inventoryErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindConflict), infra.IsKind(err, infra.KindCheckViolated):
		return errs.Mark(err, errs.ErrInsufficientInventory)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrResourceNotFound)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func resourceLookupErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrResourceNotFound)
	}
	return dbErr(err)
}

func reservationLookupErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrReservationNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func dbErr(err error) error {
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
