package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyConfirmed = errors.New("reservation already confirmed")
	ErrAlreadyCancelled = errors.New("reservation already cancelled")
	ErrNotConfirmable   = errors.New("reservation cannot be confirmed by payment")
	ErrNotExpirable     = errors.New("reservation is not an expired pending payment")
	ErrInvalidStatus    = errors.New("invalid reservation status")
)

type Reservation struct {
	id                 uuid.UUID
	userID             uuid.UUID
	resourceID         uuid.UUID
	passengerCount     int
	manifest           Manifest
	status             Status
	expiresAt          time.Time
	confirmedAt        *time.Time
	cancelledAt        *time.Time
	cancellationReason *string
	createdAt          time.Time
	updatedAt          time.Time
}

// NewReservation opens a pending-payment hold. It does not touch inventory.
func NewReservation(userID, resourceID uuid.UUID, manifest Manifest, passengerCount int, now time.Time, paymentWindow time.Duration) (*Reservation, error) {
	if passengerCount < 1 || passengerCount > MaxPassengersPerReservation {
		return nil, ErrInvalidPassengerCount
	}
	if manifest.Len() > 0 && manifest.Len() != passengerCount {
		return nil, ErrManifestCountMismatch
	}
	return &Reservation{
		id:             uuid.New(),
		userID:         userID,
		resourceID:     resourceID,
		passengerCount: passengerCount,
		manifest:       manifest,
		status:         StatusPendingPayment,
		expiresAt:      now.Add(paymentWindow),
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructReservation(
	id, userID, resourceID uuid.UUID,
	passengerCount int,
	manifest Manifest,
	status Status,
	expiresAt time.Time,
	confirmedAt, cancelledAt *time.Time,
	cancellationReason *string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:                 id,
		userID:             userID,
		resourceID:         resourceID,
		passengerCount:     passengerCount,
		manifest:           manifest,
		status:             status,
		expiresAt:          expiresAt,
		confirmedAt:        confirmedAt,
		cancelledAt:        cancelledAt,
		cancellationReason: cancellationReason,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// CanConfirmByPayment reports whether a captured payment may confirm this
// reservation: a pending hold, or one that lapsed only because its payment
// window expired. Admin cancellations are final for the automatic path.
func (r *Reservation) CanConfirmByPayment() bool {
	switch r.status {
	case StatusPendingPayment:
		return true
	case StatusCancelled:
		return r.WasExpired()
	default:
		return false
	}
}

// ConfirmByPayment is the transition used by payment confirmation.
func (r *Reservation) ConfirmByPayment(now time.Time) error {
	if r.status == StatusConfirmed {
		return ErrAlreadyConfirmed
	}
	if !r.CanConfirmByPayment() {
		return ErrNotConfirmable
	}
	r.markConfirmed(now)
	return nil
}

// Confirm is the administrative override. Any non-confirmed reservation may
// be confirmed, including a cancelled one.
func (r *Reservation) Confirm(now time.Time) error {
	if r.status == StatusConfirmed {
		return ErrAlreadyConfirmed
	}
	r.markConfirmed(now)
	return nil
}

// Cancel returns the status held before cancellation so callers can decide
// whether seats must be released.
//
// confirmedAt is left as is when a confirmed reservation is cancelled, so a
// cancelled row may still carry the time it was first confirmed. Only the
// automatic path (pending to confirmed, pending to expired) keeps
// "confirmedAt set iff CONFIRMED".
func (r *Reservation) Cancel(now time.Time, reason string) (Status, error) {
	if r.status == StatusCancelled {
		return r.status, ErrAlreadyCancelled
	}
	prev := r.status
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = ReasonAdminCancelled
	}
	r.status = StatusCancelled
	r.cancelledAt = &now
	r.cancellationReason = &reason
	r.updatedAt = now
	return prev, nil
}

// Expire cancels a pending reservation whose payment window has passed.
func (r *Reservation) Expire(now time.Time) error {
	if !r.IsExpired(now) {
		return ErrNotExpirable
	}
	return r.Lapse(now)
}

// Lapse cancels a pending reservation because its checkout can no longer be
// paid, regardless of the payment window.
func (r *Reservation) Lapse(now time.Time) error {
	if r.status != StatusPendingPayment {
		return ErrNotExpirable
	}
	reason := ReasonPaymentExpired
	r.status = StatusCancelled
	r.cancelledAt = &now
	r.cancellationReason = &reason
	r.updatedAt = now
	return nil
}

// markConfirmed keeps an existing confirmedAt: it is set once and survives a
// cancel and re-confirm. Cancellation details of an earlier expiry or cancel
// are cleared.
func (r *Reservation) markConfirmed(now time.Time) {
	r.status = StatusConfirmed
	if r.confirmedAt == nil {
		r.confirmedAt = &now
	}
	r.cancelledAt = nil
	r.cancellationReason = nil
	r.updatedAt = now
}

func (r *Reservation) IsExpired(now time.Time) bool {
	return r.status == StatusPendingPayment && !now.Before(r.expiresAt)
}

func (r *Reservation) WasExpired() bool {
	return r.status == StatusCancelled &&
		r.cancellationReason != nil && *r.cancellationReason == ReasonPaymentExpired
}

// SeatsHeld is the number of seats this reservation currently consumes.
func (r *Reservation) SeatsHeld() int {
	if r.status == StatusConfirmed {
		return r.passengerCount
	}
	return 0
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.userID == userID
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) UserID() uuid.UUID           { return r.userID }
func (r *Reservation) ResourceID() uuid.UUID       { return r.resourceID }
func (r *Reservation) PassengerCount() int         { return r.passengerCount }
func (r *Reservation) Manifest() Manifest          { return r.manifest }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) ExpiresAt() time.Time        { return r.expiresAt }
func (r *Reservation) ConfirmedAt() *time.Time     { return r.confirmedAt }
func (r *Reservation) CancelledAt() *time.Time     { return r.cancelledAt }
func (r *Reservation) CancellationReason() *string { return r.cancellationReason }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }
