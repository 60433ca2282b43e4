package payment

import (
	"errors"
	"strings"
	"time"

	"flight-booking/internal/domain/resource"

	"github.com/google/uuid"
)

var (
	ErrEmptySessionID = errors.New("external session id is required")
	ErrNotClaimable   = errors.New("payment is not awaiting capture")
	ErrNotRefundable  = errors.New("only completed payments can be refunded")
	ErrNotFailable    = errors.New("only pending payments can fail")
	ErrInvalidStatus  = errors.New("invalid payment status")
)

type Payment struct {
	id                 uuid.UUID
	reservationID      uuid.UUID
	externalSessionID  string
	externalPaymentRef *string
	amount             resource.Money
	status             Status
	paidAt             *time.Time
	createdAt          time.Time
	updatedAt          time.Time
}

func NewPayment(reservationID uuid.UUID, sessionID string, amount resource.Money, now time.Time) (*Payment, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	return &Payment{
		id:                uuid.New(),
		reservationID:     reservationID,
		externalSessionID: sessionID,
		amount:            amount,
		status:            StatusPending,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func ReconstructPayment(
	id, reservationID uuid.UUID,
	sessionID string,
	paymentRef *string,
	amount resource.Money,
	status Status,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:                 id,
		reservationID:      reservationID,
		externalSessionID:  sessionID,
		externalPaymentRef: paymentRef,
		amount:             amount,
		status:             status,
		paidAt:             paidAt,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (p *Payment) Complete(now time.Time) error {
	if !p.status.IsClaimable() {
		return ErrNotClaimable
	}
	p.status = StatusCompleted
	p.paidAt = &now
	p.updatedAt = now
	return nil
}

// ForceComplete is the administrative override: any status becomes
// COMPLETED and an existing paid-at timestamp is preserved.
func (p *Payment) ForceComplete(now time.Time) {
	if p.paidAt == nil {
		p.paidAt = &now
	}
	p.status = StatusCompleted
	p.updatedAt = now
}

// AttachPaymentRef records the gateway's charge reference once known.
func (p *Payment) AttachPaymentRef(ref string) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return
	}
	p.externalPaymentRef = &ref
}

func (p *Payment) InitiateRefund(now time.Time) error {
	if p.status != StatusCompleted {
		return ErrNotRefundable
	}
	p.status = StatusRefundInitiated
	p.updatedAt = now
	return nil
}

func (p *Payment) Fail(now time.Time) error {
	if p.status != StatusPending {
		return ErrNotFailable
	}
	p.status = StatusFailed
	p.updatedAt = now
	return nil
}

func (p *Payment) ID() uuid.UUID               { return p.id }
func (p *Payment) ReservationID() uuid.UUID    { return p.reservationID }
func (p *Payment) ExternalSessionID() string   { return p.externalSessionID }
func (p *Payment) ExternalPaymentRef() *string { return p.externalPaymentRef }
func (p *Payment) Amount() resource.Money      { return p.amount }
func (p *Payment) Status() Status              { return p.status }
func (p *Payment) PaidAt() *time.Time          { return p.paidAt }
func (p *Payment) CreatedAt() time.Time        { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time        { return p.updatedAt }
