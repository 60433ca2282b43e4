package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Topic string

const (
	TopicReservationConfirmation Topic = "RESERVATION_CONFIRMATION"
	TopicReservationCancelled    Topic = "RESERVATION_CANCELLED"
	TopicReservationDeleted      Topic = "RESERVATION_DELETED"
)

func (t Topic) String() string {
	return string(t)
}

func (t Topic) IsValid() bool {
	switch t {
	case TopicReservationConfirmation, TopicReservationCancelled, TopicReservationDeleted:
		return true
	default:
		return false
	}
}

type JobStatus string

const (
	JobStatusQueued JobStatus = "queued"
	JobStatusSent   JobStatus = "sent"
	JobStatusFailed JobStatus = "failed"
)

func (s JobStatus) String() string {
	return string(s)
}

const KindEmail = "email"

// Event carries everything a template needs, captured while the data still
// exists. Deletion notices are built before the rows are removed.
type Event struct {
	JobID          uuid.UUID `json:"jobId"`
	Topic          Topic     `json:"topic"`
	RecipientEmail string    `json:"recipientEmail"`
	RecipientName  string    `json:"recipientName"`
	ReservationID  uuid.UUID `json:"reservationId"`
	FlightNumber   string    `json:"flightNumber"`
	FlightName     string    `json:"flightName"`
	Airline        string    `json:"airline"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departureTime"`
	PassengerCount int       `json:"passengerCount"`
	AmountCents    int64     `json:"amountCents"`
	Currency       string    `json:"currency"`
	Reason         string    `json:"reason,omitempty"`
	RefundPending  bool      `json:"refundPending,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// Reference is the short booking code shown to customers.
func (e Event) Reference() string {
	return Reference(e.ReservationID)
}

func Reference(reservationID uuid.UUID) string {
	s := reservationID.String()
	return "BYF-" + strings.ToUpper(s[:8])
}
