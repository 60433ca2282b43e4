package commands

import (
	"context"
	"time"

	"flight-booking/internal/domain/notification"
	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/domain/resource"
	"flight-booking/internal/domain/user"
	"flight-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// notice is a notification captured inside a transaction and sent after
// commit.
type notice struct {
	event      notification.Event
	send       bool
	resourceID uuid.UUID
	seatsMoved bool
}

func newEvent(topic notification.Topic, res *reservation.Reservation, flight *resource.Resource, owner *user.User, amountCents int64, now time.Time) notification.Event {
	details := flight.Flight()
	return notification.Event{
		JobID:          uuid.New(),
		Topic:          topic,
		RecipientEmail: owner.Email().Value(),
		RecipientName:  owner.DisplayName(),
		ReservationID:  res.ID(),
		FlightNumber:   details.FlightNumber,
		FlightName:     flight.Name(),
		Airline:        details.Airline,
		Origin:         details.Origin,
		Destination:    details.Destination,
		DepartureTime:  details.DepartureTime,
		PassengerCount: res.PassengerCount(),
		AmountCents:    amountCents,
		Currency:       flight.Price().Currency(),
		OccurredAt:     now,
	}
}

// loadParties reads the flight and owner of res for notification content.
func loadParties(ctx context.Context, tx shared.Tx, res *reservation.Reservation) (*resource.Resource, *user.User, error) {
	flight, err := tx.Reads().ResourceByID(ctx, res.ResourceID())
	if err != nil {
		return nil, nil, err
	}
	owner, err := tx.Reads().UserByID(ctx, res.UserID())
	if err != nil {
		return nil, nil, err
	}
	return flight, owner, nil
}

// publish runs the post-commit side effects of a write: cache invalidation
// when seats moved and the notification when one was captured.
func publish(ctx context.Context, n notice, cache shared.FlightCacheInvalidator, notifier shared.Notifier) {
	if n.seatsMoved {
		cache.Invalidate(ctx, n.resourceID)
	}
	if n.send {
		notifier.Notify(ctx, n.event)
	}
}
