package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidName       = errors.New("resource name is required")
	ErrInvalidCapacity   = errors.New("max slots must be at least 1")
	ErrCapacityBelowSold = errors.New("max slots cannot drop below seats already sold")
)

type Type string

const (
	TypeFlight Type = "FLIGHT"
)

func (t Type) String() string {
	return string(t)
}

// Resource is a bookable inventory holder. availableSlots is owned by the
// inventory store once persisted: the entity never mutates it.
type Resource struct {
	id             uuid.UUID
	name           string
	description    string
	resourceType   Type
	maxSlots       int
	availableSlots int
	price          Money
	flight         FlightDetails
	createdAt      time.Time
	updatedAt      time.Time
}

func NewFlight(name, description string, maxSlots int, price Money, flight FlightDetails, now time.Time) (*Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if maxSlots < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Resource{
		id:             uuid.New(),
		name:           name,
		description:    strings.TrimSpace(description),
		resourceType:   TypeFlight,
		maxSlots:       maxSlots,
		availableSlots: maxSlots,
		price:          price,
		flight:         flight,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructResource(
	id uuid.UUID,
	name, description string,
	resourceType Type,
	maxSlots, availableSlots int,
	price Money,
	flight FlightDetails,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:             id,
		name:           name,
		description:    description,
		resourceType:   resourceType,
		maxSlots:       maxSlots,
		availableSlots: availableSlots,
		price:          price,
		flight:         flight,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Revise replaces the editable fields and returns how far maxSlots moved.
// availableSlots is left for the inventory store to shift by that delta.
func (r *Resource) Revise(name, description string, maxSlots int, price Money, flight FlightDetails, now time.Time) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrInvalidName
	}
	if maxSlots < 1 {
		return 0, ErrInvalidCapacity
	}
	if sold := r.maxSlots - r.availableSlots; maxSlots < sold {
		return 0, ErrCapacityBelowSold
	}

	delta := maxSlots - r.maxSlots
	r.name = name
	r.description = strings.TrimSpace(description)
	r.maxSlots = maxSlots
	r.price = price
	r.flight = flight
	r.updatedAt = now
	return delta, nil
}

// CanAccommodate is advisory only; the inventory store performs the
// authoritative check when seats are actually taken.
func (r *Resource) CanAccommodate(passengers int) bool {
	return passengers >= 1 && passengers <= r.availableSlots
}

func (r *Resource) TotalPrice(passengers int) Money {
	return r.price.Times(passengers)
}

func (r *Resource) ID() uuid.UUID         { return r.id }
func (r *Resource) Name() string          { return r.name }
func (r *Resource) Description() string   { return r.description }
func (r *Resource) Type() Type            { return r.resourceType }
func (r *Resource) MaxSlots() int         { return r.maxSlots }
func (r *Resource) AvailableSlots() int   { return r.availableSlots }
func (r *Resource) Price() Money          { return r.price }
func (r *Resource) Flight() FlightDetails { return r.flight }
func (r *Resource) CreatedAt() time.Time  { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time  { return r.updatedAt }
