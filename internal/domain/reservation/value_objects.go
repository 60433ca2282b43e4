package reservation

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidPassengerCount = errors.New("passenger count must be at least 1")
	ErrManifestCountMismatch = errors.New("passenger list does not match passenger count")
	ErrInvalidPassengerName  = errors.New("passenger first and last name are required")
	ErrInvalidDocumentNumber = errors.New("document number must be 5-20 alphanumeric characters")
)

const MaxPassengersPerReservation = 9

var documentNumberRegex = regexp.MustCompile(`^[A-Z0-9]{5,20}$`)

type Passenger struct {
	firstName      string
	lastName       string
	documentNumber string
}

func NewPassenger(firstName, lastName, documentNumber string) (Passenger, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return Passenger{}, ErrInvalidPassengerName
	}
	documentNumber = strings.ToUpper(strings.TrimSpace(documentNumber))
	if !documentNumberRegex.MatchString(documentNumber) {
		return Passenger{}, ErrInvalidDocumentNumber
	}
	return Passenger{firstName: firstName, lastName: lastName, documentNumber: documentNumber}, nil
}

func ReconstructPassenger(firstName, lastName, documentNumber string) Passenger {
	return Passenger{firstName: firstName, lastName: lastName, documentNumber: documentNumber}
}

func (p Passenger) FirstName() string      { return p.firstName }
func (p Passenger) LastName() string       { return p.lastName }
func (p Passenger) DocumentNumber() string { return p.documentNumber }

func (p Passenger) FullName() string {
	return p.firstName + " " + p.lastName
}

// Manifest is the ordered passenger list of a reservation. It may be empty
// when passenger details are collected after payment.
type Manifest struct {
	passengers []Passenger
}

func NewManifest(passengerCount int, passengers []Passenger) (Manifest, error) {
	if passengerCount < 1 || passengerCount > MaxPassengersPerReservation {
		return Manifest{}, ErrInvalidPassengerCount
	}
	if len(passengers) > 0 && len(passengers) != passengerCount {
		return Manifest{}, ErrManifestCountMismatch
	}
	copied := make([]Passenger, len(passengers))
	copy(copied, passengers)
	return Manifest{passengers: copied}, nil
}

func ReconstructManifest(passengers []Passenger) Manifest {
	return Manifest{passengers: passengers}
}

func (m Manifest) Passengers() []Passenger {
	out := make([]Passenger, len(m.passengers))
	copy(out, m.passengers)
	return out
}

func (m Manifest) Len() int {
	return len(m.passengers)
}
