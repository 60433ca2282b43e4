package resource

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrInvalidCurrency  = errors.New("currency must be a 3-letter ISO 4217 code")
	ErrInvalidSchedule  = errors.New("arrival must be after departure")
	ErrInvalidAirport   = errors.New("airport code must be 3 letters")
	ErrSameAirports     = errors.New("origin and destination must differ")
	ErrInvalidFlightNum = errors.New("invalid flight number")
)

var (
	currencyRegex     = regexp.MustCompile(`^[A-Z]{3}$`)
	airportRegex      = regexp.MustCompile(`^[A-Z]{3}$`)
	flightNumberRegex = regexp.MustCompile(`^[A-Z0-9]{2}[0-9]{1,4}$`)
)

// Money is an amount in minor units of its currency.
type Money struct {
	cents    int64
	currency string
}

func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !currencyRegex.MatchString(currency) {
		return Money{}, ErrInvalidCurrency
	}
	return Money{cents: cents, currency: currency}, nil
}

// ReconstructMoney trusts values already validated on the way into storage.
func ReconstructMoney(cents int64, currency string) Money {
	return Money{cents: cents, currency: currency}
}

func (m Money) Cents() int64     { return m.cents }
func (m Money) Currency() string { return m.currency }

func (m Money) Times(n int) Money {
	return Money{cents: m.cents * int64(n), currency: m.currency}
}

func (m Money) Major() float64 {
	return float64(m.cents) / 100.0
}

type FlightDetails struct {
	FlightNumber  string
	Origin        string
	Destination   string
	Airline       string
	DepartureTime time.Time
	ArrivalTime   time.Time
}

func NewFlightDetails(flightNumber, origin, destination, airline string, departure, arrival time.Time) (FlightDetails, error) {
	fd := FlightDetails{
		FlightNumber:  strings.ToUpper(strings.TrimSpace(flightNumber)),
		Origin:        strings.ToUpper(strings.TrimSpace(origin)),
		Destination:   strings.ToUpper(strings.TrimSpace(destination)),
		Airline:       strings.TrimSpace(airline),
		DepartureTime: departure,
		ArrivalTime:   arrival,
	}
	if !flightNumberRegex.MatchString(fd.FlightNumber) {
		return FlightDetails{}, ErrInvalidFlightNum
	}
	if !airportRegex.MatchString(fd.Origin) || !airportRegex.MatchString(fd.Destination) {
		return FlightDetails{}, ErrInvalidAirport
	}
	if fd.Origin == fd.Destination {
		return FlightDetails{}, ErrSameAirports
	}
	if !arrival.After(departure) {
		return FlightDetails{}, ErrInvalidSchedule
	}
	return fd, nil
}

func (fd FlightDetails) Duration() time.Duration {
	return fd.ArrivalTime.Sub(fd.DepartureTime)
}

func (fd FlightDetails) Route() string {
	return fd.Origin + " → " + fd.Destination
}
